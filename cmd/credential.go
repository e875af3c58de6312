package cmd

import (
	"log"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds/credential"
	"github.com/sudoplatform-labs/sudo-di-agent-console/completionhelp"
)

// credsCmd is the parent of the credential issuance commands.
var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Drive credential issuance, as holder or issuer",
	Run: func(cmd *cobra.Command, args []string) {
		SubCmdNeeded(cmd)
	},
}

var credListCmd = credential.ListCmd{}

var credentialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credential exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		credListCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credListCmd)
	},
}

var credProposeCmd = credential.ProposeCmd{}

var credentialProposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Propose a new credential as holder",
	RunE: func(cmd *cobra.Command, args []string) error {
		credProposeCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credProposeCmd)
	},
}

var credOfferCmd = credential.OfferCmd{}

var credentialOfferCmd = &cobra.Command{
	Use:   "offer",
	Short: "Answer a proposal with an offer as issuer",
	RunE: func(cmd *cobra.Command, args []string) error {
		credOfferCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credOfferCmd)
	},
}

var credAcceptCmd = credential.AcceptCmd{}

var credentialAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Accept a received offer as holder",
	RunE: func(cmd *cobra.Command, args []string) error {
		credAcceptCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credAcceptCmd)
	},
}

var credIssueCmd = credential.IssueCmd{}

var credentialIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue the requested credential as issuer",
	RunE: func(cmd *cobra.Command, args []string) error {
		credIssueCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credIssueCmd)
	},
}

var credStoreCmd = credential.StoreCmd{}

var credentialStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Store a received credential into the wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		credStoreCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credStoreCmd)
	},
}

var credAbortCmd = credential.AbortCmd{}

var credentialAbortCmd = &cobra.Command{
	Use:   "abort",
	Short: "Abandon a running exchange with a problem report",
	RunE: func(cmd *cobra.Command, args []string) error {
		credAbortCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credAbortCmd)
	},
}

var credRemoveCmd = credential.RemoveCmd{}

var credentialRemoveCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a completed exchange record",
	RunE: func(cmd *cobra.Command, args []string) error {
		credRemoveCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credRemoveCmd)
	},
}

var credRevokeCmd = credential.RevokeCmd{}

var credentialRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke an issued credential as issuer",
	RunE: func(cmd *cobra.Command, args []string) error {
		credRevokeCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credRevokeCmd)
	},
}

var credOwnedCmd = credential.OwnedCmd{}

var credentialOwnedCmd = &cobra.Command{
	Use:   "owned",
	Short: "List wallet credentials with effective status",
	RunE: func(cmd *cobra.Command, args []string) error {
		credOwnedCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credOwnedCmd)
	},
}

var credRemoveOwnedCmd = credential.RemoveOwnedCmd{}

var credentialRemoveOwnedCmd = &cobra.Command{
	Use:   "rm-owned",
	Short: "Delete a credential from the wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		credRemoveOwnedCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, credRemoveOwnedCmd)
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	credentialListCmd.Flags().StringVar(&credListCmd.View, "view", "",
		"narrow to a view: active or issued")
	try.To(credentialListCmd.RegisterFlagCompletionFunc("view",
		staticCompletion(completionhelp.CredViews)))

	f := credentialProposeCmd.Flags()
	f.StringVar(&credProposeCmd.ConnectionID, "connection", "",
		"connection to propose over")
	f.StringVar(&credProposeCmd.CredDefID, "cred-def", "",
		"credential definition id")
	f.StringArrayVar(&credProposeCmd.Attrs, "attr", nil,
		"proposed attribute as name=value, repeatable")
	f.StringVar(&credProposeCmd.Comment, "comment", "", "free-form comment")

	credentialOfferCmd.Flags().StringVar(&credOfferCmd.ID, "id", "",
		"exchange id")
	credentialAcceptCmd.Flags().StringVar(&credAcceptCmd.ID, "id", "",
		"exchange id")

	f = credentialIssueCmd.Flags()
	f.StringVar(&credIssueCmd.ID, "id", "", "exchange id")
	f.StringVar(&credIssueCmd.Comment, "comment", "", "free-form comment")

	credentialStoreCmd.Flags().StringVar(&credStoreCmd.ID, "id", "",
		"exchange id")

	f = credentialAbortCmd.Flags()
	f.StringVar(&credAbortCmd.ID, "id", "", "exchange id")
	f.StringVar(&credAbortCmd.Reason, "reason", "aborted by user",
		"problem report text sent to the peer")

	credentialRemoveCmd.Flags().StringVar(&credRemoveCmd.ID, "id", "",
		"exchange id")
	credentialRevokeCmd.Flags().StringVar(&credRevokeCmd.ID, "id", "",
		"exchange id")
	credentialRemoveOwnedCmd.Flags().StringVar(&credRemoveOwnedCmd.Referent,
		"referent", "", "wallet credential referent")

	credsCmd.AddCommand(credentialListCmd)
	credsCmd.AddCommand(credentialProposeCmd)
	credsCmd.AddCommand(credentialOfferCmd)
	credsCmd.AddCommand(credentialAcceptCmd)
	credsCmd.AddCommand(credentialIssueCmd)
	credsCmd.AddCommand(credentialStoreCmd)
	credsCmd.AddCommand(credentialAbortCmd)
	credsCmd.AddCommand(credentialRemoveCmd)
	credsCmd.AddCommand(credentialRevokeCmd)
	credsCmd.AddCommand(credentialOwnedCmd)
	credsCmd.AddCommand(credentialRemoveOwnedCmd)
	rootCmd.AddCommand(credsCmd)
}
