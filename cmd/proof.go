package cmd

import (
	"log"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds/proof"
	"github.com/sudoplatform-labs/sudo-di-agent-console/completionhelp"
)

// proofsCmd is the parent of the proof presentation commands.
var proofsCmd = &cobra.Command{
	Use:   "proofs",
	Short: "Drive proof presentation, as prover or verifier",
	Run: func(cmd *cobra.Command, args []string) {
		SubCmdNeeded(cmd)
	},
}

var proofListCmd = proof.ListCmd{}

var proofListCobraCmd = &cobra.Command{
	Use:   "list",
	Short: "List proof exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		proofListCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, proofListCmd)
	},
}

var proofRequestCmd = proof.RequestCmd{}

var proofRequestCobraCmd = &cobra.Command{
	Use:   "request",
	Short: "Request a proof as verifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		proofRequestCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, proofRequestCmd)
	},
}

var proofMatchCmd = proof.MatchCmd{}

var proofMatchCobraCmd = &cobra.Command{
	Use:   "match",
	Short: "List wallet credentials able to satisfy a request",
	RunE: func(cmd *cobra.Command, args []string) error {
		proofMatchCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, proofMatchCmd)
	},
}

var proofPresentCmd = proof.PresentCmd{}

var proofPresentCobraCmd = &cobra.Command{
	Use:   "present",
	Short: "Present a proof as prover",
	RunE: func(cmd *cobra.Command, args []string) error {
		proofPresentCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, proofPresentCmd)
	},
}

var proofVerifyCmd = proof.VerifyCmd{}

var proofVerifyCobraCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a received presentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		proofVerifyCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, proofVerifyCmd)
	},
}

var proofAbortCmd = proof.AbortCmd{}

var proofAbortCobraCmd = &cobra.Command{
	Use:   "abort",
	Short: "Abandon a running exchange with a problem report",
	RunE: func(cmd *cobra.Command, args []string) error {
		proofAbortCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, proofAbortCmd)
	},
}

var proofRemoveCmd = proof.RemoveCmd{}

var proofRemoveCobraCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a completed exchange record",
	RunE: func(cmd *cobra.Command, args []string) error {
		proofRemoveCmd.Cmd.Cmd = baseCmd()
		return execute(cmd, proofRemoveCmd)
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	proofListCobraCmd.Flags().StringVar(&proofListCmd.View, "view", "",
		"narrow to a view: active or completed")
	try.To(proofListCobraCmd.RegisterFlagCompletionFunc("view",
		staticCompletion(completionhelp.ProofViews)))

	f := proofRequestCobraCmd.Flags()
	f.StringVar(&proofRequestCmd.ConnectionID, "connection", "",
		"connection to request over")
	f.StringVar(&proofRequestCmd.CredDefID, "cred-def", "",
		"restrict acceptable credentials to this credential definition")
	f.StringArrayVar(&proofRequestCmd.Attrs, "attr", nil,
		"requested attribute as name[:now|:from-to], repeatable")
	f.StringVar(&proofRequestCmd.Comment, "comment", "", "free-form comment")

	proofMatchCobraCmd.Flags().StringVar(&proofMatchCmd.ID, "id", "",
		"exchange id")

	f = proofPresentCobraCmd.Flags()
	f.StringVar(&proofPresentCmd.ID, "id", "", "exchange id")
	f.StringArrayVar(&proofPresentCmd.Selections, "select", nil,
		"attribute selection as ref=credential-id, repeatable")

	proofVerifyCobraCmd.Flags().StringVar(&proofVerifyCmd.ID, "id", "",
		"exchange id")

	f = proofAbortCobraCmd.Flags()
	f.StringVar(&proofAbortCmd.ID, "id", "", "exchange id")
	f.StringVar(&proofAbortCmd.Reason, "reason", "aborted by user",
		"problem report text sent to the peer")

	proofRemoveCobraCmd.Flags().StringVar(&proofRemoveCmd.ID, "id", "",
		"exchange id")

	proofsCmd.AddCommand(proofListCobraCmd)
	proofsCmd.AddCommand(proofRequestCobraCmd)
	proofsCmd.AddCommand(proofMatchCobraCmd)
	proofsCmd.AddCommand(proofPresentCobraCmd)
	proofsCmd.AddCommand(proofVerifyCobraCmd)
	proofsCmd.AddCommand(proofAbortCobraCmd)
	proofsCmd.AddCommand(proofRemoveCobraCmd)
	rootCmd.AddCommand(proofsCmd)
}
