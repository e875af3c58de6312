package cmd

import (
	"log"

	"github.com/lainio/err2"
	"github.com/spf13/cobra"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds/connection"
)

// connectionsCmd is the parent of the connection protocol commands.
var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "Manage agent connections",
	Run: func(cmd *cobra.Command, args []string) {
		SubCmdNeeded(cmd)
	},
}

var connectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the agent's connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := connection.ListCmd{Cmd: baseCmd()}
		return execute(cmd, c)
	},
}

var inviteEnvs = map[string]string{
	"alias": "ALIAS",
}

var connInviteCmd = connection.InviteCmd{}

var connectionInviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Create an invitation for a peer",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return BindEnvs(inviteEnvs, cmd.Name())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		connInviteCmd.Cmd = baseCmd()
		return execute(cmd, connInviteCmd)
	},
}

var connReceiveCmd = connection.ReceiveCmd{}

var connectionReceiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Receive a peer's invitation, raw JSON or URL form",
	RunE: func(cmd *cobra.Command, args []string) error {
		connReceiveCmd.Cmd = baseCmd()
		return execute(cmd, connReceiveCmd)
	},
}

var connRemoveCmd = connection.RemoveCmd{}

var connectionRemoveCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove a connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		connRemoveCmd.Cmd = baseCmd()
		return execute(cmd, connRemoveCmd)
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	f := connectionInviteCmd.Flags()
	f.StringVar(&connInviteCmd.Alias, "alias", "",
		flagInfo("local alias for the new connection", connectionInviteCmd.Name(), inviteEnvs["alias"]))
	f.BoolVar(&connInviteCmd.MultiUse, "multi-use", false,
		"allow the invitation to be used more than once")
	f.BoolVar(&connInviteCmd.Public, "public", false,
		"use the agent's public DID in the invitation")

	f = connectionReceiveCmd.Flags()
	f.StringVar(&connReceiveCmd.Alias, "alias", "",
		"local alias for the new connection")
	f.BoolVar(&connReceiveCmd.AutoAccept, "auto-accept", true,
		"accept the connection without a separate step")
	f.StringVar(&connReceiveCmd.Invitation, "invitation", "",
		"invitation JSON or URL")

	connectionRemoveCmd.Flags().StringVar(&connRemoveCmd.ID, "id", "",
		"connection id")

	connectionsCmd.AddCommand(connectionListCmd)
	connectionsCmd.AddCommand(connectionInviteCmd)
	connectionsCmd.AddCommand(connectionReceiveCmd)
	connectionsCmd.AddCommand(connectionRemoveCmd)
	rootCmd.AddCommand(connectionsCmd)
}
