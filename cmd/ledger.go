package cmd

import (
	"log"

	"github.com/lainio/err2"
	"github.com/spf13/cobra"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Ledger pass-through operations",
	Run: func(cmd *cobra.Command, args []string) {
		SubCmdNeeded(cmd)
	},
}

var taaCmd = &cobra.Command{
	Use:   "taa",
	Short: "Transaction author agreement handling",
	Run: func(cmd *cobra.Command, args []string) {
		SubCmdNeeded(cmd)
	},
}

var taaShowCobraCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current TAA",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ledger.TaaShowCmd{Cmd: baseCmd()}
		return execute(cmd, c)
	},
}

var taaAcceptCmd = ledger.TaaAcceptCmd{}

var taaAcceptCobraCmd = &cobra.Command{
	Use:   "accept",
	Short: "Accept the current TAA",
	RunE: func(cmd *cobra.Command, args []string) error {
		taaAcceptCmd.Cmd = baseCmd()
		return execute(cmd, taaAcceptCmd)
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	taaAcceptCobraCmd.Flags().StringVar(&taaAcceptCmd.Mechanism,
		"mechanism", "on_file", "acceptance mechanism name")

	taaCmd.AddCommand(taaShowCobraCmd)
	taaCmd.AddCommand(taaAcceptCobraCmd)
	ledgerCmd.AddCommand(taaCmd)
	rootCmd.AddCommand(ledgerCmd)
}
