package cmd

import (
	"log"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds/watch"
	"github.com/sudoplatform-labs/sudo-di-agent-console/completionhelp"
)

var watchCmd = watch.Cmd{}

var watchCobraCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow record changes until interrupted",
	Long: `
Polls the chosen views on the refresh scheduler's cadence and prints
every observed record change. Ctrl-C stops the timers and exits.
	`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watchCmd.Cmd = baseCmd()
		return execute(cmd, watchCmd)
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	watchCobraCmd.Flags().StringArrayVar(&watchCmd.Views, "view", nil,
		"view to follow, repeatable; default all")
	try.To(watchCobraCmd.RegisterFlagCompletionFunc("view",
		staticCompletion(completionhelp.WatchViews)))

	rootCmd.AddCommand(watchCobraCmd)
}
