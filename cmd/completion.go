package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generates shell completion scripts",
	Long: `
To load completion run following:

bash:
	source <(di-agent-console completion bash)

zsh:
	source <(di-agent-console completion zsh)

To configure your shell to load completions for each session add command
above to your shell configuration script (e.g. .bash_profile/.zshrc).

`,
	ValidArgs: []string{"bash", "zsh"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(_ *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			_ = rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			_ = rootCmd.GenZshCompletion(os.Stdout)
		}
	},
}

// staticCompletion adapts a fixed value set to cobra's flag
// completion signature.
func staticCompletion(
	values func() []string,
) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(
		_ *cobra.Command, _ []string, _ string,
	) ([]string, cobra.ShellCompDirective) {
		return values(), cobra.ShellCompDirectiveNoFileComp
	}
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
