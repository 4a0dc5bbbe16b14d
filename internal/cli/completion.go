package cli

import (
	"os"

	"github.com/spf13/cobra"

	yio "github.com/matzehuels/yieldpath/pkg/io"
	"github.com/matzehuels/yieldpath/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for yieldpath.

Bash:
  $ source <(yieldpath completion bash)

Zsh:
  $ yieldpath completion zsh > "${fpath[1]}/_yieldpath"

Fish:
  $ yieldpath completion fish > ~/.config/fish/completions/yieldpath.fish

PowerShell:
  PS> yieldpath completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// inputFileCompletion restricts positional completion to network files.
func inputFileCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"txt", "json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeDiagramFormats completes the render --format flag.
func completeDiagramFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{pipeline.FormatSVG, pipeline.FormatDOT, pipeline.FormatPNG}, cobra.ShellCompDirectiveNoFileComp
}

// completeInputFormats completes the convert --to flag.
func completeInputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, f := range yio.Formats() {
		out = append(out, string(f))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
