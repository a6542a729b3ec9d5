package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/findnonascii/internal/charset"
)

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for find-non-ascii.

To load completions:

Bash:
  $ source <(find-non-ascii completion bash)

Zsh:
  $ find-non-ascii completion zsh > "${fpath[1]}/_find-non-ascii"

Fish:
  $ find-non-ascii completion fish | source

PowerShell:
  PS> find-non-ascii completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

// encodingCompletion offers the supported encoding names.
func encodingCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, info := range charset.Supported() {
		if strings.HasPrefix(info.Name.String(), strings.ToLower(toComplete)) {
			names = append(names, info.Name.String()+"\t"+info.Description)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
