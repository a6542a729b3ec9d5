package commands

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/findnonascii/internal/cli/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after defaults, the config file, FINDNONASCII_*
environment variables and flags have been merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml|toml)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "toml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runConfig(cmd *cobra.Command, format string) error {
	var p koanf.Parser
	switch format {
	case "yaml":
		p = yaml.Parser()
	case "toml":
		p = config.TOML()
	default:
		return fmt.Errorf("unknown format %q (must be yaml or toml)", format)
	}

	b, err := config.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if used := config.GetConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "# config file: %s\n", used)
	}
	_, _ = cmd.OutOrStdout().Write(b)
	return nil
}
