package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display find-non-ascii version information.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "find-non-ascii v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Reports characters outside 7-bit ASCII in text files")
		},
	}
}
