// Package cli provides the command-line interface for find-non-ascii.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/findnonascii/internal/cli/commands"
	"github.com/leapstack-labs/findnonascii/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "find-non-ascii [flags] [file...]",
		Short: "Report characters outside 7-bit ASCII",
		Long: `find-non-ascii scans text files and reports every character whose code
point is above 127, with its line and column, the character itself, its code
point and the bytes that encode it.

Files are decoded with the locale's encoding (LC_ALL, LC_CTYPE, LANG) unless
--encoding is given. Use "-" to read standard input.`,
		Example: `  find-non-ascii README.md
  find-non-ascii -e latin1 legacy.txt
  cat notes.txt | find-non-ascii -
  find-non-ascii -o json *.go`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Store logger in context
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			cmd.SetContext(context.WithValue(cmd.Context(), config.LoggerKey(), logger))

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", slog.String("path", configFile))
			}

			return nil
		},
		RunE:          commands.RunScan,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./.find-non-ascii.yaml)")
	flags.StringP("encoding", "e", "", "Encoding of the input files (default: from the locale)")
	flags.String("interactive", string(config.DefaultInteractive), "Prompt to confirm a non-UTF-8 encoding (auto|always|never)")
	flags.StringP("output", "o", config.DefaultOutput, "Output format (text|json|table)")
	flags.String("color", config.DefaultColor, "Color messages on stderr (auto|always|never)")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.BoolP("watch", "w", false, "Rescan files when they change")
	flags.Duration("watch-debounce", config.DefaultWatchDebounce, "Delay before rescanning a changed file")

	_ = rootCmd.RegisterFlagCompletionFunc("output", fixedCompletion(config.OutputFormats...))
	_ = rootCmd.RegisterFlagCompletionFunc("color", fixedCompletion(config.ColorModes...))
	_ = rootCmd.RegisterFlagCompletionFunc("interactive", fixedCompletion("auto", "always", "never"))
	_ = rootCmd.RegisterFlagCompletionFunc("encoding", encodingCompletion)

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewEncodingsCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// newLogger returns a debug-level text logger when verbose is set, and a
// warn-level one otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ExecuteContext(ctx, NewRootCmd(), os.Args[1:])
}

// ExecuteContext runs cmd with args and returns the exit status.
func ExecuteContext(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, commands.ErrScanFailed):
		// Already reported per input.
		return 1
	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", cmd.Root().Name(), err)
		return 1
	}
}
