package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/findnonascii/internal/charset"
	"github.com/leapstack-labs/findnonascii/internal/cli/output"
	"github.com/leapstack-labs/findnonascii/internal/locale"
	"github.com/leapstack-labs/findnonascii/internal/scan"
	"github.com/leapstack-labs/findnonascii/internal/watch"
)

// StdinArg is the argument that selects standard input.
const StdinArg = "-"

// StdinName is how standard input is named in reports.
const StdinName = "(standard input)"

// ErrScanFailed is returned when at least one input could not be opened,
// read or closed. The details have already been written to stderr.
var ErrScanFailed = errors.New("one or more inputs failed")

// RunScan is the root command's RunE: it scans every argument in order.
func RunScan(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	if len(args) == 0 {
		r.Errorf("%s: no input files", cmd.Root().Name())
		r.Hint("usage: %s", cmd.UseLine())
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	codec, err := resolveEncoding(ctx, cmd, cc, args)
	if err != nil {
		return err
	}

	runner := NewRunner(codec, r, cmd.InOrStdin(), cc.Logger)
	ok, err := runner.ScanAll(ctx, args)
	if err != nil {
		return err
	}

	if cc.Cfg.Watch {
		watched, err := watchInputs(ctx, cc, runner, args)
		if err != nil {
			return err
		}
		ok = ok && watched
	}

	if !ok {
		return ErrScanFailed
	}
	return nil
}

// resolveEncoding picks the run's codec, prompting when that is enabled and
// the console is free.
func resolveEncoding(ctx context.Context, cmd *cobra.Command, cc *CommandContext, args []string) (charset.Codec, error) {
	res := &locale.Resolver{
		Env:      cc.Cfg.Locale,
		Override: cc.Cfg.Encoding,
		Notify:   cc.Renderer,
		Logger:   cc.Logger,
	}

	stdin := cmd.InOrStdin()
	interactive := cc.Cfg.Interactive.Enabled(isTerminal(stdin) && isTerminal(cmd.ErrOrStderr()))
	if interactive && slices.Contains(args, StdinArg) {
		cc.Logger.Debug("encoding prompt disabled while scanning standard input")
		interactive = false
	}
	if interactive {
		prompt, err := locale.NewConsolePrompt(stdin, cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		defer func() { _ = prompt.Close() }()
		res.Prompt = prompt
	}

	return res.Resolve(ctx)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd, err := safecast.Conv[int](f.Fd())
	if err != nil {
		return false
	}
	return term.IsTerminal(fd)
}

// Runner scans named inputs with one codec and one report sink.
type Runner struct {
	scanner  *scan.Scanner
	sink     output.ReportSink
	renderer *output.Renderer
	stdin    io.Reader
	logger   *slog.Logger
	open     func(name string) (io.ReadCloser, error)
}

// NewRunner creates a Runner reporting through r.
func NewRunner(codec charset.Codec, r *output.Renderer, stdin io.Reader, logger *slog.Logger) *Runner {
	sink := r.NewSink()
	return &Runner{
		scanner:  scan.New(codec, sink, scan.WithLogger(logger)),
		sink:     sink,
		renderer: r,
		stdin:    stdin,
		logger:   logger,
		open:     openFile,
	}
}

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// ScanAll scans names in order. It reports whether every input succeeded.
// The error is non-nil only when the run must stop: ctx was cancelled, or a
// character could not be re-encoded, or the report could not be written.
func (rn *Runner) ScanAll(ctx context.Context, names []string) (bool, error) {
	ok := true
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fileOK, err := rn.ScanFile(name)
		if err != nil {
			return false, err
		}
		ok = ok && fileOK
	}
	return ok, nil
}

// ScanFile scans one input. Open, read and close failures are written to
// stderr and reported as ok == false.
func (rn *Runner) ScanFile(name string) (ok bool, err error) {
	if name == StdinArg {
		return rn.scan(rn.stdin, StdinName)
	}

	f, err := rn.open(name)
	if err != nil {
		rn.renderer.Errorf("%s: %s", name, osErrorText(err))
		return false, nil
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			rn.renderer.Errorf("%s: Failed to close file: %s", name, osErrorText(cerr))
			ok = false
		}
	}()

	return rn.scan(f, name)
}

func (rn *Runner) scan(in io.Reader, name string) (bool, error) {
	res, err := rn.scanner.Scan(in, name)
	if ferr := rn.sink.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("failed to write report: %w", ferr)
	}
	if err != nil {
		return false, err
	}
	if !res.OK {
		rn.renderer.Errorf("%s: Read failed at line %d: %v", name, res.FailedAtLine, res.Err)
		return false, nil
	}
	return true, nil
}

// osErrorText drops the "open <name>:" prefix of a *fs.PathError.
func osErrorText(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

// watchInputs rescans changed files until ctx is done.
func watchInputs(ctx context.Context, cc *CommandContext, runner *Runner, args []string) (bool, error) {
	w, err := watch.New(args, watch.WithDebounce(cc.Cfg.WatchDebounce), watch.WithLogger(cc.Logger))
	if errors.Is(err, watch.ErrNothingToWatch) {
		cc.Renderer.Hint("Nothing to watch: standard input is scanned once.")
		return true, nil
	}
	if err != nil {
		return false, err
	}
	defer func() { _ = w.Close() }()

	cc.Renderer.Info("Watching %d file(s) for changes. Press Ctrl+C to stop.", len(w.Files()))

	ok := true
	err = w.Run(ctx, func(_ context.Context, name string) error {
		fileOK, err := runner.ScanFile(name)
		ok = ok && fileOK
		return err
	})
	return ok, err
}
