// Package output renders scan reports on stdout and user-facing messages on
// stderr.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects how findings are written.
type Mode string

// Output modes.
const (
	ModeText  Mode = "text"
	ModeJSON  Mode = "json"
	ModeTable Mode = "table"
)

// ColorMode controls styling of stderr messages.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Styles holds the lipgloss styles used for messages.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("12")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes report output to out and messages to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles Styles
}

// NewRenderer creates a renderer. Styling follows color; in auto mode the
// color profile is detected from errOut and the NO_COLOR/CLICOLOR variables.
func NewRenderer(out, errOut io.Writer, mode Mode, color ColorMode) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	if mode == "" {
		mode = ModeText
	}

	lr := lipgloss.NewRenderer(errOut)
	switch color {
	case ColorNever:
		lr.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		if lr.ColorProfile() == termenv.Ascii {
			lr.SetColorProfile(termenv.ANSI)
		}
	}

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: newStyles(lr),
	}
}

// Mode returns the output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Out returns the report writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Errorf writes an error line to stderr.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf(format, a...)))
}

// Warn writes a warning line to stderr.
func (r *Renderer) Warn(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: "+fmt.Sprintf(format, a...)))
}

// Info writes an informational line to stderr.
func (r *Renderer) Info(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Info.Render(fmt.Sprintf(format, a...)))
}

// Hint writes a muted line to stderr.
func (r *Renderer) Hint(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Muted.Render(fmt.Sprintf(format, a...)))
}
