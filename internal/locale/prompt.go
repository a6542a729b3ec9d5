package locale

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// Prompter reads one line of user input per call. Readline returns io.EOF
// when input is exhausted and readline.ErrInterrupt on ^C.
type Prompter interface {
	Readline() (string, error)
	Close() error
}

// PromptText is shown before each line of input.
const PromptText = "encoding> "

// NewConsolePrompt returns a Prompter reading from in and echoing to out.
// readline keeps reading in in the background until the process exits, so in
// must not be needed for anything else afterwards.
func NewConsolePrompt(in io.Reader, out io.Writer) (Prompter, error) {
	rc, ok := in.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(in)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 PromptText,
		Stdin:                  rc,
		Stdout:                 out,
		Stderr:                 out,
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "\n",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	return rl, nil
}
