package commands

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/findnonascii/internal/charset"
	"github.com/leapstack-labs/findnonascii/internal/cli/output"
)

// NewEncodingsCommand creates the encodings command.
func NewEncodingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encodings",
		Short: "List supported encodings",
		Long: `List the encodings find-non-ascii can decode.

Any alias known to the IANA character set registry or the WHATWG encoding
standard is accepted as well, e.g. "latin1" for ISO-8859-1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEncodings(cmd)
		},
	}
}

type encodingJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxLen      int    `json:"max_len"`
}

func runEncodings(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer
	infos := charset.Supported()

	if r.Mode() == output.ModeJSON {
		enc := json.NewEncoder(r.Out())
		for _, info := range infos {
			if err := enc.Encode(encodingJSON{
				Name:        info.Name.String(),
				Description: info.Description,
				MaxLen:      info.MaxLen,
			}); err != nil {
				return err
			}
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Description", "Bytes/char"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Description, info.MaxLen})
	}
	t.Render()
	return nil
}
