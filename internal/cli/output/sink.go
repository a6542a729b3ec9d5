package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/leapstack-labs/findnonascii/internal/scan"
)

// ReportSink is a scan.Sink that may buffer findings until Flush.
type ReportSink interface {
	scan.Sink
	// Flush writes anything buffered for the current stream.
	Flush() error
}

// NewSink returns the report sink for the renderer's mode.
func (r *Renderer) NewSink() ReportSink {
	switch r.mode {
	case ModeJSON:
		return NewJSONSink(r.out)
	case ModeTable:
		return NewTableSink(r.out)
	default:
		return NewTextSink(r.out)
	}
}

// TextSink writes one report line per finding.
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a TextSink.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Report writes f as "<name>:<line>,<column>: char='<c>' code=<n> bytes=[<hex>]".
func (s *TextSink) Report(f scan.Finding) error {
	_, err := fmt.Fprintln(s.w, f.String())
	return err
}

// Flush is a no-op.
func (s *TextSink) Flush() error { return nil }

// JSONFinding is the JSON form of a finding.
type JSONFinding struct {
	Name      string `json:"name"`
	Line      uint32 `json:"line"`
	Column    uint32 `json:"column"`
	Char      string `json:"char"`
	Code      uint32 `json:"code"`
	CodePoint string `json:"codepoint"`
	Bytes     string `json:"bytes"`
	Width     int    `json:"width"`
}

// NewJSONFinding converts f.
func NewJSONFinding(f scan.Finding) JSONFinding {
	return JSONFinding{
		Name:      f.Name,
		Line:      f.Line,
		Column:    f.Column,
		Char:      string(f.Char),
		Code:      f.Code,
		CodePoint: CodePoint(f.Code),
		Bytes:     f.Hex(),
		Width:     runewidth.RuneWidth(f.Char),
	}
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink creates a JSONSink.
func NewJSONSink(w io.Writer) *JSONSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONSink{enc: enc}
}

// Report encodes f.
func (s *JSONSink) Report(f scan.Finding) error {
	return s.enc.Encode(NewJSONFinding(f))
}

// Flush is a no-op.
func (s *JSONSink) Flush() error { return nil }

// TableSink collects findings and renders them as a table on Flush.
type TableSink struct {
	w        io.Writer
	name     string
	findings []scan.Finding
}

// NewTableSink creates a TableSink.
func NewTableSink(w io.Writer) *TableSink {
	return &TableSink{w: w}
}

// Report buffers f. Findings for a different stream flush the previous one
// first.
func (s *TableSink) Report(f scan.Finding) error {
	if len(s.findings) > 0 && f.Name != s.name {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	s.name = f.Name
	s.findings = append(s.findings, f)
	return nil
}

// Flush renders the buffered findings. Nothing is written when none are
// buffered.
func (s *TableSink) Flush() error {
	if len(s.findings) == 0 {
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(s.name)
	t.AppendHeader(table.Row{"Line", "Column", "Char", "Code", "Code point", "Bytes", "Width"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, f := range s.findings {
		width := runewidth.RuneWidth(f.Char)
		char := string(f.Char)
		if width == 0 {
			// Zero-width and combining characters would corrupt the layout.
			char = ""
		}
		t.AppendRow(table.Row{f.Line, f.Column, char, f.Code, CodePoint(f.Code), f.Hex(), width})
	}
	t.SetCaption("%d non-ASCII characters", len(s.findings))

	s.findings = s.findings[:0]
	s.name = ""
	_, err := fmt.Fprintln(s.w, t.Render())
	return err
}

// CodePoint formats code in U+ notation with at least four hex digits.
func CodePoint(code uint32) string {
	return fmt.Sprintf("U+%04X", code)
}
