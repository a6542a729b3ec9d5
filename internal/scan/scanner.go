// Package scan finds characters outside 7-bit ASCII in a text stream and
// reports where they are and how they are encoded.
package scan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"fortio.org/safecast"

	"github.com/leapstack-labs/findnonascii/internal/charset"
)

// MaxASCII is the highest code point that is never reported.
const MaxASCII = 127

// Position is a line and column in a decoded stream. Line starts at 1;
// Column counts decoded characters on the current line and is 0 before the
// first one.
type Position struct {
	Line   uint32
	Column uint32
}

// Finding describes one non-ASCII character occurrence.
type Finding struct {
	Name   string // stream name as given on the command line
	Line   uint32
	Column uint32
	Char   rune
	Code   uint32
	Bytes  []byte // the character re-encoded in the scan's encoding
}

// Hex returns the encoded bytes formatted by Hex.
func (f Finding) Hex() string {
	return Hex(f.Bytes)
}

// String formats f as a report line without the trailing newline.
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d,%d: char='%c' code=%d bytes=[%s]",
		f.Name, f.Line, f.Column, f.Char, f.Code, f.Hex())
}

// Sink receives findings in stream order.
type Sink interface {
	Report(f Finding) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f Finding) error

// Report calls fn(f).
func (fn SinkFunc) Report(f Finding) error { return fn(f) }

// Result is the outcome of scanning one stream.
type Result struct {
	Name         string
	OK           bool
	FailedAtLine uint32 // set when OK is false
	Err          error  // decode or read failure, set when OK is false
	Findings     int
	End          Position
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// Scanner reports non-ASCII characters using one resolved encoding.
// A Scanner holds no per-stream state and can scan any number of streams
// one after another.
type Scanner struct {
	codec  charset.Codec
	sink   Sink
	logger *slog.Logger
}

// New returns a Scanner decoding with codec and reporting to sink.
func New(codec charset.Codec, sink Sink, opts ...Option) *Scanner {
	s := &Scanner{
		codec:  codec,
		sink:   sink,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reads r to the end and reports every code point above MaxASCII.
//
// A decode or read failure stops the scan and is recorded in the Result with
// the line it happened on; findings reported before it stay valid. The
// returned error is reserved for conditions that make further scanning
// pointless: a character that cannot be re-encoded (wraps
// charset.ErrConfiguration) or a sink that cannot be written.
func (s *Scanner) Scan(r io.Reader, name string) (Result, error) {
	dec := charset.NewDecoder(r, s.codec)
	pos := Position{Line: 1}
	res := Result{Name: name}

	s.logger.Debug("scan started", slog.String("name", name), slog.String("encoding", s.codec.Name().String()))

	for {
		c, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.FailedAtLine = pos.Line
			res.Err = err
			res.End = pos
			s.logger.Debug("scan failed",
				slog.String("name", name),
				slog.Any("line", pos.Line),
				slog.Int64("offset", dec.Offset()),
				slog.Any("error", err))
			return res, nil
		}

		pos.Column++
		if c > MaxASCII {
			f, err := s.finding(name, pos, c)
			if err != nil {
				res.End = pos
				return res, err
			}
			if err := s.sink.Report(f); err != nil {
				res.End = pos
				return res, fmt.Errorf("failed to write report: %w", err)
			}
			res.Findings++
		}
		if c == '\n' {
			pos.Line++
			pos.Column = 0
		}
	}

	res.OK = true
	res.End = pos
	s.logger.Debug("scan finished",
		slog.String("name", name),
		slog.Int("findings", res.Findings),
		slog.Any("lines", pos.Line))
	return res, nil
}

func (s *Scanner) finding(name string, pos Position, c rune) (Finding, error) {
	b, err := s.codec.Encode(c)
	if err != nil {
		return Finding{}, err
	}
	code, err := safecast.Conv[uint32](c)
	if err != nil {
		return Finding{}, fmt.Errorf("code point %d out of range: %w", c, err)
	}
	return Finding{
		Name:   name,
		Line:   pos.Line,
		Column: pos.Column,
		Char:   c,
		Code:   code,
		Bytes:  b,
	}, nil
}
