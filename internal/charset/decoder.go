package charset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Decoder reads one code point at a time from a byte stream.
type Decoder struct {
	r      *bufio.Reader
	codec  Codec
	offset int64
	err    error // read error seen while bytes were still buffered
}

// NewDecoder returns a Decoder reading from r under codec.
func NewDecoder(r io.Reader, codec Codec) *Decoder {
	return &Decoder{r: bufio.NewReader(r), codec: codec}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 {
	return d.offset
}

// Next returns the next code point. It returns io.EOF at a clean end of
// stream, a *DecodeError for a malformed sequence, and any other read error
// wrapped. Only the bytes of the returned code point are consumed. Once a
// read fails, the bytes buffered before the failure are still decoded and
// the error is returned after them.
func (d *Decoder) Next() (rune, error) {
	p, err := d.peek()
	readErr := err != nil && !errors.Is(err, io.EOF)
	if len(p) == 0 {
		if readErr {
			return 0, fmt.Errorf("read failed: %w", err)
		}
		return 0, io.EOF
	}

	r, size, derr := d.codec.Decode(p)
	if derr != nil {
		if readErr {
			// The sequence may only look truncated because the read broke off.
			return 0, fmt.Errorf("read failed: %w", err)
		}
		bad := make([]byte, size)
		copy(bad, p[:size])
		return 0, &DecodeError{Encoding: d.codec.Name(), Offset: d.offset, Bytes: bad}
	}

	// Discard cannot fail here: size <= len(p) bytes are already buffered.
	n, _ := d.r.Discard(size)
	d.offset += int64(n)
	return r, nil
}

// peek returns up to MaxLen bytes. bufio.Reader hands a read error out once
// and then forgets it, so it is kept here and no further reads are made.
func (d *Decoder) peek() ([]byte, error) {
	if d.err != nil {
		p, _ := d.r.Peek(min(d.codec.MaxLen(), d.r.Buffered()))
		return p, d.err
	}
	p, err := d.r.Peek(d.codec.MaxLen())
	if err != nil && !errors.Is(err, io.EOF) {
		d.err = err
	}
	return p, err
}
