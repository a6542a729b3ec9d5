package charset

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// multiByteLens lists the stateless multi-byte encodings and the longest
// sequence each can use for one character. Shift-state encodings such as
// ISO-2022-JP cannot be decoded a character at a time and are left out.
var multiByteLens = map[encoding.Encoding]int{
	japanese.EUCJP:            3,
	japanese.ShiftJIS:         2,
	korean.EUCKR:              2,
	simplifiedchinese.GBK:     2,
	simplifiedchinese.GB18030: 4,
	traditionalchinese.Big5:   2,
}

// transformCodec decodes one character by feeding the x/text decoder growing
// prefixes of the input until it produces a rune.
type transformCodec struct {
	name   Name
	enc    encoding.Encoding
	maxLen int
}

func (c *transformCodec) Name() Name  { return c.name }
func (c *transformCodec) MaxLen() int { return c.maxLen }

func (c *transformCodec) Decode(p []byte) (rune, int, error) {
	if len(p) == 0 {
		return 0, 0, ErrDecode
	}
	limit := min(len(p), c.maxLen)
	dec := c.enc.NewDecoder()
	var dst [2 * utf8.UTFMax]byte
	for n := 1; n <= limit; n++ {
		dec.Reset()
		nDst, nSrc, err := dec.Transform(dst[:], p[:n], false)
		if errors.Is(err, transform.ErrShortSrc) {
			continue
		}
		if err != nil || nSrc == 0 {
			return utf8.RuneError, n, ErrDecode
		}
		r, size := utf8.DecodeRune(dst[:nDst])
		if size != nDst {
			// More than one rune from a prefix that was short a byte ago:
			// the lead byte was rejected and the decoder resynchronized.
			return utf8.RuneError, 1, ErrDecode
		}
		if r == utf8.RuneError && !c.encodesReplacement(p[:nSrc]) {
			return r, nSrc, ErrDecode
		}
		return r, nSrc, nil
	}
	// Every prefix is an incomplete sequence.
	return utf8.RuneError, limit, ErrDecode
}

// encodesReplacement reports whether b is the encoding's own spelling of
// U+FFFD rather than the decoder's marker for bad input.
func (c *transformCodec) encodesReplacement(b []byte) bool {
	want, err := c.Encode(utf8.RuneError)
	return err == nil && bytes.Equal(want, b)
}

func (c *transformCodec) Encode(r rune) ([]byte, error) {
	if !utf8.ValidRune(r) {
		return nil, &EncodeError{Encoding: c.name, Rune: r}
	}
	b, err := c.enc.NewEncoder().Bytes(utf8.AppendRune(nil, r))
	if err != nil {
		return nil, &EncodeError{Encoding: c.name, Rune: r}
	}
	return b, nil
}
