package charset

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// charmapCodec adapts a single-byte code page table. Bytes the table leaves
// undefined decode to U+FFFD, which is treated as a decode error.
type charmapCodec struct {
	name Name
	cm   *charmap.Charmap
}

func (c *charmapCodec) Name() Name  { return c.name }
func (c *charmapCodec) MaxLen() int { return 1 }

func (c *charmapCodec) Decode(p []byte) (rune, int, error) {
	if len(p) == 0 {
		return 0, 0, ErrDecode
	}
	r := c.cm.DecodeByte(p[0])
	if r == utf8.RuneError {
		return r, 1, ErrDecode
	}
	return r, 1, nil
}

func (c *charmapCodec) Encode(r rune) ([]byte, error) {
	b, ok := c.cm.EncodeRune(r)
	if !ok {
		return nil, &EncodeError{Encoding: c.name, Rune: r}
	}
	return []byte{b}, nil
}
