package charset

import "unicode/utf8"

// asciiCodec is the POSIX portable character set: any byte with the high bit
// set is a decode error.
type asciiCodec struct{}

func (asciiCodec) Name() Name  { return "us-ascii" }
func (asciiCodec) MaxLen() int { return 1 }

func (asciiCodec) Decode(p []byte) (rune, int, error) {
	if len(p) == 0 {
		return 0, 0, ErrDecode
	}
	if p[0] >= utf8.RuneSelf {
		return utf8.RuneError, 1, ErrDecode
	}
	return rune(p[0]), 1, nil
}

func (c asciiCodec) Encode(r rune) ([]byte, error) {
	if r < 0 || r >= utf8.RuneSelf {
		return nil, &EncodeError{Encoding: c.Name(), Rune: r}
	}
	return []byte{byte(r)}, nil
}
