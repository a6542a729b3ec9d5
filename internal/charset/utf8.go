package charset

import "unicode/utf8"

type utf8Codec struct{}

func (utf8Codec) Name() Name  { return "utf-8" }
func (utf8Codec) MaxLen() int { return utf8.UTFMax }

func (utf8Codec) Decode(p []byte) (rune, int, error) {
	if len(p) == 0 {
		return 0, 0, ErrDecode
	}
	if !utf8.FullRune(p) {
		return utf8.RuneError, len(p), ErrDecode
	}
	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size <= 1 {
		return r, 1, ErrDecode
	}
	return r, size, nil
}

func (c utf8Codec) Encode(r rune) ([]byte, error) {
	if !utf8.ValidRune(r) {
		return nil, &EncodeError{Encoding: c.Name(), Rune: r}
	}
	return utf8.AppendRune(nil, r), nil
}
