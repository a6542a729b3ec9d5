// Package charset resolves encoding names into codecs and decodes byte streams
// one code point at a time.
//
// A Codec is the capability the rest of the program depends on: it can turn
// the leading bytes of a buffer into a single rune and turn a rune back into
// its minimal encoded form. The concrete implementations cover UTF-8, US-ASCII,
// the single-byte code pages from golang.org/x/text/encoding/charmap and the
// stateless CJK encodings (EUC-JP, Shift_JIS, EUC-KR, GBK, GB18030, Big5).
package charset

import "strings"

// Name is a normalized (trimmed, lowercased) encoding name such as "utf-8".
type Name string

// Normalize trims and lowercases s.
func Normalize(s string) Name {
	return Name(strings.ToLower(strings.TrimSpace(s)))
}

// String implements fmt.Stringer.
func (n Name) String() string {
	return string(n)
}

// UnmarshalText normalizes names decoded from configuration.
func (n *Name) UnmarshalText(text []byte) error {
	*n = Normalize(string(text))
	return nil
}

// IsUTF8 reports whether n is one of the accepted spellings of UTF-8.
func (n Name) IsUTF8() bool {
	return n == "utf8" || n == "utf-8"
}

// compact drops everything but letters and digits, the way glibc normalizes
// the codeset part of a locale ("ISO-8859-1" and "iso88591" compare equal).
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
