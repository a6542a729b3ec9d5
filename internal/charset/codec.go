package charset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Codec converts between raw bytes and code points for one encoding.
type Codec interface {
	// Name returns the canonical name of the encoding.
	Name() Name

	// MaxLen returns the maximum number of bytes per code point.
	MaxLen() int

	// Decode returns the first code point in p and the number of bytes it
	// occupies. p holds MaxLen bytes unless the stream ends sooner. On a
	// malformed or truncated sequence it returns an error wrapping ErrDecode
	// and the number of bytes that were rejected.
	Decode(p []byte) (r rune, size int, err error)

	// Encode returns the minimal byte sequence for r.
	Encode(r rune) ([]byte, error)
}

// Predefined codecs.
var (
	UTF8  Codec = utf8Codec{}
	ASCII Codec = asciiCodec{}
)

var asciiAliases = map[Name]bool{
	"ascii":          true,
	"us-ascii":       true,
	"ansi_x3.4-1968": true,
}

// Lookup resolves name into a Codec. Aliases registered with IANA or the
// WHATWG encoding standard are accepted, as are the compact spellings glibc
// uses in locale names ("iso88591", "eucjp", "sjis"). Encodings that exist
// but cannot be decoded one character at a time return a
// *ConfigurationError.
func Lookup(name string) (Codec, error) {
	n := Normalize(name)
	switch {
	case n == "":
		return nil, &ConfigurationError{Reason: "no encoding name given"}
	case n.IsUTF8():
		return UTF8, nil
	case asciiAliases[n]:
		return ASCII, nil
	}

	enc, err := findEncoding(n)
	if err != nil {
		return nil, err
	}
	return codecFor(n, enc)
}

func findEncoding(n Name) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(string(n))
	if err == nil && enc != nil {
		return enc, nil
	}
	// The compact index goes before htmlindex: WHATWG maps latin1 labels
	// such as "iso88591" to windows-1252.
	if enc, ok := compactIndex()[compact(string(n))]; ok {
		return enc, nil
	}
	if enc, err := htmlindex.Get(string(n)); err == nil {
		return enc, nil
	}
	if err == nil {
		return nil, &ConfigurationError{Name: n, Reason: "encoding is known but not supported"}
	}
	return nil, &ConfigurationError{Name: n, Reason: "unknown encoding"}
}

func codecFor(n Name, enc encoding.Encoding) (Codec, error) {
	if enc == unicode.UTF8 {
		return UTF8, nil
	}
	if mime, err := ianaindex.MIME.Name(enc); err == nil && strings.EqualFold(mime, "US-ASCII") {
		return ASCII, nil
	}
	if cm, ok := enc.(*charmap.Charmap); ok {
		return &charmapCodec{name: canonicalName(n, enc), cm: cm}, nil
	}
	if maxLen, ok := multiByteLens[enc]; ok {
		return &transformCodec{name: canonicalName(n, enc), enc: enc, maxLen: maxLen}, nil
	}
	return nil, &ConfigurationError{Name: n, Reason: "stateful and UTF-16/32 encodings are not supported"}
}

// canonicalName prefers the MIME name, then the IANA name, then whatever the
// caller typed.
func canonicalName(fallback Name, enc encoding.Encoding) Name {
	if s, err := ianaindex.MIME.Name(enc); err == nil && s != "" {
		return Normalize(s)
	}
	if s, err := ianaindex.IANA.Name(enc); err == nil && s != "" {
		return Normalize(s)
	}
	return fallback
}

// glibcAliases are locale codeset spellings no index knows.
var glibcAliases = map[string]encoding.Encoding{
	"sjis":   japanese.ShiftJIS,
	"ujis":   japanese.EUCJP,
	"gb2312": simplifiedchinese.GBK,
}

var (
	compactOnce sync.Once
	compactMap  map[string]encoding.Encoding
)

func compactIndex() map[string]encoding.Encoding {
	compactOnce.Do(func() {
		compactMap = make(map[string]encoding.Encoding)
		add := func(enc encoding.Encoding, label string) {
			compactMap[compact(label)] = enc
			for _, idx := range []*ianaindex.Index{ianaindex.MIME, ianaindex.IANA} {
				if s, err := idx.Name(enc); err == nil {
					compactMap[compact(s)] = enc
				}
			}
		}
		for _, enc := range charmap.All {
			if cm, ok := enc.(*charmap.Charmap); ok {
				add(cm, cm.String())
			}
		}
		for enc := range multiByteLens {
			add(enc, fmt.Sprint(enc))
		}
		for label, enc := range glibcAliases {
			compactMap[label] = enc
		}
	})
	return compactMap
}

// Info describes one supported encoding.
type Info struct {
	Name        Name
	Description string
	MaxLen      int
}

// Supported lists every encoding Lookup can return, sorted by name.
func Supported() []Info {
	infos := []Info{
		{Name: UTF8.Name(), Description: "Unicode (UTF-8)", MaxLen: UTF8.MaxLen()},
		{Name: ASCII.Name(), Description: "US-ASCII", MaxLen: ASCII.MaxLen()},
	}
	seen := map[Name]bool{UTF8.Name(): true, ASCII.Name(): true}
	for _, enc := range charmap.All {
		cm, ok := enc.(*charmap.Charmap)
		if !ok {
			continue
		}
		name := canonicalName(Normalize(cm.String()), cm)
		if seen[name] {
			continue
		}
		seen[name] = true
		infos = append(infos, Info{Name: name, Description: cm.String(), MaxLen: 1})
	}
	for enc, maxLen := range multiByteLens {
		name := canonicalName(Normalize(fmt.Sprint(enc)), enc)
		if seen[name] {
			continue
		}
		seen[name] = true
		infos = append(infos, Info{Name: name, Description: fmt.Sprint(enc), MaxLen: maxLen})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// IsConfigurationError reports whether err means an encoding cannot be used.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
