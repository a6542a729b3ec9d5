// Package locale resolves the text encoding used to decode input files.
//
// The ambient encoding comes from the POSIX locale variables. When it is not
// UTF-8 the user is either warned or, in interactive mode, asked to confirm
// or replace it.
package locale

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/findnonascii/internal/charset"
)

// Env holds the locale variables that select the character encoding, in
// decreasing order of precedence.
type Env struct {
	LCAll   string `koanf:"lc_all"`
	LCCtype string `koanf:"lc_ctype"`
	Lang    string `koanf:"lang"`
}

// Setting returns the effective LC_CTYPE setting: the first non-empty of
// LC_ALL, LC_CTYPE and LANG.
func (e Env) Setting() string {
	for _, v := range []string{e.LCAll, e.LCCtype, e.Lang} {
		if v != "" {
			return v
		}
	}
	return ""
}

// Codeset extracts the encoding name from a locale setting such as
// "en_US.UTF-8" or "de_DE.ISO-8859-15@euro". It returns "" when the setting
// has no dot or nothing after it.
func Codeset(setting string) charset.Name {
	i := strings.LastIndexByte(setting, '.')
	if i < 0 {
		return ""
	}
	cs := setting[i+1:]
	if j := strings.IndexByte(cs, '@'); j >= 0 {
		cs = cs[:j]
	}
	return charset.Normalize(cs)
}

// IsUTF8 reports whether a locale setting selects UTF-8.
func IsUTF8(setting string) bool {
	if Codeset(setting).IsUTF8() {
		return true
	}
	return strings.HasSuffix(strings.ToLower(setting), ".utf8")
}

// InteractiveMode controls whether the resolver may prompt.
type InteractiveMode string

// Interactive modes.
const (
	InteractiveAuto   InteractiveMode = "auto"
	InteractiveAlways InteractiveMode = "always"
	InteractiveNever  InteractiveMode = "never"
)

// UnmarshalText validates the mode while decoding configuration.
func (m *InteractiveMode) UnmarshalText(text []byte) error {
	switch v := InteractiveMode(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case "":
		*m = InteractiveAuto
	case InteractiveAuto, InteractiveAlways, InteractiveNever:
		*m = v
	default:
		return fmt.Errorf("invalid interactive mode %q (must be auto, always or never)", string(text))
	}
	return nil
}

// Enabled reports whether prompting should happen given whether the console
// is a terminal.
func (m InteractiveMode) Enabled(terminal bool) bool {
	switch m {
	case InteractiveAlways:
		return true
	case InteractiveNever:
		return false
	default:
		return terminal
	}
}
