// Package config provides configuration management for the find-non-ascii CLI.
//
// Values are layered with koanf: built-in defaults, then an optional config
// file (.find-non-ascii.yaml, .yml or .toml), then FINDNONASCII_* environment
// variables, then command-line flags. The POSIX locale variables are loaded
// separately into Locale.
package config

import (
	"time"

	"github.com/leapstack-labs/findnonascii/internal/charset"
	"github.com/leapstack-labs/findnonascii/internal/locale"
)

// Config holds all CLI configuration options.
type Config struct {
	Encoding      charset.Name           `koanf:"encoding"` // empty: derive from the locale
	Interactive   locale.InteractiveMode `koanf:"interactive"`
	OutputFormat  string                 `koanf:"output"`
	Color         string                 `koanf:"color"`
	Verbose       bool                   `koanf:"verbose"`
	Watch         bool                   `koanf:"watch"`
	WatchDebounce time.Duration          `koanf:"watch_debounce"`
	Locale        locale.Env             `koanf:"locale"`
}

// Default configuration values.
const (
	DefaultInteractive   = locale.InteractiveAuto
	DefaultOutput        = "text"
	DefaultColor         = "auto"
	DefaultWatchDebounce = 100 * time.Millisecond
	EnvPrefix            = "FINDNONASCII_"
)

// ConfigFileNames are searched for in the working directory, in order.
var ConfigFileNames = []string{
	".find-non-ascii.yaml",
	".find-non-ascii.yml",
	".find-non-ascii.toml",
}

// Default returns the configuration used when nothing has been loaded.
func Default() *Config {
	return &Config{
		Interactive:   DefaultInteractive,
		OutputFormat:  DefaultOutput,
		Color:         DefaultColor,
		WatchDebounce: DefaultWatchDebounce,
	}
}
