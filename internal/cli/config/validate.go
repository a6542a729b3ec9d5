package config

import (
	"fmt"
	"slices"
)

// Accepted values for enumerated options.
var (
	OutputFormats = []string{"text", "json", "table"}
	ColorModes    = []string{"auto", "always", "never"}
)

// Validate checks if the configuration is valid. The encoding name itself is
// checked later, when it is resolved.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (must be one of %v)", c.OutputFormat, OutputFormats)
	}
	if !slices.Contains(ColorModes, c.Color) {
		return fmt.Errorf("invalid color mode %q (must be one of %v)", c.Color, ColorModes)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}
