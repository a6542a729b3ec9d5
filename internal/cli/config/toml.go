package config

import (
	"github.com/pelletier/go-toml/v2"
)

// TOMLParser is a koanf.Parser for TOML config files.
type TOMLParser struct{}

// TOML returns a TOML parser.
func TOML() *TOMLParser {
	return &TOMLParser{}
}

// Unmarshal parses TOML bytes into a nested map.
func (p *TOMLParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal renders a nested map as TOML.
func (p *TOMLParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return toml.Marshal(o)
}
