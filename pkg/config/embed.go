package config

import (
	_ "embed"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}

// defaultsProvider parses the embedded TOML once per load and hands it to
// koanf as an already decoded map
func defaultsProvider() (koanf.Provider, error) {
	values, err := toml.Parser().Unmarshal(defaultConfig)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "embedded defaults are not valid TOML")
	}
	return confmap.Provider(values, ""), nil
}
