package selection

import (
	"github.com/arthur-debert/prismatic/pkg/types"
)

// Resolved is the expanded selection of every category
type Resolved struct {
	Themes          []Entry `json:"themes" yaml:"themes"`
	Languages       []Entry `json:"languages" yaml:"languages"`
	Plugins         []Entry `json:"plugins" yaml:"plugins"`
	CustomThemesDir string  `json:"customThemesDir,omitempty" yaml:"customThemesDir,omitempty"`
}

// Entries returns the entries of one category
func (r Resolved) Entries(category types.Category) []Entry {
	switch category {
	case types.CategoryThemes:
		return r.Themes
	case types.CategoryLanguages:
		return r.Languages
	case types.CategoryPlugins:
		return r.Plugins
	}
	return nil
}

// ConfigResolver expands configurations against a catalog, falling back to
// a default configuration for categories the caller leaves unset
type ConfigResolver struct {
	source   Source
	defaults types.Configuration
}

// NewConfigResolver creates a resolver with the given defaults
func NewConfigResolver(src Source, defaults types.Configuration) *ConfigResolver {
	return &ConfigResolver{source: src, defaults: defaults}
}

// Defaults returns the default configuration
func (r *ConfigResolver) Defaults() types.Configuration {
	return r.defaults
}

// Effective merges user over the defaults
func (r *ConfigResolver) Effective(user types.Configuration) types.Configuration {
	return Merge(r.defaults, user)
}

// Resolve expands every category of the effective configuration
func (r *ConfigResolver) Resolve(user types.Configuration) (Resolved, error) {
	cfg := r.Effective(user)

	themes, err := Themes(r.source, cfg)
	if err != nil {
		return Resolved{}, err
	}
	languages, err := Describe(r.source, types.CategoryLanguages, cfg.Languages)
	if err != nil {
		return Resolved{}, err
	}
	plugins, err := Describe(r.source, types.CategoryPlugins, cfg.Plugins)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{
		Themes:          themes,
		Languages:       languages,
		Plugins:         plugins,
		CustomThemesDir: cfg.CustomThemesDir,
	}, nil
}
