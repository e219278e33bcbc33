package config

import (
	"github.com/arthur-debert/prismatic/pkg/types"
)

// Config is the effective configuration
type Config struct {
	Languages       types.Selector `koanf:"languages"`
	Themes          types.Selector `koanf:"themes"`
	Plugins         types.Selector `koanf:"plugins"`
	CustomThemesDir string         `koanf:"customThemesDir"`
	CatalogFile     string         `koanf:"catalogFile"`
	AssetsRoot      string         `koanf:"assetsRoot"`
	PublicDir       string         `koanf:"publicDir"`
	Editor          Editor         `koanf:"editor"`
	Server          Server         `koanf:"server"`

	// Source is the user config file that was loaded, if any
	Source string `koanf:"-"`
}

// Editor holds the editor defaults
type Editor struct {
	Themes    []string `koanf:"themes"`
	Languages []string `koanf:"languages"`
	Plugins   []string `koanf:"plugins"`
	Height    int      `koanf:"height"`
	TabWidth  int      `koanf:"tabWidth"`
}

// Server configures the HTTP adapter
type Server struct {
	Addr        string `koanf:"addr"`
	MetricsPath string `koanf:"metricsPath"`
}

// Configuration returns the selection input of the resolution pipeline
func (c *Config) Configuration() types.Configuration {
	return types.Configuration{
		Languages:       c.Languages,
		Themes:          c.Themes,
		Plugins:         c.Plugins,
		CustomThemesDir: c.CustomThemesDir,
	}
}

// Map renders the configuration with selectors in their file form
func (c *Config) Map() map[string]interface{} {
	return map[string]interface{}{
		"languages":       selectorValue(c.Languages),
		"themes":          selectorValue(c.Themes),
		"plugins":         selectorValue(c.Plugins),
		"customThemesDir": c.CustomThemesDir,
		"catalogFile":     c.CatalogFile,
		"assetsRoot":      c.AssetsRoot,
		"publicDir":       c.PublicDir,
		"editor": map[string]interface{}{
			"themes":    nonNil(c.Editor.Themes),
			"languages": nonNil(c.Editor.Languages),
			"plugins":   nonNil(c.Editor.Plugins),
			"height":    c.Editor.Height,
			"tabWidth":  c.Editor.TabWidth,
		},
		"server": map[string]interface{}{
			"addr":        c.Server.Addr,
			"metricsPath": c.Server.MetricsPath,
		},
	}
}

func selectorValue(s types.Selector) interface{} {
	if s.IsWildcard() && len(s.Raw()) == 1 {
		return types.WildcardToken
	}
	return nonNil(s.Raw())
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
