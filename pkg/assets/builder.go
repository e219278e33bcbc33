package assets

import (
	"time"

	"github.com/arthur-debert/prismatic/pkg/files"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/rs/zerolog"
)

// BaselineLanguages are always loaded in the control context
var BaselineLanguages = []string{"markup", "javascript", "json"}

// Defaults fill categories a rendered page leaves empty
type Defaults struct {
	Themes    []string `json:"themes" yaml:"themes" koanf:"themes"`
	Languages []string `json:"languages" yaml:"languages" koanf:"languages"`
	Plugins   []string `json:"plugins" yaml:"plugins" koanf:"plugins"`
}

// Request describes one set to build
type Request struct {
	Themes    []string
	Languages []string
	Plugins   []string
	Context   types.RenderContext

	// IncludeCore puts the Prism runtime script first
	IncludeCore bool

	// CustomThemesDir overrides the resolver's custom themes directory
	CustomThemesDir string

	// UseDefaults fills empty categories from the builder's Defaults.
	// Only render sessions set it; a resolved configuration is built as is.
	UseDefaults bool
}

// Observer is told about every completed build
type Observer interface {
	BuildCompleted(ctx types.RenderContext, set *types.FileSet, elapsed time.Duration)
}

// Option configures a Builder
type Option func(*Builder)

// WithObserver reports builds to o
func WithObserver(o Observer) Option {
	return func(b *Builder) {
		b.observer = o
	}
}

// Builder turns requests into file sets
type Builder struct {
	files    *files.Resolver
	defaults Defaults
	observer Observer
	logger   zerolog.Logger
}

// NewBuilder creates a builder resolving files through fr
func NewBuilder(fr *files.Resolver, defaults Defaults, opts ...Option) *Builder {
	b := &Builder{
		files:    fr,
		defaults: defaults,
		logger:   logging.GetLogger("assets"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Defaults returns the fallback selections
func (b *Builder) Defaults() Defaults {
	return b.defaults
}

// Build resolves a request into a file set. Dependency cycles fail the
// build; missing files are left out.
func (b *Builder) Build(req Request) (*types.FileSet, error) {
	start := time.Now()
	done := logging.LogOperationStart(b.logger, "build asset set")
	defer done()

	fr := b.files
	if req.CustomThemesDir != "" {
		fr = fr.WithCustomThemesDir(req.CustomThemesDir)
	}

	themes, languages, plugins := named(req.Themes), named(req.Languages), named(req.Plugins)
	if req.UseDefaults {
		themes = orDefault(themes, b.defaults.Themes)
		languages = orDefault(languages, b.defaults.Languages)
		plugins = orDefault(plugins, b.defaults.Plugins)
	}

	var ordered []string
	if req.IncludeCore {
		ordered = append(ordered, fr.CoreFile())
	}

	ordered = append(ordered, fr.ThemeFiles(themes)...)

	languageFiles, err := fr.LanguageFiles(languages)
	if err != nil {
		return nil, err
	}
	ordered = append(ordered, languageFiles...)

	pluginFiles, err := fr.PluginFiles(plugins)
	if err != nil {
		return nil, err
	}
	ordered = append(ordered, pluginFiles...)

	if req.Context.IsControl() {
		baseline, err := fr.LanguageFiles(BaselineLanguages)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, baseline...)
	}

	set := types.NewFileSet()
	for _, p := range ordered {
		if types.KindOf(p) == types.KindUnknown {
			continue
		}
		set.Add(p)
	}

	b.logger.Debug().
		Str("context", string(req.Context)).
		Int("scripts", len(set.Scripts())).
		Int("stylesheets", len(set.Stylesheets())).
		Msg("Asset set built")

	if b.observer != nil {
		b.observer.BuildCompleted(req.Context, set, time.Since(start))
	}
	return set, nil
}

// named drops empty handles
func named(handles []string) []string {
	var kept []string
	for _, h := range handles {
		if h != "" {
			kept = append(kept, h)
		}
	}
	return kept
}

func orDefault(handles, fallback []string) []string {
	if len(handles) == 0 {
		return fallback
	}
	return handles
}
