package core

import (
	"github.com/arthur-debert/prismatic/pkg/assets"
	"github.com/arthur-debert/prismatic/pkg/cache"
	"github.com/arthur-debert/prismatic/pkg/catalog"
	"github.com/arthur-debert/prismatic/pkg/config"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/files"
	"github.com/arthur-debert/prismatic/pkg/filesystem"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/metrics"
	"github.com/arthur-debert/prismatic/pkg/paths"
	"github.com/arthur-debert/prismatic/pkg/publish"
	"github.com/arthur-debert/prismatic/pkg/resolver"
	"github.com/arthur-debert/prismatic/pkg/selection"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// Option configures an Engine
type Option func(*options)

type options struct {
	fs      types.FS
	cache   cache.Cache
	metrics *metrics.Metrics
	dirs    *files.Dirs
}

// WithFS replaces the operating system filesystem
func WithFS(fs types.FS) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithCache replaces the process-wide catalog cache
func WithCache(c cache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithMetrics reports catalog loads, missing files and builds to m
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithDirs replaces the packaged search directories
func WithDirs(dirs files.Dirs) Option {
	return func(o *options) {
		o.dirs = &dirs
	}
}

// Engine is the assembled resolution pipeline
type Engine struct {
	Config    *config.Config
	Paths     paths.Paths
	Aliases   *paths.Aliases
	FS        types.FS
	Provider  *catalog.Provider
	Catalog   *catalog.Catalog
	Deps      *resolver.Resolver
	Files     *files.Resolver
	Selection *selection.ConfigResolver
	Builder   *assets.Builder
	Metrics   *metrics.Metrics
}

// New loads the catalog named by cfg and wires every collaborator around it
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	logger := logging.GetLogger("core")

	if cfg == nil {
		var err error
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = filesystem.NewOS()
	}

	p, err := paths.New(cfg.AssetsRoot)
	if err != nil {
		return nil, err
	}
	aliases := paths.DefaultAliases(p)

	var providerOpts []catalog.ProviderOption
	if o.metrics != nil {
		providerOpts = append(providerOpts, catalog.WithLoadObserver(o.metrics))
	}
	provider := catalog.NewProvider(o.cache, catalogSource(o.fs, aliases, cfg.CatalogFile), providerOpts...)

	cat, err := provider.Catalog()
	if err != nil {
		return nil, err
	}

	dirs := files.DefaultDirs()
	if o.dirs != nil {
		dirs = *o.dirs
	}
	dirs.CustomThemes = cfg.CustomThemesDir

	var fileOpts []files.Option
	var builderOpts []assets.Option
	if o.metrics != nil {
		fileOpts = append(fileOpts, files.WithObserver(o.metrics))
		builderOpts = append(builderOpts, assets.WithObserver(o.metrics))
	}

	fr := files.NewResolver(filesystem.NewFinder(o.fs), aliases, cat, dirs, fileOpts...)

	engine := &Engine{
		Config:    cfg,
		Paths:     p,
		Aliases:   aliases,
		FS:        o.fs,
		Provider:  provider,
		Catalog:   cat,
		Deps:      resolver.New(cat),
		Files:     fr,
		Selection: selection.NewConfigResolver(cat, cfg.Configuration()),
		Builder: assets.NewBuilder(fr, assets.Defaults{
			Themes:    cfg.Editor.Themes,
			Languages: cfg.Editor.Languages,
			Plugins:   cfg.Editor.Plugins,
		}, builderOpts...),
		Metrics: o.metrics,
	}

	logger.Debug().
		Str("assetsRoot", p.AssetsRoot()).
		Str("catalog", sourceName(cfg.CatalogFile)).
		Int("languages", cat.Count(types.CategoryLanguages)).
		Int("themes", cat.Count(types.CategoryThemes)).
		Int("plugins", cat.Count(types.CategoryPlugins)).
		Msg("Engine ready")

	return engine, nil
}

// Publisher returns a publisher writing into publicDir, or the configured
// public directory when publicDir is empty. On disk the copy runs as a
// synthfs pipeline; other filesystems are written directly.
func (e *Engine) Publisher(publicDir, urlPrefix string) (publish.Publisher, string, error) {
	if publicDir == "" {
		publicDir = e.Config.PublicDir
	}
	if publicDir == "" {
		publicDir = e.Paths.PublicDir()
	}
	dir, err := e.Aliases.Resolve(publicDir)
	if err != nil {
		return nil, "", errors.Wrapf(err, errors.ErrPublish, "cannot resolve public directory %s", publicDir)
	}
	if filesystem.OnDisk(e.FS) {
		pub, err := publish.NewPipelinePublisher(e.FS, e.Aliases, dir, urlPrefix)
		if err != nil {
			return nil, "", err
		}
		return pub, dir, nil
	}
	return publish.NewDirPublisher(e.FS, e.Aliases, dir, urlPrefix), dir, nil
}

func catalogSource(fs types.FS, aliases *paths.Aliases, file string) catalog.Source {
	if file == "" {
		return catalog.EmbeddedSource()
	}
	return func() ([]byte, error) {
		resolved, err := aliases.Resolve(file)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "cannot resolve catalog path %s", file)
		}
		return catalog.FileSource(fs, resolved)()
	}
}

func sourceName(file string) string {
	if file == "" {
		return "embedded"
	}
	return file
}
