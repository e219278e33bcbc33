package catalog

import (
	"github.com/arthur-debert/prismatic/pkg/cache"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// DefinitionsCacheKey is the fixed key the parsed catalog is cached under
const DefinitionsCacheKey = "prismatic:definitions"

// Source produces the raw catalog document
type Source func() ([]byte, error)

// EmbeddedSource reads the packaged catalog
func EmbeddedSource() Source {
	return func() ([]byte, error) {
		return Embedded(), nil
	}
}

// FileSource reads a catalog document from fs
func FileSource(fs types.FS, path string) Source {
	return func() ([]byte, error) {
		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "cannot read catalog %s", path).
				WithDetail("path", path)
		}
		return data, nil
	}
}

// LoadObserver is told about every parse attempt
type LoadObserver interface {
	CatalogLoaded(err error)
}

// ProviderOption configures a Provider
type ProviderOption func(*Provider)

// WithLoadObserver reports parse attempts to o
func WithLoadObserver(o LoadObserver) ProviderOption {
	return func(p *Provider) {
		p.observer = o
	}
}

// Provider hands out the parsed catalog, parsing it at most once per cache
type Provider struct {
	cache    cache.Cache
	source   Source
	observer LoadObserver
}

// NewProvider creates a provider over a cache and a document source. A nil
// cache means the process-wide cache; a nil source means the embedded catalog.
func NewProvider(c cache.Cache, source Source, opts ...ProviderOption) *Provider {
	if c == nil {
		c = cache.Default()
	}
	if source == nil {
		source = EmbeddedSource()
	}
	p := &Provider{cache: c, source: source}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Catalog returns the cached catalog, parsing the source on first use.
// Concurrent first callers share one parse; a failed parse is not cached.
func (p *Provider) Catalog() (*Catalog, error) {
	return cache.Get(p.cache, DefinitionsCacheKey, func() (*Catalog, error) {
		logger := logging.GetLogger("catalog")
		logger.Info().Str("key", DefinitionsCacheKey).Msg("Loading component catalog")

		cat, err := p.load()
		if p.observer != nil {
			p.observer.CatalogLoaded(err)
		}
		return cat, err
	})
}

func (p *Provider) load() (*Catalog, error) {
	data, err := p.source()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Invalidate drops the cached catalog so the next call parses again
func (p *Provider) Invalidate() {
	p.cache.Delete(DefinitionsCacheKey)
}
