package catalog

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/prismatic/pkg/cache"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/filesystem"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingSource(calls *int32, doc string) Source {
	return func() ([]byte, error) {
		atomic.AddInt32(calls, 1)
		return []byte(doc), nil
	}
}

func TestProviderParsesOnce(t *testing.T) {
	var calls int32
	c := cache.NewMemory()
	provider := NewProvider(c, countingSource(&calls, scenarioCatalog))

	first, err := provider.Catalog()
	require.NoError(t, err)
	second, err := provider.Catalog()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, c.Has(DefinitionsCacheKey))
}

func TestProviderConcurrentFirstUse(t *testing.T) {
	var calls int32
	provider := NewProvider(cache.NewMemory(), countingSource(&calls, scenarioCatalog))

	const callers = 16
	results := make([]*Catalog, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			cat, err := provider.Catalog()
			if err != nil {
				t.Errorf("Catalog() failed: %v", err)
				return
			}
			results[i] = cat
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, cat := range results {
		assert.Same(t, results[0], cat)
	}
}

func TestProviderDoesNotCacheFailures(t *testing.T) {
	var calls int32
	doc := `{"languages": 1}`
	provider := NewProvider(cache.NewMemory(), func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(doc), nil
	})

	_, err := provider.Catalog()
	require.Error(t, err)

	doc = scenarioCatalog
	cat, err := provider.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Count(types.CategoryLanguages))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProviderInvalidate(t *testing.T) {
	var calls int32
	provider := NewProvider(cache.NewMemory(), countingSource(&calls, scenarioCatalog))

	_, err := provider.Catalog()
	require.NoError(t, err)
	provider.Invalidate()
	_, err = provider.Catalog()
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFileSource(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/etc/prismatic", 0755))
	require.NoError(t, fsys.WriteFile("/etc/prismatic/components.json", []byte(scenarioCatalog), 0644))

	cat, err := NewProvider(cache.NewMemory(), FileSource(fsys, "/etc/prismatic/components.json")).Catalog()
	require.NoError(t, err)
	assert.True(t, cat.Has(types.CategoryPlugins, "toolbar"))

	_, err = NewProvider(cache.NewMemory(), FileSource(fsys, "/missing.json")).Catalog()
	assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogLoad), "got %v", err)
}

func TestProviderDefaults(t *testing.T) {
	provider := NewProvider(cache.NewMemory(), nil)
	cat, err := provider.Catalog()
	require.NoError(t, err)
	assert.True(t, cat.Has(types.CategoryLanguages, "javascript"))
}

type loadRecorder struct {
	errs []error
}

func (r *loadRecorder) CatalogLoaded(err error) {
	r.errs = append(r.errs, err)
}

func TestProviderReportsLoads(t *testing.T) {
	rec := &loadRecorder{}
	provider := NewProvider(cache.NewMemory(), countingSource(new(int32), scenarioCatalog), WithLoadObserver(rec))

	_, err := provider.Catalog()
	require.NoError(t, err)
	_, err = provider.Catalog()
	require.NoError(t, err)
	require.Len(t, rec.errs, 1)
	assert.NoError(t, rec.errs[0])

	broken := NewProvider(cache.NewMemory(), countingSource(new(int32), `{"languages": 3}`), WithLoadObserver(rec))
	_, err = broken.Catalog()
	require.Error(t, err)
	require.Len(t, rec.errs, 2)
	assert.Error(t, rec.errs[1])
}
