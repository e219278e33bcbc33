package cache

import (
	"sync"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the value stored under a key
type ComputeFunc func() (interface{}, error)

// Cache is a get-or-compute store
type Cache interface {
	// GetOrSet returns the value for key, computing and storing it first
	// if it is absent
	GetOrSet(key string, compute ComputeFunc) (interface{}, error)

	// Delete evicts a key
	Delete(key string)

	// Has reports whether a value is stored for key
	Has(key string) bool
}

// Memory is an in-process Cache
type Memory struct {
	mu     sync.RWMutex
	values map[string]interface{}
	group  singleflight.Group
}

// NewMemory creates an empty in-memory cache
func NewMemory() *Memory {
	return &Memory{values: make(map[string]interface{})}
}

var (
	defaultCache     *Memory
	defaultCacheOnce sync.Once
)

// Default returns the process-wide cache
func Default() *Memory {
	defaultCacheOnce.Do(func() {
		defaultCache = NewMemory()
	})
	return defaultCache
}

// GetOrSet implements Cache
func (m *Memory) GetOrSet(key string, compute ComputeFunc) (interface{}, error) {
	if v, ok := m.get(key); ok {
		return v, nil
	}

	v, err, shared := m.group.Do(key, func() (interface{}, error) {
		// Another caller may have stored the value between our read and Do
		if v, ok := m.get(key); ok {
			return v, nil
		}

		logger := logging.GetLogger("cache")
		logger.Debug().Str("key", key).Msg("Computing cache value")

		v, err := compute()
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.values[key] = v
		m.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		logger := logging.GetLogger("cache")
		logger.Trace().Str("key", key).Msg("Shared in-flight cache computation")
	}
	return v, nil
}

// Delete implements Cache
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Has implements Cache
func (m *Memory) Has(key string) bool {
	_, ok := m.get(key)
	return ok
}

func (m *Memory) get(key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Get is a typed GetOrSet. A stored value of the wrong type is an internal
// error: two callers disagree on what lives under the key.
func Get[T any](c Cache, key string, compute func() (T, error)) (T, error) {
	var zero T

	v, err := c.GetOrSet(key, func() (interface{}, error) {
		return compute()
	})
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrInternal, "cache key %q holds %T", key, v).
			WithDetail("key", key)
	}
	return typed, nil
}
