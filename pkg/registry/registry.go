// Package registry holds named values in registration order. The catalog
// keeps one registry of definitions per category.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/prismatic/pkg/errors"
)

// Registry is a concurrency safe name to value table
type Registry[T any] interface {
	Register(name string, item T) error
	Get(name string) (T, error)
	Remove(name string) error
	Has(name string) bool

	// List returns the names sorted
	List() []string
	// Names returns the names in registration order
	Names() []string
	// Values returns the items in registration order
	Values() []T

	Clear()
	Count() int
}

type entry[T any] struct {
	name string
	item T
}

type ordered[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	index   map[string]int
}

func New[T any]() Registry[T] {
	return &ordered[T]{index: map[string]int{}}
}

func (r *ordered[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "cannot register an empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.index[name]; taken {
		return errors.Newf(errors.ErrAlreadyExists, "%q is already registered", name).WithDetail("name", name)
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, entry[T]{name: name, item: item})
	return nil
}

func (r *ordered[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.index[name]; ok {
		return r.entries[i].item, nil
	}
	var zero T
	return zero, errors.Newf(errors.ErrNotFound, "%q is not registered", name).WithDetail("name", name)
}

// Remove drops name and shifts later entries down, keeping the index dense
func (r *ordered[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	at, ok := r.index[name]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "%q is not registered", name).WithDetail("name", name)
	}
	r.entries = append(r.entries[:at], r.entries[at+1:]...)
	delete(r.index, name)
	for i := at; i < len(r.entries); i++ {
		r.index[r.entries[i].name] = i
	}
	return nil
}

func (r *ordered[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[name]
	return ok
}

func (r *ordered[T]) List() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

func (r *ordered[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

func (r *ordered[T]) Values() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]T, len(r.entries))
	for i, e := range r.entries {
		items[i] = e.item
	}
	return items
}

func (r *ordered[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.index = map[string]int{}
}

func (r *ordered[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// MustRegister panics when name cannot be registered
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

// MustGet panics when name is not registered
func MustGet[T any](reg Registry[T], name string) T {
	item, err := reg.Get(name)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return item
}
