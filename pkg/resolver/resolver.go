package resolver

import (
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/rs/zerolog"
)

// Lookup finds definitions. A missing handle is reported with ok == false.
type Lookup interface {
	Definition(category types.Category, handle string) (types.Definition, bool)
}

// Resolver walks requires-edges of a catalog
type Resolver struct {
	lookup Lookup
	logger zerolog.Logger
}

// New creates a resolver over lookup
func New(lookup Lookup) *Resolver {
	return &Resolver{
		lookup: lookup,
		logger: logging.GetLogger("resolver"),
	}
}

// walker holds the state of one call
type walker struct {
	lookup   Lookup
	category types.Category
	acc      []string
	path     []string
	onPath   map[string]bool
}

// Walk returns the reversed pre-order of the dependency walk from handle.
// A handle required along two branches appears once per branch.
func (r *Resolver) Walk(handle string, category types.Category) ([]string, error) {
	w := &walker{
		lookup:   r.lookup,
		category: category,
		onPath:   make(map[string]bool),
	}

	if err := w.visit(handle); err != nil {
		r.logger.Debug().Err(err).Str("handle", handle).Str("category", category.String()).Msg("Dependency walk failed")
		return nil, err
	}

	reverse(w.acc)
	r.logger.Trace().
		Str("handle", handle).
		Str("category", category.String()).
		Strs("order", w.acc).
		Msg("Dependency walk complete")
	return w.acc, nil
}

func (w *walker) visit(handle string) error {
	if w.onPath[handle] {
		return &CyclicDependencyError{Category: w.category, Cycle: w.cycleTo(handle)}
	}

	w.acc = append(w.acc, handle)

	def, ok := w.lookup.Definition(w.category, handle)
	if !ok || !def.HasRequirements() {
		return nil
	}

	w.onPath[handle] = true
	w.path = append(w.path, handle)
	for _, req := range def.Requires {
		if err := w.visit(req); err != nil {
			return err
		}
	}
	w.path = w.path[:len(w.path)-1]
	delete(w.onPath, handle)
	return nil
}

// cycleTo returns the active path from the first visit of handle, closed
// with handle again
func (w *walker) cycleTo(handle string) []string {
	for i, h := range w.path {
		if h == handle {
			cycle := append([]string(nil), w.path[i:]...)
			return append(cycle, handle)
		}
	}
	return []string{handle, handle}
}

// ResolveRequirements returns the dependency order for handle with repeated
// handles collapsed to their first position: leaf dependencies first, the
// requested handle last.
func (r *Resolver) ResolveRequirements(handle string, category types.Category) ([]string, error) {
	order, err := r.Walk(handle, category)
	if err != nil {
		return nil, err
	}
	return Unique(order), nil
}

// ResolveAll resolves every handle in turn and concatenates the results,
// keeping the first occurrence of each handle
func (r *Resolver) ResolveAll(handles []string, category types.Category) ([]string, error) {
	var all []string
	for _, handle := range handles {
		order, err := r.Walk(handle, category)
		if err != nil {
			return nil, err
		}
		all = append(all, order...)
	}
	return Unique(all), nil
}

// Unique drops repeated strings, keeping first occurrences in order
func Unique(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
