package catalog

import (
	"fmt"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/registry"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// Catalog holds every definition, grouped by category in document order.
// It is read-only once parsing completes.
type Catalog struct {
	categories map[types.Category]registry.Registry[types.Definition]
}

// New creates an empty catalog with every category present
func New() *Catalog {
	c := &Catalog{categories: make(map[types.Category]registry.Registry[types.Definition])}
	for _, category := range types.AllCategories() {
		c.categories[category] = registry.New[types.Definition]()
	}
	return c
}

// Add registers a definition under its category
func (c *Catalog) Add(def types.Definition) error {
	reg, ok := c.categories[def.Category]
	if !ok {
		return errors.Newf(errors.ErrUnknownCategory, "unknown category %q", def.Category).
			WithDetail("handle", def.Handle)
	}
	if def.Handle == types.MetaKey {
		return errors.Newf(errors.ErrInvalidInput, "%q is reserved", types.MetaKey)
	}
	return reg.Register(def.Handle, def)
}

// Definition looks up a handle. A missing handle is a normal outcome.
func (c *Catalog) Definition(category types.Category, handle string) (types.Definition, bool) {
	reg, ok := c.categories[category]
	if !ok {
		return types.Definition{}, false
	}
	def, err := reg.Get(handle)
	if err != nil {
		return types.Definition{}, false
	}
	return def, true
}

// Has reports whether a handle is defined in category
func (c *Catalog) Has(category types.Category, handle string) bool {
	reg, ok := c.categories[category]
	return ok && reg.Has(handle)
}

// Definitions returns every definition of a category in document order
func (c *Catalog) Definitions(category types.Category) []types.Definition {
	reg, ok := c.categories[category]
	if !ok {
		return nil
	}
	return reg.Values()
}

// DefinitionMap returns the definitions of a category keyed by handle
func (c *Catalog) DefinitionMap(category types.Category) map[string]types.Definition {
	defs := c.Definitions(category)
	m := make(map[string]types.Definition, len(defs))
	for _, d := range defs {
		m[d.Handle] = d
	}
	return m
}

// Handles returns the handles of a category in document order
func (c *Catalog) Handles(category types.Category) []string {
	reg, ok := c.categories[category]
	if !ok {
		return nil
	}
	return reg.Names()
}

// Count returns the number of definitions in a category
func (c *Catalog) Count(category types.Category) int {
	reg, ok := c.categories[category]
	if !ok {
		return 0
	}
	return reg.Count()
}

// Issue is one problem found in a catalog document
type Issue struct {
	Path    string `json:"path" yaml:"path"`
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Validate reports requirement edges the resolver will not be able to
// follow: references to handles missing from the category and handles
// that require themselves. Neither stops resolution.
func (c *Catalog) Validate() []Issue {
	var issues []Issue
	for _, category := range types.AllCategories() {
		for _, def := range c.Definitions(category) {
			for _, req := range def.Requires {
				path := fmt.Sprintf("/%s/%s/require", category, def.Handle)
				switch {
				case req == def.Handle:
					issues = append(issues, Issue{
						Path:    path,
						Keyword: "require",
						Message: fmt.Sprintf("%s requires itself", def.Handle),
					})
				case !c.Has(category, req):
					issues = append(issues, Issue{
						Path:    path,
						Keyword: "require",
						Message: fmt.Sprintf("%s requires unknown %s %q", def.Handle, category, req),
					})
				}
			}
		}
	}
	return issues
}
