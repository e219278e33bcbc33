package types

import (
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
)

// Category identifies one section of the component catalog
type Category string

const (
	CategoryCore      Category = "core"
	CategoryLanguages Category = "languages"
	CategoryThemes    Category = "themes"
	CategoryPlugins   Category = "plugins"
)

// MetaKey is the reserved catalog entry that never describes a component
const MetaKey = "meta"

// AllCategories returns every category the catalog document may carry
func AllCategories() []Category {
	return []Category{CategoryCore, CategoryThemes, CategoryLanguages, CategoryPlugins}
}

// Categories returns the resolvable categories in output order.
// Theme files come first, then languages, then plugins.
func Categories() []Category {
	return []Category{CategoryThemes, CategoryLanguages, CategoryPlugins}
}

// ParseCategory converts a user supplied name into a Category
func ParseCategory(name string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(name))); c {
	case CategoryCore, CategoryLanguages, CategoryThemes, CategoryPlugins:
		return c, nil
	}

	// Accept the singular forms used on the command line
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "language", "lang":
		return CategoryLanguages, nil
	case "theme":
		return CategoryThemes, nil
	case "plugin":
		return CategoryPlugins, nil
	}

	return "", errors.Newf(errors.ErrUnknownCategory, "unknown category %q", name).
		WithDetail("category", name)
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}
