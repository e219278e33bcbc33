package selection

import (
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Source is the read side of the catalog selection needs
type Source interface {
	Handles(category types.Category) []string
	Definition(category types.Category, handle string) (types.Definition, bool)
}

// Entry is one selected component ready for display
type Entry struct {
	Handle string `json:"handle" yaml:"handle"`
	Title  string `json:"title" yaml:"title"`

	// Custom entries come from the custom themes directory, not the catalog
	Custom bool `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Handles returns the handles of entries in order
func Handles(entries []Entry) []string {
	handles := make([]string, 0, len(entries))
	for _, e := range entries {
		handles = append(handles, e.Handle)
	}
	return handles
}

// Expand returns the catalog handles a selector picks, in catalog order for
// the wildcard and in selector order otherwise
func Expand(src Source, category types.Category, sel types.Selector) []string {
	if sel.IsWildcard() {
		return src.Handles(category)
	}

	logger := logging.GetLogger("selection")
	seen := make(map[string]bool)
	handles := make([]string, 0, len(sel.Handles()))
	for _, handle := range sel.Handles() {
		if seen[handle] {
			continue
		}
		seen[handle] = true

		if _, ok := src.Definition(category, handle); !ok {
			logger.Debug().
				Str("category", category.String()).
				Str("handle", handle).
				Msg("Dropping handle missing from catalog")
			continue
		}
		handles = append(handles, handle)
	}
	return handles
}

// Describe expands a selector and attaches titles. A selected definition
// without a title fails the whole call.
func Describe(src Source, category types.Category, sel types.Selector) ([]Entry, error) {
	handles := Expand(src, category, sel)
	entries := make([]Entry, 0, len(handles))
	for _, handle := range handles {
		def, _ := src.Definition(category, handle)
		if !def.HasTitle() {
			return nil, errors.Newf(errors.ErrMissingTitle, "definition %s/%s is missing a title", category, handle).
				WithDetail("category", category.String()).
				WithDetail("handle", handle)
		}
		entries = append(entries, Entry{Handle: handle, Title: def.Title})
	}
	return entries, nil
}

// CustomThemes returns the raw selector handles the catalog did not match.
// The wildcard token is never a custom theme.
func CustomThemes(sel types.Selector, matched []string) []Entry {
	known := make(map[string]bool, len(matched))
	for _, h := range matched {
		known[h] = true
	}

	var entries []Entry
	for _, handle := range sel.Handles() {
		if known[handle] {
			continue
		}
		known[handle] = true
		entries = append(entries, Entry{Handle: handle, Title: TitleFromHandle(handle), Custom: true})
	}
	return entries
}

// TitleFromHandle derives a display title: "my-dark-theme" becomes
// "My Dark Theme"
func TitleFromHandle(handle string) string {
	// Casers are stateful, one per call
	caser := cases.Title(language.Und, cases.NoLower)
	return caser.String(strings.Join(strings.Split(handle, "-"), " "))
}

// Themes describes the theme selection of cfg. When a custom themes
// directory is configured, handles unknown to the catalog follow the
// catalog matches as custom entries.
func Themes(src Source, cfg types.Configuration) ([]Entry, error) {
	entries, err := Describe(src, types.CategoryThemes, cfg.Themes)
	if err != nil {
		return nil, err
	}
	if cfg.CustomThemesDir == "" {
		return entries, nil
	}
	return append(entries, CustomThemes(cfg.Themes, Handles(entries))...), nil
}

// Merge overlays user on defaults per category. A set user selector replaces
// the default for its category outright; lists are never merged.
func Merge(defaults, user types.Configuration) types.Configuration {
	merged := defaults
	for _, category := range types.Categories() {
		if sel := user.Selector(category); sel.IsSet() {
			merged = merged.WithSelector(category, sel)
		}
	}
	if user.CustomThemesDir != "" {
		merged.CustomThemesDir = user.CustomThemesDir
	}
	return merged
}
