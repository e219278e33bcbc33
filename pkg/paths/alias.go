package paths

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/prismatic/pkg/errors"
)

// PrismAlias names the root of the packaged Prism distribution
const PrismAlias = "@prism"

// Aliases maps symbolic "@name" prefixes to filesystem roots
type Aliases struct {
	mu    sync.RWMutex
	roots map[string]string
}

// NewAliases creates an empty alias table
func NewAliases() *Aliases {
	return &Aliases{roots: make(map[string]string)}
}

// DefaultAliases returns a table with @prism pointing at the assets root
func DefaultAliases(p Paths) *Aliases {
	a := NewAliases()
	// AssetsRoot is always absolute and non-empty
	_ = a.Register(PrismAlias, p.AssetsRoot())
	return a
}

// Register binds alias to root. The alias must start with "@".
func (a *Aliases) Register(alias, root string) error {
	if !strings.HasPrefix(alias, "@") || len(alias) < 2 || strings.Contains(alias, "/") {
		return errors.Newf(errors.ErrInvalidInput, "invalid alias %q", alias).
			WithDetail("alias", alias)
	}
	if root == "" {
		return errors.Newf(errors.ErrInvalidInput, "alias %s needs a root directory", alias)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.roots[alias] = filepath.Clean(expandHome(root))
	return nil
}

// Root returns the directory bound to alias
func (a *Aliases) Root(alias string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	root, ok := a.roots[alias]
	return root, ok
}

// IsAliased reports whether p is written in "@alias/..." form
func IsAliased(p string) bool {
	return strings.HasPrefix(p, "@")
}

// Resolve turns an aliased path into a filesystem path. Plain paths are
// returned with ~ expanded.
func (a *Aliases) Resolve(p string) (string, error) {
	if !IsAliased(p) {
		return expandHome(p), nil
	}

	alias, rest, _ := strings.Cut(p, "/")
	root, ok := a.Root(alias)
	if !ok {
		return "", errors.Newf(errors.ErrNotFound, "unknown alias %s", alias).
			WithDetail("path", p)
	}
	if rest == "" {
		return root, nil
	}
	return filepath.Join(root, filepath.FromSlash(rest)), nil
}

// Alias rewrites a filesystem path under a registered root into aliased,
// slash-separated form. Paths outside every root are returned unchanged.
// When roots nest, the deepest one wins.
func (a *Aliases) Alias(p string) string {
	if p == "" || IsAliased(p) {
		return p
	}
	clean := filepath.Clean(p)

	for _, entry := range a.byDepth() {
		rel, err := filepath.Rel(entry.root, clean)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if rel == "." {
			return entry.alias
		}
		return entry.alias + "/" + filepath.ToSlash(rel)
	}
	return p
}

type aliasRoot struct {
	alias string
	root  string
}

func (a *Aliases) byDepth() []aliasRoot {
	a.mu.RLock()
	entries := make([]aliasRoot, 0, len(a.roots))
	for alias, root := range a.roots {
		entries = append(entries, aliasRoot{alias: alias, root: root})
	}
	a.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].root) != len(entries[j].root) {
			return len(entries[i].root) > len(entries[j].root)
		}
		return entries[i].alias < entries[j].alias
	})
	return entries
}
