package types

import (
	"path"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
)

// FileKind is the asset kind inferred from a file extension
type FileKind string

const (
	KindScript     FileKind = "script"
	KindStylesheet FileKind = "stylesheet"
	KindUnknown    FileKind = "unknown"
)

// KindOf infers the kind of a file from its extension
func KindOf(p string) FileKind {
	switch strings.ToLower(path.Ext(p)) {
	case ".js":
		return KindScript
	case ".css":
		return KindStylesheet
	}
	return KindUnknown
}

// FileEntry is a resolved file path plus its kind
type FileEntry struct {
	Path string   `json:"path" yaml:"path"`
	Kind FileKind `json:"kind" yaml:"kind"`
}

// NewFileEntry builds an entry, inferring the kind from the path
func NewFileEntry(p string) FileEntry {
	return FileEntry{Path: p, Kind: KindOf(p)}
}

// FileSet is an ordered, de-duplicated sequence of file entries.
// The first occurrence of a path wins; later duplicates are ignored.
type FileSet struct {
	entries []FileEntry
	seen    map[string]bool
}

// NewFileSet creates a file set from paths, keeping first occurrences
func NewFileSet(paths ...string) *FileSet {
	fs := &FileSet{seen: make(map[string]bool)}
	fs.Add(paths...)
	return fs
}

// Add appends paths that have not been seen yet. Empty paths are skipped.
func (f *FileSet) Add(paths ...string) {
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	for _, p := range paths {
		if p == "" || f.seen[p] {
			continue
		}
		f.seen[p] = true
		f.entries = append(f.entries, NewFileEntry(p))
	}
}

// Has reports whether the set already contains the path
func (f *FileSet) Has(p string) bool {
	return f.seen[p]
}

// Len returns the number of entries
func (f *FileSet) Len() int {
	return len(f.entries)
}

// Entries returns all entries in order
func (f *FileSet) Entries() []FileEntry {
	return append([]FileEntry(nil), f.entries...)
}

// Paths returns all paths in order
func (f *FileSet) Paths() []string {
	paths := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		paths = append(paths, e.Path)
	}
	return paths
}

// Scripts returns the script paths in order
func (f *FileSet) Scripts() []string {
	return f.ofKind(KindScript)
}

// Stylesheets returns the stylesheet paths in order
func (f *FileSet) Stylesheets() []string {
	return f.ofKind(KindStylesheet)
}

func (f *FileSet) ofKind(kind FileKind) []string {
	var paths []string
	for _, e := range f.entries {
		if e.Kind == kind {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Manifest is the serialisable view of a FileSet handed to publishing layers
type Manifest struct {
	Scripts     []string `json:"scripts" yaml:"scripts"`
	Stylesheets []string `json:"stylesheets" yaml:"stylesheets"`
}

// Manifest returns the partitioned view of the set
func (f *FileSet) Manifest() Manifest {
	return Manifest{
		Scripts:     nonNil(f.Scripts()),
		Stylesheets: nonNil(f.Stylesheets()),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// RenderContext distinguishes public pages from the administrative panel
type RenderContext string

const (
	ContextSite    RenderContext = "site"
	ContextControl RenderContext = "control"
)

// IsControl reports whether the context is the administrative one
func (c RenderContext) IsControl() bool {
	return c == ContextControl
}

// ParseRenderContext accepts "site", "control" or "" (site), ignoring case
func ParseRenderContext(name string) (RenderContext, error) {
	switch ctx := RenderContext(strings.ToLower(strings.TrimSpace(name))); ctx {
	case "":
		return ContextSite, nil
	case ContextSite, ContextControl:
		return ctx, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown render context %q (want site or control)", name).
		WithDetail("context", name)
}
