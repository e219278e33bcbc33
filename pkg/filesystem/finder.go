package filesystem

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Predicate selects files by base name
type Predicate func(name string) bool

// NameIs matches one exact base name
func NameIs(name string) Predicate {
	return func(candidate string) bool {
		return candidate == name
	}
}

// HasSuffix matches base names ending in suffix
func HasSuffix(suffix string) Predicate {
	return func(candidate string) bool {
		return strings.HasSuffix(candidate, suffix)
	}
}

// Finder searches directory trees for files. A directory that is missing
// or unreadable yields no results and a logged warning, never an error.
type Finder struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewFinder creates a Finder over fs
func NewFinder(fs types.FS) *Finder {
	return &Finder{
		fs:     fs,
		logger: logging.GetLogger("finder"),
	}
}

// FS returns the filesystem the finder searches
func (f *Finder) FS() types.FS {
	return f.fs
}

// Find walks dir recursively and returns the sorted paths of every regular
// file whose base name satisfies match
func (f *Finder) Find(dir string, match Predicate) []string {
	if dir == "" {
		return nil
	}

	info, err := f.fs.Stat(dir)
	if err != nil {
		f.logger.Warn().Err(err).Str("dir", dir).Msg("Search directory unavailable")
		return nil
	}
	if !info.IsDir() {
		f.logger.Warn().Str("dir", dir).Msg("Search path is not a directory")
		return nil
	}

	backing, ok := f.fs.(aferoFS)
	if !ok {
		f.logger.Warn().Str("dir", dir).Msg("Search needs an afero backed filesystem")
		return nil
	}

	var found []string
	_ = afero.Walk(backing.Fs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			f.logger.Warn().Err(err).Str("dir", path).Msg("Failed to read directory")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && (match == nil || match(info.Name())) {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)

	f.logger.Trace().Str("dir", dir).Int("matches", len(found)).Msg("Search complete")
	return found
}

// FindFirst returns the shallowest, then lexically first, match in dir
func (f *Finder) FindFirst(dir string, match Predicate) (string, bool) {
	found := f.Find(dir, match)
	if len(found) == 0 {
		return "", false
	}

	best := found[0]
	for _, p := range found[1:] {
		if depth(p) < depth(best) {
			best = p
		}
	}
	return best, true
}

func depth(p string) int {
	return strings.Count(filepath.ToSlash(p), "/")
}
