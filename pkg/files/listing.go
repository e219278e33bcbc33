package files

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/filesystem"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NamedFile is a file in an asset directory with a display name
type NamedFile struct {
	File string `json:"file" yaml:"file"`
	Name string `json:"name" yaml:"name"`
}

// ListNamed lists the files of dir ending in suffix, sorted by base name,
// each with a display name derived from it
func (r *Resolver) ListNamed(dir, suffix string) []NamedFile {
	fsDir, err := r.aliases.Resolve(dir)
	if err != nil {
		r.logger.Warn().Err(err).Str("dir", dir).Msg("Cannot resolve listing directory")
		return nil
	}

	byBase := make(map[string]NamedFile)
	for _, found := range r.finder.Find(fsDir, filesystem.HasSuffix(suffix)) {
		base := filepath.Base(found)
		if _, dup := byBase[base]; dup {
			continue
		}
		byBase[base] = NamedFile{File: base, Name: DisplayName(strings.TrimSuffix(base, suffix))}
	}

	listed := make([]NamedFile, 0, len(byBase))
	for _, nf := range byBase {
		listed = append(listed, nf)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].File < listed[j].File })
	return listed
}

// DisplayName turns a Prism file stem into a title. The leading segment of
// a hyphenated stem is the "prism" prefix and is dropped:
// "prism-solarizedlight" becomes "Solarizedlight", "prism" stays "Prism".
func DisplayName(stem string) string {
	parts := strings.Split(stem, "-")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	caser := cases.Title(language.Und, cases.NoLower)
	return caser.String(strings.Join(parts, " "))
}
