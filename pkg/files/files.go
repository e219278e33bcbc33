package files

import (
	"path/filepath"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/filesystem"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/paths"
	"github.com/arthur-debert/prismatic/pkg/resolver"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/rs/zerolog"
)

// Dirs are the search roots, as filesystem or aliased paths
type Dirs struct {
	Themes       string `json:"themes" yaml:"themes"`
	Languages    string `json:"languages" yaml:"languages"`
	Plugins      string `json:"plugins" yaml:"plugins"`
	CustomThemes string `json:"customThemes,omitempty" yaml:"customThemes,omitempty"`
}

// DefaultDirs points every category at the packaged distribution
func DefaultDirs() Dirs {
	return Dirs{
		Themes:    paths.PrismAlias + "/" + paths.ThemesSubdir,
		Languages: paths.PrismAlias + "/" + paths.LanguagesSubdir,
		Plugins:   paths.PrismAlias + "/" + paths.PluginsSubdir,
	}
}

// Observer is told about lookups that found nothing
type Observer interface {
	FileMissing(category types.Category, name string)
}

// Option configures a Resolver
type Option func(*Resolver)

// WithObserver reports missing files to o
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// Resolver maps handles of a category to file paths
type Resolver struct {
	finder   *filesystem.Finder
	aliases  *paths.Aliases
	lookup   resolver.Lookup
	deps     *resolver.Resolver
	dirs     Dirs
	observer Observer
	logger   zerolog.Logger
}

// NewResolver creates a file resolver. lookup supplies definitions for the
// requirement walk and the plugin noCSS flag.
func NewResolver(finder *filesystem.Finder, aliases *paths.Aliases, lookup resolver.Lookup, dirs Dirs, opts ...Option) *Resolver {
	if aliases == nil {
		aliases = paths.NewAliases()
	}
	r := &Resolver{
		finder:  finder,
		aliases: aliases,
		lookup:  lookup,
		deps:    resolver.New(lookup),
		dirs:    dirs,
		logger:  logging.GetLogger("files"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dirs returns the configured search roots
func (r *Resolver) Dirs() Dirs {
	return r.dirs
}

// WithCustomThemesDir returns a copy searching dir for themes the packaged
// directory lacks
func (r *Resolver) WithCustomThemesDir(dir string) *Resolver {
	clone := *r
	clone.dirs.CustomThemes = dir
	return &clone
}

// File finds filename under dir, then under customDir. Matches in dir are
// aliased; an empty result means neither directory has the file.
func (r *Resolver) File(filename, dir, customDir string) string {
	if found, ok := r.find(filename, dir); ok {
		return r.aliases.Alias(found)
	}
	if customDir == "" {
		return ""
	}
	if found, ok := r.find(filename, customDir); ok {
		return r.aliases.Alias(found)
	}
	return ""
}

func (r *Resolver) find(filename, dir string) (string, bool) {
	fsDir, err := r.aliases.Resolve(dir)
	if err != nil {
		r.logger.Warn().Err(err).Str("dir", dir).Msg("Cannot resolve search directory")
		return "", false
	}
	return r.finder.FindFirst(fsDir, filesystem.NameIs(filename))
}

// ThemeFile returns the stylesheet of a theme, or "" when there is none
func (r *Resolver) ThemeFile(handle string) string {
	file := r.File(handle+".css", r.dirs.Themes, r.dirs.CustomThemes)
	if file == "" {
		r.missing(types.CategoryThemes, handle+".css")
	}
	return file
}

// ThemeFiles returns the stylesheets of every theme that has one
func (r *Resolver) ThemeFiles(handles []string) []string {
	var out []string
	for _, handle := range handles {
		if file := r.ThemeFile(handle); file != "" {
			out = append(out, file)
		}
	}
	return out
}

// LanguageFiles returns one script per handle of each language's
// requirement walk, dependencies first
func (r *Resolver) LanguageFiles(handles []string) ([]string, error) {
	var out []string
	for _, handle := range handles {
		order, err := r.deps.ResolveRequirements(handle, types.CategoryLanguages)
		if err != nil {
			return nil, err
		}
		for _, requirement := range order {
			name := LanguageFileName(requirement)
			if file := r.File(name, r.dirs.Languages, ""); file != "" {
				out = append(out, file)
			} else {
				r.missing(types.CategoryLanguages, name)
			}
		}
	}
	return out, nil
}

// PluginFiles returns the script and, unless noCSS, the stylesheet of each
// plugin's requirement walk, dependencies first
func (r *Resolver) PluginFiles(handles []string) ([]string, error) {
	var out []string
	for _, handle := range handles {
		order, err := r.deps.ResolveRequirements(handle, types.CategoryPlugins)
		if err != nil {
			return nil, err
		}
		for _, requirement := range order {
			def, _ := r.lookup.Definition(types.CategoryPlugins, requirement)
			dir := JoinDir(r.dirs.Plugins, requirement)
			for _, name := range PluginFileNames(requirement, def.NoCSS) {
				if file := r.File(name, dir, ""); file != "" {
					out = append(out, file)
				} else {
					r.missing(types.CategoryPlugins, name)
				}
			}
		}
	}
	return out, nil
}

// Files dispatches on category
func (r *Resolver) Files(category types.Category, handles []string) ([]string, error) {
	switch category {
	case types.CategoryThemes:
		return r.ThemeFiles(handles), nil
	case types.CategoryLanguages:
		return r.LanguageFiles(handles)
	case types.CategoryPlugins:
		return r.PluginFiles(handles)
	}
	return nil, errors.Newf(errors.ErrUnknownCategory, "no file rule for category %q", category)
}

// CoreFile returns the Prism runtime script, or "" when it is missing
func (r *Resolver) CoreFile() string {
	file := r.File(filepath.Base(paths.CoreScript), r.dirs.Languages, "")
	if file == "" {
		r.missing(types.CategoryCore, filepath.Base(paths.CoreScript))
	}
	return file
}

func (r *Resolver) missing(category types.Category, name string) {
	r.logger.Debug().Str("category", category.String()).Str("file", name).Msg("No file found")
	if r.observer != nil {
		r.observer.FileMissing(category, name)
	}
}

// LanguageFileName is the script name of a language component
func LanguageFileName(handle string) string {
	return "prism-" + handle + ".min.js"
}

// PluginFileNames are the file names a plugin contributes
func PluginFileNames(handle string, noCSS bool) []string {
	names := []string{"prism-" + handle + ".min.js"}
	if !noCSS {
		names = append(names, "prism-"+handle+".css")
	}
	return names
}

// JoinDir appends a path segment to a filesystem or aliased directory
func JoinDir(dir, name string) string {
	if paths.IsAliased(dir) {
		return dir + "/" + name
	}
	return filepath.Join(dir, name)
}
