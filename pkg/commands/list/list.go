package list

import (
	"strings"

	"github.com/arthur-debert/prismatic/pkg/core"
	"github.com/arthur-debert/prismatic/pkg/files"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	Category types.Category

	// Files attaches each component's main file and, for themes, adds the
	// stylesheets of the custom themes directory
	Files bool
}

// List returns the catalog components of a category in catalog order.
func List(engine *core.Engine, opts ListOptions) (*types.ListResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "List").Str("category", opts.Category.String()).Msg("Executing command")

	result := &types.ListResult{Category: opts.Category, Components: []types.ComponentInfo{}}
	known := make(map[string]bool)

	for _, def := range engine.Catalog.Definitions(opts.Category) {
		info := types.NewComponentInfo(def)
		if opts.Files {
			info.File = mainFile(engine, def)
		}
		known[def.Handle] = true
		result.Components = append(result.Components, info)
	}

	if opts.Files && opts.Category == types.CategoryThemes {
		if dir := engine.Files.Dirs().CustomThemes; dir != "" {
			for _, nf := range engine.Files.ListNamed(dir, ".css") {
				handle := strings.TrimSuffix(nf.File, ".css")
				if known[handle] {
					continue
				}
				result.Components = append(result.Components, types.ComponentInfo{
					Handle:   handle,
					Title:    nf.Name,
					Category: types.CategoryThemes,
					Custom:   true,
					File:     engine.Files.ThemeFile(handle),
				})
			}
		}
	}

	log.Info().Str("command", "List").Int("count", len(result.Components)).Msg("Command finished")
	return result, nil
}

func mainFile(engine *core.Engine, def types.Definition) string {
	dirs := engine.Files.Dirs()
	switch def.Category {
	case types.CategoryThemes:
		return engine.Files.ThemeFile(def.Handle)
	case types.CategoryLanguages:
		return engine.Files.File(files.LanguageFileName(def.Handle), dirs.Languages, "")
	case types.CategoryPlugins:
		name := files.PluginFileNames(def.Handle, true)[0]
		return engine.Files.File(name, files.JoinDir(dirs.Plugins, def.Handle), "")
	case types.CategoryCore:
		return engine.Files.CoreFile()
	}
	return ""
}
