package resolve

import (
	"github.com/arthur-debert/prismatic/pkg/assets"
	"github.com/arthur-debert/prismatic/pkg/core"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/selection"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// ResolveOptions defines the options for the Resolve command.
type ResolveOptions struct {
	// Selection overrides the configured selectors for the categories it sets.
	Selection types.Configuration

	// Context selects the render context; control adds the baseline languages.
	Context types.RenderContext

	// IncludeCore puts the Prism runtime script first.
	IncludeCore bool
}

// Resolve expands the selection and builds the ordered file set for it.
func Resolve(engine *core.Engine, opts ResolveOptions) (*types.ResolveResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Resolve").Msg("Executing command")

	resolved, err := engine.Selection.Resolve(opts.Selection)
	if err != nil {
		return nil, err
	}

	ctx := opts.Context
	if ctx == "" {
		ctx = types.ContextSite
	}

	set, err := engine.Builder.Build(assets.Request{
		Themes:          selection.Handles(resolved.Themes),
		Languages:       selection.Handles(resolved.Languages),
		Plugins:         selection.Handles(resolved.Plugins),
		Context:         ctx,
		IncludeCore:     opts.IncludeCore,
		CustomThemesDir: resolved.CustomThemesDir,
	})
	if err != nil {
		return nil, err
	}

	result := &types.ResolveResult{
		Context:     ctx,
		Themes:      components(engine, types.CategoryThemes, resolved.Themes),
		Languages:   components(engine, types.CategoryLanguages, resolved.Languages),
		Plugins:     components(engine, types.CategoryPlugins, resolved.Plugins),
		Files:       set.Entries(),
		Scripts:     nonNil(set.Scripts()),
		Stylesheets: nonNil(set.Stylesheets()),
	}

	log.Info().
		Str("command", "Resolve").
		Int("scripts", len(result.Scripts)).
		Int("stylesheets", len(result.Stylesheets)).
		Msg("Command finished")
	return result, nil
}

func components(engine *core.Engine, category types.Category, entries []selection.Entry) []types.ComponentInfo {
	infos := make([]types.ComponentInfo, 0, len(entries))
	for _, entry := range entries {
		info := types.ComponentInfo{Handle: entry.Handle, Title: entry.Title, Category: category, Custom: entry.Custom}
		if def, ok := engine.Catalog.Definition(category, entry.Handle); ok {
			info = types.NewComponentInfo(def)
			info.Title = entry.Title
		}
		infos = append(infos, info)
	}
	return infos
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
