package deps

import (
	"github.com/arthur-debert/prismatic/pkg/core"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// DepsOptions defines the options for the Deps command.
type DepsOptions struct {
	Category types.Category
	Handle   string

	// Files adds the component files in load order
	Files bool
}

// Deps reports the dependency order of one component.
func Deps(engine *core.Engine, opts DepsOptions) (*types.DepsResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Deps").Str("handle", opts.Handle).Msg("Executing command")

	if opts.Handle == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a component handle is required")
	}
	if opts.Category == types.CategoryCore {
		return nil, errors.Newf(errors.ErrUnknownCategory, "category %q has no dependencies", opts.Category).
			WithDetail("category", opts.Category.String())
	}
	if !engine.Catalog.Has(opts.Category, opts.Handle) {
		return nil, errors.Newf(errors.ErrNotFound, "no %s component named %q", opts.Category, opts.Handle).
			WithDetail("category", opts.Category.String()).
			WithDetail("handle", opts.Handle)
	}

	walk, err := engine.Deps.Walk(opts.Handle, opts.Category)
	if err != nil {
		return nil, err
	}
	order, err := engine.Deps.ResolveRequirements(opts.Handle, opts.Category)
	if err != nil {
		return nil, err
	}

	result := &types.DepsResult{
		Category: opts.Category,
		Handle:   opts.Handle,
		Order:    order,
		Walk:     walk,
	}

	if opts.Files {
		files, err := engine.Files.Files(opts.Category, []string{opts.Handle})
		if err != nil {
			return nil, err
		}
		result.Files = files
	}

	log.Info().Str("command", "Deps").Int("dependencies", len(order)-1).Msg("Command finished")
	return result, nil
}
