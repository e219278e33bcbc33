package publish

import (
	"github.com/arthur-debert/prismatic/pkg/commands/resolve"
	"github.com/arthur-debert/prismatic/pkg/core"
	"github.com/arthur-debert/prismatic/pkg/logging"
	publisher "github.com/arthur-debert/prismatic/pkg/publish"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// PublishOptions defines the options for the Publish command.
type PublishOptions struct {
	resolve.ResolveOptions

	// PublicDir overrides the configured public directory.
	PublicDir string

	// URLPrefix is the URL the public directory is served under.
	URLPrefix string
}

// Publish resolves the selection and copies its files into the public
// directory, returning the servable paths in load order.
func Publish(engine *core.Engine, opts PublishOptions) (*types.PublishResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Publish").Msg("Executing command")

	resolved, err := resolve.Resolve(engine, opts.ResolveOptions)
	if err != nil {
		return nil, err
	}

	pub, dir, err := engine.Publisher(opts.PublicDir, opts.URLPrefix)
	if err != nil {
		return nil, err
	}

	set := types.NewFileSet()
	for _, entry := range resolved.Files {
		set.Add(entry.Path)
	}

	result, err := publisher.Set(pub, set)
	if err != nil {
		return nil, err
	}
	result.PublicDir = dir

	log.Info().Str("command", "Publish").Int("files", len(result.Files)).Str("dir", dir).Msg("Command finished")
	return &result, nil
}
