// Package commands provides the high-level command implementations behind
// the prismatic CLI.
//
// Each command is implemented in its own subdirectory:
//   - resolve/  - Resolve a selection into an ordered file set
//   - deps/     - Dependency order of one component
//   - list/     - Components of a category
//   - validate/ - Check a catalog document
//   - publish/  - Copy a resolved file set into a public directory
//
// This file re-exports the command functions so callers import one package.
package commands

import (
	"github.com/arthur-debert/prismatic/pkg/commands/deps"
	"github.com/arthur-debert/prismatic/pkg/commands/list"
	"github.com/arthur-debert/prismatic/pkg/commands/publish"
	"github.com/arthur-debert/prismatic/pkg/commands/resolve"
	"github.com/arthur-debert/prismatic/pkg/commands/validate"
	"github.com/arthur-debert/prismatic/pkg/core"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// Resolve expands a selection and builds its file set.
type ResolveOptions = resolve.ResolveOptions

func Resolve(engine *core.Engine, opts ResolveOptions) (*types.ResolveResult, error) {
	return resolve.Resolve(engine, opts)
}

// Deps reports the dependency order of one component.
type DepsOptions = deps.DepsOptions

func Deps(engine *core.Engine, opts DepsOptions) (*types.DepsResult, error) {
	return deps.Deps(engine, opts)
}

// List returns the components of a category.
type ListOptions = list.ListOptions

func List(engine *core.Engine, opts ListOptions) (*types.ListResult, error) {
	return list.List(engine, opts)
}

// Validate checks a catalog document.
type ValidateOptions = validate.ValidateOptions

func Validate(fs types.FS, opts ValidateOptions) (*types.ValidateResult, error) {
	return validate.Validate(fs, opts)
}

// Publish copies a resolved file set into the public directory.
type PublishOptions = publish.PublishOptions

func Publish(engine *core.Engine, opts PublishOptions) (*types.PublishResult, error) {
	return publish.Publish(engine, opts)
}
