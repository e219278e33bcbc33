package resolve_test

import (
	"testing"

	"github.com/arthur-debert/prismatic/pkg/commands/resolve"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/testutil"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	themes     = "@prism/css/prism/themes/"
	components = "@prism/js/prism/components/"
	plugins    = "@prism/js/prism/plugins/"
)

func TestResolveExplicitSelection(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	result, err := resolve.Resolve(env.Engine(), resolve.ResolveOptions{
		Selection: types.Configuration{
			Languages: types.SelectHandles("tsx"),
			Themes:    types.SelectHandles("prism-okaidia"),
			Plugins:   types.SelectHandles("copy-to-clipboard"),
		},
		IncludeCore: true,
	})
	require.NoError(t, err)

	assert.Equal(t, types.ContextSite, result.Context)
	assert.Equal(t, []string{
		components + "prism-core.min.js",
		components + "prism-clike.min.js",
		components + "prism-javascript.min.js",
		components + "prism-typescript.min.js",
		components + "prism-markup.min.js",
		components + "prism-jsx.min.js",
		components + "prism-tsx.min.js",
		plugins + "toolbar/prism-toolbar.min.js",
		plugins + "copy-to-clipboard/prism-copy-to-clipboard.min.js",
	}, result.Scripts)
	assert.Equal(t, []string{
		themes + "prism-okaidia.css",
		plugins + "toolbar/prism-toolbar.css",
	}, result.Stylesheets)

	require.Len(t, result.Themes, 1)
	assert.Equal(t, "Okaidia", result.Themes[0].Title)
	assert.Equal(t, "ocodia", result.Themes[0].Owner)
	require.Len(t, result.Plugins, 1)
	assert.Equal(t, []string{"toolbar"}, result.Plugins[0].Requires)
	assert.True(t, result.Plugins[0].NoCSS)
}

func TestResolveControlContextAddsBaseline(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	result, err := resolve.Resolve(env.Engine(), resolve.ResolveOptions{
		Selection: types.Configuration{
			Languages: types.SelectHandles("css"),
			Themes:    types.SelectHandles("prism"),
			Plugins:   types.SelectHandles("line-numbers"),
		},
		Context: types.ContextControl,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		components + "prism-css.min.js",
		plugins + "line-numbers/prism-line-numbers.min.js",
		components + "prism-markup.min.js",
		components + "prism-clike.min.js",
		components + "prism-javascript.min.js",
		components + "prism-json.min.js",
	}, result.Scripts)
}

func TestResolveDefaultsUseCatalogOrder(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	result, err := resolve.Resolve(env.Engine(), resolve.ResolveOptions{})
	require.NoError(t, err)

	// "*" themes: only the stylesheets present on disk make it into the set
	assert.Equal(t, []string{
		themes + "prism.css",
		themes + "prism-okaidia.css",
		themes + "prism-twilight.css",
		plugins + "toolbar/prism-toolbar.css",
		plugins + "line-numbers/prism-line-numbers.css",
	}, result.Stylesheets)
	assert.Len(t, result.Themes, 8)
	assert.Equal(t, "prism", result.Themes[0].Handle)
	assert.Equal(t, "Default", result.Themes[0].Title)

	for _, entry := range result.Files {
		assert.NotEqual(t, types.KindUnknown, entry.Kind)
	}
}

func TestResolveCustomThemes(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	customDir := env.Path("custom-themes")
	env.WriteFile(customDir+"/my-dark-theme.css", "/* custom */")

	result, err := resolve.Resolve(env.Engine(), resolve.ResolveOptions{
		Selection: types.Configuration{
			Themes:          types.SelectHandles("prism", "my-dark-theme"),
			Languages:       types.SelectHandles("markup"),
			Plugins:         types.SelectHandles("autoloader"),
			CustomThemesDir: customDir,
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Themes, 2)
	assert.True(t, result.Themes[1].Custom)
	assert.Equal(t, "My Dark Theme", result.Themes[1].Title)
	assert.Equal(t, []string{
		themes + "prism.css",
		customDir + "/my-dark-theme.css",
	}, result.Stylesheets)
}

func TestResolveMissingTitleFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	catalogFile := env.Path("catalog.json")
	env.WriteFile(catalogFile, `{
		"languages": {"markup": {"require": []}},
		"themes": {"prism": "Default"},
		"plugins": {}
	}`)
	env.Config.CatalogFile = catalogFile

	_, err := resolve.Resolve(env.Engine(), resolve.ResolveOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingTitle), "got %v", err)
}

func TestResolveUnknownHandlesLeaveCategoryEmpty(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	result, err := resolve.Resolve(env.Engine(), resolve.ResolveOptions{
		Selection: types.Configuration{
			Languages: types.SelectHandles("no-such-language"),
			Themes:    types.SelectHandles("no-such-theme"),
			Plugins:   types.SelectHandles("line-numbers"),
		},
		Context: types.ContextSite,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Languages)
	assert.Empty(t, result.Themes)
	assert.Equal(t, []string{plugins + "line-numbers/prism-line-numbers.min.js"}, result.Scripts,
		"no editor defaults are added for categories the selection emptied")
	assert.Equal(t, []string{plugins + "line-numbers/prism-line-numbers.css"}, result.Stylesheets)
}
