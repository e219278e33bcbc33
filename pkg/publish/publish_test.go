package publish

import (
	"path"
	"testing"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/filesystem"
	"github.com/arthur-debert/prismatic/pkg/paths"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (Publisher, types.FS) {
	t.Helper()
	fsys := filesystem.NewMemory()
	files := map[string]string{
		"/assets/css/prism/themes/prism.css":                 "/* theme */",
		"/assets/js/prism/components/prism-css.min.js":       "/* css */",
		"/assets/js/prism/plugins/toolbar/prism-toolbar.css": "/* toolbar */",
		"/custom/themes/dracula.css":                         "/* dracula */",
	}
	for name, content := range files {
		require.NoError(t, fsys.MkdirAll(path.Dir(name), 0755))
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0644))
	}

	aliases := paths.NewAliases()
	require.NoError(t, aliases.Register(paths.PrismAlias, "/assets"))
	return NewDirPublisher(fsys, aliases, "/public", "/static/"), fsys
}

func TestPublishAliasedPath(t *testing.T) {
	pub, fsys := setup(t)

	servable, err := pub.Publish("@prism/css/prism/themes/prism.css")
	require.NoError(t, err)
	assert.Equal(t, "/static/css/prism/themes/prism.css", servable)

	data, err := fsys.ReadFile("/public/css/prism/themes/prism.css")
	require.NoError(t, err)
	assert.Equal(t, "/* theme */", string(data))
}

func TestPublishPlainPath(t *testing.T) {
	pub, fsys := setup(t)

	servable, err := pub.Publish("/custom/themes/dracula.css")
	require.NoError(t, err)
	assert.Equal(t, "/static/dracula.css", servable)
	assert.True(t, filesystem.Exists(fsys, "/public/dracula.css"))
}

func TestPublishErrors(t *testing.T) {
	pub, _ := setup(t)

	_, err := pub.Publish("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)

	_, err = pub.Publish("@nowhere/prism.css")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPublish), "got %v", err)

	_, err = pub.Publish("@prism/css/prism/themes/missing.css")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPublish), "got %v", err)
}

func TestPublishSet(t *testing.T) {
	pub, _ := setup(t)
	set := types.NewFileSet(
		"@prism/css/prism/themes/prism.css",
		"@prism/js/prism/components/prism-css.min.js",
		"@prism/js/prism/plugins/toolbar/prism-toolbar.css",
	)

	result, err := Set(pub, set)
	require.NoError(t, err)
	assert.Equal(t, []string{"/static/js/prism/components/prism-css.min.js"}, result.Scripts)
	assert.Equal(t, []string{
		"/static/css/prism/themes/prism.css",
		"/static/js/prism/plugins/toolbar/prism-toolbar.css",
	}, result.Stylesheets)
	require.Len(t, result.Files, 3)
	assert.Equal(t, types.KindScript, result.Files[1].Kind)
	assert.Equal(t, "@prism/js/prism/components/prism-css.min.js", result.Files[1].Source)
}

func TestPublishSetStopsAtFailure(t *testing.T) {
	pub, _ := setup(t)
	set := types.NewFileSet("@prism/css/prism/themes/prism.css", "@prism/css/prism/themes/gone.css")

	result, err := Set(pub, set)
	require.Error(t, err)
	assert.Len(t, result.Files, 1)

	empty, err := Set(pub, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Files)
}
