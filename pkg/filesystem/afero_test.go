package filesystem

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileRejectsDirectories(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/assets/themes", 0755))
	require.NoError(t, fsys.WriteFile("/assets/themes/prism.css", []byte("pre{}"), 0644))

	data, err := fsys.ReadFile("/assets/themes/prism.css")
	require.NoError(t, err)
	assert.Equal(t, "pre{}", string(data))

	_, err = fsys.ReadFile("/assets/themes")
	assert.Error(t, err)

	_, err = fsys.ReadFile("/assets/themes/missing.css")
	assert.Error(t, err)
}

func TestReadDirSorted(t *testing.T) {
	fsys := NewMemory()
	writeFiles(t, fsys, "/p/toolbar.js", "/p/autoloader.js", "/p/line-numbers.js")

	entries, err := fsys.ReadDir("/p")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"autoloader.js", "line-numbers.js", "toolbar.js"}, names)
}

func TestReadOnlyBackend(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/components.json", []byte("{}"), 0644))
	fsys := NewAferoFS(afero.NewReadOnlyFs(base))

	assert.True(t, Exists(fsys, "/components.json"))
	assert.False(t, Exists(fsys, "/other.json"))
	assert.Error(t, fsys.WriteFile("/components.json", []byte("[]"), 0644))
}

func TestOnDisk(t *testing.T) {
	assert.True(t, OnDisk(NewOS()))
	assert.False(t, OnDisk(NewMemory()))
	assert.False(t, OnDisk(NewAferoFS(afero.NewReadOnlyFs(afero.NewOsFs()))))
}
