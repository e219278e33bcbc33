package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		assetsRoot string
		envSetup   map[string]string
		validate   func(t *testing.T, p Paths)
	}{
		{
			name:       "explicit assets root",
			assetsRoot: "/srv/prism",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/srv/prism", p.AssetsRoot())
				assert.Equal(t, filepath.Join("/srv/prism", "css", "prism", "themes"), p.ThemesDir())
				assert.Equal(t, filepath.Join("/srv/prism", "js", "prism", "components"), p.LanguagesDir())
				assert.Equal(t, filepath.Join("/srv/prism", "js", "prism", "plugins"), p.PluginsDir())
			},
		},
		{
			name:     "assets root from env",
			envSetup: map[string]string{EnvAssetsRoot: "/env/prism"},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/env/prism", p.AssetsRoot())
			},
		},
		{
			name:     "assets root defaults under data dir",
			envSetup: map[string]string{EnvDataDir: "/custom/data"},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, filepath.Join("/custom/data", AssetsDirName), p.AssetsRoot())
			},
		},
		{
			name:       "expand tilde in assets root",
			assetsRoot: "~/prism",
			validate: func(t *testing.T, p Paths) {
				home, _ := os.UserHomeDir()
				assert.Equal(t, filepath.Join(home, "prism"), p.AssetsRoot())
			},
		},
		{
			name: "custom XDG directories",
			envSetup: map[string]string{
				EnvDataDir:       "/custom/data",
				EnvConfigDir:     "/custom/config",
				EnvCacheDir:      "/custom/cache",
				"XDG_STATE_HOME": "/custom/state",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/custom/data", p.DataDir())
				assert.Equal(t, "/custom/config", p.ConfigDir())
				assert.Equal(t, "/custom/cache", p.CacheDir())
				assert.Equal(t, filepath.Join("/custom/state", AppDirName), p.StateDir())
				assert.Equal(t, filepath.Join("/custom/state", AppDirName, LogFileName), p.LogFilePath())
				assert.Equal(t, filepath.Join("/custom/cache", PublicDirName), p.PublicDir())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAssetsRoot, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.assetsRoot)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestConfigFileCandidates(t *testing.T) {
	t.Setenv(EnvConfigDir, "/etc/prismatic")

	p, err := New("/srv/prism")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("/etc/prismatic", "config.toml"),
		filepath.Join("/etc/prismatic", "config.yaml"),
		filepath.Join("/etc/prismatic", "config.yml"),
	}, p.ConfigFileCandidates())
}

func TestNormalizePath(t *testing.T) {
	p, err := New("/srv/prism")
	require.NoError(t, err)

	got, err := p.NormalizePath("/srv/prism/../prism/./css")
	require.NoError(t, err)
	assert.Equal(t, "/srv/prism/css", got)

	_, err = p.NormalizePath("  ")
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandHome(""))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "themes"), ExpandHome("~/themes"))
	assert.Equal(t, "~other/themes", ExpandHome("~other/themes"))
	assert.Equal(t, "/abs/themes", ExpandHome("/abs/themes"))
}
