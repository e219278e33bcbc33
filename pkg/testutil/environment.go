package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/prismatic/pkg/cache"
	"github.com/arthur-debert/prismatic/pkg/config"
	"github.com/arthur-debert/prismatic/pkg/core"
	"github.com/arthur-debert/prismatic/pkg/filesystem"
	"github.com/arthur-debert/prismatic/pkg/metrics"
	"github.com/arthur-debert/prismatic/pkg/paths"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// DefaultAssets is the distribution every environment starts with
var DefaultAssets = []string{
	paths.CoreScript,
	paths.ThemesSubdir + "/prism.css",
	paths.ThemesSubdir + "/prism-okaidia.css",
	paths.ThemesSubdir + "/prism-twilight.css",
	paths.LanguagesSubdir + "/prism-markup.min.js",
	paths.LanguagesSubdir + "/prism-css.min.js",
	paths.LanguagesSubdir + "/prism-clike.min.js",
	paths.LanguagesSubdir + "/prism-javascript.min.js",
	paths.LanguagesSubdir + "/prism-json.min.js",
	paths.LanguagesSubdir + "/prism-markup-templating.min.js",
	paths.LanguagesSubdir + "/prism-php.min.js",
	paths.LanguagesSubdir + "/prism-jsx.min.js",
	paths.LanguagesSubdir + "/prism-typescript.min.js",
	paths.LanguagesSubdir + "/prism-tsx.min.js",
	paths.PluginsSubdir + "/toolbar/prism-toolbar.min.js",
	paths.PluginsSubdir + "/toolbar/prism-toolbar.css",
	paths.PluginsSubdir + "/copy-to-clipboard/prism-copy-to-clipboard.min.js",
	paths.PluginsSubdir + "/line-numbers/prism-line-numbers.min.js",
	paths.PluginsSubdir + "/line-numbers/prism-line-numbers.css",
}

// TestEnvironment is an asset tree plus the engine built over it
type TestEnvironment struct {
	Root       string
	AssetsRoot string
	FS         types.FS
	Config     *config.Config
	Metrics    *metrics.Metrics

	// Type of environment
	Type EnvType

	t      *testing.T
	engine *core.Engine
}

// NewTestEnvironment lays out DefaultAssets and returns the environment.
// The engine is built lazily so tests can adjust Config first.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.Root = "/test"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
	}
	env.AssetsRoot = filepath.Join(env.Root, paths.AssetsDirName)

	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("failed to load default config: %v", err)
	}
	cfg.AssetsRoot = env.AssetsRoot
	cfg.PublicDir = filepath.Join(env.Root, paths.PublicDirName)
	env.Config = cfg
	env.Metrics = metrics.New()

	env.AddAssets(DefaultAssets...)
	return env
}

// AddAssets writes placeholder files at paths relative to the assets root
func (e *TestEnvironment) AddAssets(rel ...string) {
	e.t.Helper()
	for _, r := range rel {
		e.WriteFile(filepath.Join(e.AssetsRoot, filepath.FromSlash(r)), "/* "+filepath.Base(r)+" */")
	}
}

// WriteFile writes content to an absolute path, creating parents
func (e *TestEnvironment) WriteFile(name, content string) {
	e.t.Helper()
	if err := e.FS.MkdirAll(filepath.Dir(name), 0755); err != nil {
		e.t.Fatalf("failed to create %s: %v", filepath.Dir(name), err)
	}
	if err := e.FS.WriteFile(name, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// Path joins segments onto the environment root
func (e *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{e.Root}, elem...)...)
}

// Engine builds the engine on first use
func (e *TestEnvironment) Engine() *core.Engine {
	e.t.Helper()
	if e.engine != nil {
		return e.engine
	}
	engine, err := core.New(e.Config,
		core.WithFS(e.FS),
		core.WithCache(cache.NewMemory()),
		core.WithMetrics(e.Metrics),
	)
	if err != nil {
		e.t.Fatalf("failed to build engine: %v", err)
	}
	e.engine = engine
	return engine
}
