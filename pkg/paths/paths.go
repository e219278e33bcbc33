package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/prismatic/pkg/errors"
)

// Environment variable names
const (
	// EnvAssetsRoot points at the unpacked Prism distribution
	EnvAssetsRoot = "PRISMATIC_ASSETS_ROOT"

	// EnvConfigDir overrides the XDG config directory for prismatic
	EnvConfigDir = "PRISMATIC_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for prismatic
	EnvDataDir = "PRISMATIC_DATA_DIR"

	// EnvCacheDir overrides the XDG cache directory for prismatic
	EnvCacheDir = "PRISMATIC_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Directory and file names. These describe the layout of the packaged Prism
// distribution and are not user-configurable.
const (
	// AppDirName is the directory name used under every XDG base directory
	AppDirName = "prismatic"

	// AssetsDirName is the data subdirectory holding the Prism distribution
	AssetsDirName = "assets"

	// PublicDirName is the cache subdirectory files are published to
	PublicDirName = "public"

	// ThemesSubdir holds <theme>.css files, relative to the assets root
	ThemesSubdir = "css/prism/themes"

	// LanguagesSubdir holds prism-<lang>.min.js files
	LanguagesSubdir = "js/prism/components"

	// PluginsSubdir holds <plugin>/prism-<plugin>.{min.js,css}
	PluginsSubdir = "js/prism/plugins"

	// CoreScript is the Prism runtime every bundle starts with
	CoreScript = "js/prism/components/prism-core.min.js"

	// ConfigFileBase is the user config file name without extension
	ConfigFileBase = "config"

	// LogFileName is the name of the log file
	LogFileName = "prismatic.log"
)

// ConfigExtensions lists the user config formats in lookup order
var ConfigExtensions = []string{".toml", ".yaml", ".yml"}

// Paths provides centralized path management for prismatic
type Paths interface {
	AssetsRoot() string
	ThemesDir() string
	LanguagesDir() string
	PluginsDir() string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	StateDir() string
	PublicDir() string
	LogFilePath() string
	ConfigFileCandidates() []string
	NormalizePath(path string) (string, error)
}

type paths struct {
	assetsRoot string
	xdgData    string
	xdgConfig  string
	xdgCache   string
	xdgState   string
}

// New creates a Paths instance. An empty assetsRoot falls back to
// PRISMATIC_ASSETS_ROOT and then to the data directory.
func New(assetsRoot string) (Paths, error) {
	p := &paths{}
	p.setupXDGDirs()

	root := assetsRoot
	if root == "" {
		root = os.Getenv(EnvAssetsRoot)
	}
	if root == "" {
		root = filepath.Join(p.xdgData, AssetsDirName)
	}

	abs, err := filepath.Abs(expandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for assets root")
	}
	p.assetsRoot = abs

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	p.xdgData = dirFromEnv(EnvDataDir, xdg.DataHome)
	p.xdgConfig = dirFromEnv(EnvConfigDir, xdg.ConfigHome)
	p.xdgCache = dirFromEnv(EnvCacheDir, xdg.CacheHome)

	// xdg resolves StateHome once at init; read the variable so tests and
	// callers that change it at runtime are honoured
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}
}

func dirFromEnv(envVar, xdgBase string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdgBase, AppDirName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) string {
	return expandHome(path)
}

// AssetsRoot returns the directory the @prism alias points at
func (p *paths) AssetsRoot() string {
	return p.assetsRoot
}

// ThemesDir returns the packaged themes directory
func (p *paths) ThemesDir() string {
	return filepath.Join(p.assetsRoot, filepath.FromSlash(ThemesSubdir))
}

// LanguagesDir returns the packaged language components directory
func (p *paths) LanguagesDir() string {
	return filepath.Join(p.assetsRoot, filepath.FromSlash(LanguagesSubdir))
}

// PluginsDir returns the packaged plugins directory
func (p *paths) PluginsDir() string {
	return filepath.Join(p.assetsRoot, filepath.FromSlash(PluginsSubdir))
}

// DataDir returns the XDG data directory for prismatic
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for prismatic
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// CacheDir returns the XDG cache directory for prismatic
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for prismatic
func (p *paths) StateDir() string {
	return p.xdgState
}

// PublicDir returns the default directory files are published to
func (p *paths) PublicDir() string {
	return filepath.Join(p.xdgCache, PublicDirName)
}

// LogFilePath returns the path to the prismatic log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ConfigFileCandidates returns the user config files in lookup order
func (p *paths) ConfigFileCandidates() []string {
	candidates := make([]string, 0, len(ConfigExtensions))
	for _, ext := range ConfigExtensions {
		candidates = append(candidates, filepath.Join(p.xdgConfig, ConfigFileBase+ext))
	}
	return candidates
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}
