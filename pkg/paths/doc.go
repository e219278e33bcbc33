// Package paths provides centralized path handling for prismatic.
//
// It resolves the XDG base directories the tool reads and writes, and it
// owns the alias table that turns filesystem locations of packaged assets
// into portable "@alias/..." paths.
//
// # Environment Variables
//
//   - PRISMATIC_ASSETS_ROOT: where the packaged Prism distribution lives
//     (default: $XDG_DATA_HOME/prismatic/assets)
//   - PRISMATIC_CONFIG_DIR: override the config directory (default: $XDG_CONFIG_HOME/prismatic)
//   - PRISMATIC_DATA_DIR: override the data directory (default: $XDG_DATA_HOME/prismatic)
//   - PRISMATIC_CACHE_DIR: override the cache directory (default: $XDG_CACHE_HOME/prismatic)
//
// # Aliases
//
// The asset root is registered under the "@prism" alias. A theme found at
// /usr/share/prism/css/prism/themes/prism-okaidia.css is reported as
// @prism/css/prism/themes/prism-okaidia.css, and Resolve turns it back
// into the filesystem path when the file has to be read.
package paths
