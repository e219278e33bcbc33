// Package config loads prismatic's configuration.
//
// Layers are applied in order, later layers replacing earlier values key by
// key (lists are replaced, never appended):
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, TOML or YAML, from --config or
//     $XDG_CONFIG_HOME/prismatic/config.{toml,yaml,yml}
//  3. PRISMATIC_* environment variables; "__" separates nesting levels
//     and single underscores are ignored, so PRISMATIC_EDITOR__TAB_WIDTH
//     sets editor.tabWidth
//  4. programmatic overrides, typically command line flags
package config
