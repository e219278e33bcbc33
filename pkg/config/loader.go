package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable the loader reads
const EnvPrefix = "PRISMATIC_"

// Options control where configuration is read from
type Options struct {
	// File is an explicit config file; it must exist
	File string

	// Candidates are tried in order when File is empty; missing ones are skipped
	Candidates []string

	// Overrides are applied last, keyed by dotted path
	Overrides map[string]interface{}

	// SkipEnv disables the environment layer
	SkipEnv bool
}

// Default returns the embedded defaults alone
func Default() (*Config, error) {
	return Load(Options{SkipEnv: true})
}

// Load builds the effective configuration from every layer
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	defaults, err := defaultsProvider()
	if err != nil {
		return nil, err
	}
	if err := k.Load(defaults, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}
	known := canonicalKeys(k)

	// 2. User file
	source, err := userFile(opts)
	if err != nil {
		return nil, err
	}
	if source != "" {
		parser, err := parserFor(source)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(source), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source).
				WithDetail("path", source)
		}
		logger.Debug().Str("path", source).Msg("Loaded config file")
	}

	// 3. Environment
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return envKey(s, known)
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				selectorHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// userFile picks the file layer: the explicit file or the first existing
// candidate
func userFile(opts Options) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}
	for _, candidate := range opts.Candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path)).
		WithDetail("path", path)
}

// canonicalKeys maps the lower-cased, underscore-free form of every default
// key to its real spelling
func canonicalKeys(k *koanf.Koanf) map[string]string {
	known := make(map[string]string)
	for _, key := range k.Keys() {
		known[foldKey(key)] = key
	}
	return known
}

func foldKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", ""))
}

// envKey turns PRISMATIC_EDITOR__TAB_WIDTH into editor.tabWidth. Unknown
// variables map to "" and are skipped.
func envKey(name string, known map[string]string) string {
	trimmed := strings.TrimPrefix(name, EnvPrefix)
	dotted := strings.ReplaceAll(trimmed, "__", ".")
	if key, ok := known[foldKey(dotted)]; ok {
		return key
	}
	return ""
}

// selectorHookFunc decodes strings and lists into types.Selector
func selectorHookFunc() mapstructure.DecodeHookFunc {
	selectorType := reflect.TypeOf(types.Selector{})
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != selectorType {
			return data, nil
		}
		return types.ParseSelector(data)
	}
}

func validate(cfg *Config) error {
	if cfg.Editor.Height <= 0 {
		return errors.Newf(errors.ErrConfigInvalid, "editor.height must be positive, got %d", cfg.Editor.Height)
	}
	if cfg.Editor.TabWidth <= 0 {
		return errors.Newf(errors.ErrConfigInvalid, "editor.tabWidth must be positive, got %d", cfg.Editor.TabWidth)
	}
	for _, category := range types.Categories() {
		sel := cfg.Configuration().Selector(category)
		if !sel.IsSet() {
			return errors.Newf(errors.ErrConfigInvalid, "%s selector is missing", category)
		}
	}
	return nil
}
