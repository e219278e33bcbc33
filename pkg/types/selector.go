package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
)

// WildcardToken selects every handle of a category
const WildcardToken = "*"

// Selector is a per-category selection: either the wildcard or an explicit,
// ordered list of handles. The zero value is an unset selector.
type Selector struct {
	set      bool
	wildcard bool
	raw      []string
}

// SelectAll returns the wildcard selector
func SelectAll() Selector {
	return Selector{set: true, wildcard: true, raw: []string{WildcardToken}}
}

// SelectHandles returns an explicit selector. A "*" among the handles turns
// it into a wildcard while keeping the other tokens visible through Raw.
func SelectHandles(handles ...string) Selector {
	s := Selector{set: true}
	for _, h := range handles {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if h == WildcardToken {
			s.wildcard = true
		}
		s.raw = append(s.raw, h)
	}
	return s
}

// ParseSelector builds a Selector from decoded configuration data: a string
// ("*" or a comma separated list) or a list of strings.
func ParseSelector(value interface{}) (Selector, error) {
	switch v := value.(type) {
	case nil:
		return Selector{}, nil
	case Selector:
		return v, nil
	case string:
		return SelectHandles(strings.Split(v, ",")...), nil
	case []string:
		return SelectHandles(v...), nil
	case []interface{}:
		handles := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return Selector{}, errors.Newf(errors.ErrConfigInvalid, "selector entries must be strings, got %T", item)
			}
			handles = append(handles, s)
		}
		return SelectHandles(handles...), nil
	default:
		return Selector{}, errors.Newf(errors.ErrConfigInvalid, "unsupported selector value of type %T", value)
	}
}

// IsSet reports whether the selector carries a value at all
func (s Selector) IsSet() bool {
	return s.set
}

// IsWildcard reports whether the selector selects every handle
func (s Selector) IsWildcard() bool {
	return s.wildcard
}

// Handles returns the explicit handles without the wildcard token
func (s Selector) Handles() []string {
	handles := make([]string, 0, len(s.raw))
	for _, h := range s.raw {
		if h != WildcardToken {
			handles = append(handles, h)
		}
	}
	return handles
}

// Raw returns the tokens exactly as configured, wildcard included
func (s Selector) Raw() []string {
	return append([]string(nil), s.raw...)
}

// String implements fmt.Stringer
func (s Selector) String() string {
	if !s.set {
		return "<unset>"
	}
	return fmt.Sprintf("[%s]", strings.Join(s.raw, ","))
}

// MarshalJSON encodes a pure wildcard as "*" and anything else as a list
func (s Selector) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.encode())
}

// UnmarshalJSON accepts a string or a list of strings
func (s *Selector) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseSelector(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML mirrors MarshalJSON
func (s Selector) MarshalYAML() (interface{}, error) {
	return s.encode(), nil
}

func (s Selector) encode() interface{} {
	if !s.set {
		return nil
	}
	if s.wildcard && len(s.raw) == 1 {
		return WildcardToken
	}
	return s.Raw()
}

// Configuration is the per-call selection input of the resolution pipeline
type Configuration struct {
	Languages Selector `json:"languages" yaml:"languages"`
	Themes    Selector `json:"themes" yaml:"themes"`
	Plugins   Selector `json:"plugins" yaml:"plugins"`

	// CustomThemesDir is searched for theme files the packaged themes
	// directory does not carry. Filesystem or aliased path.
	CustomThemesDir string `json:"customThemesDir,omitempty" yaml:"customThemesDir,omitempty"`
}

// Selector returns the selector configured for a category
func (c Configuration) Selector(category Category) Selector {
	switch category {
	case CategoryLanguages:
		return c.Languages
	case CategoryThemes:
		return c.Themes
	case CategoryPlugins:
		return c.Plugins
	}
	return Selector{}
}

// WithSelector returns a copy of the configuration with one category replaced
func (c Configuration) WithSelector(category Category, s Selector) Configuration {
	switch category {
	case CategoryLanguages:
		c.Languages = s
	case CategoryThemes:
		c.Themes = s
	case CategoryPlugins:
		c.Plugins = s
	}
	return c
}
