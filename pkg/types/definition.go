package types

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
)

// Definition is one catalog record. Themes and core entries are often plain
// titles in the source document; languages and plugins carry the optional
// fields.
type Definition struct {
	Handle   string   `json:"handle" yaml:"handle"`
	Title    string   `json:"title" yaml:"title"`
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`
	Category Category `json:"category" yaml:"category"`
	Owner    string   `json:"owner,omitempty" yaml:"owner,omitempty"`

	// NoCSS is only meaningful for plugins: the plugin ships no stylesheet
	NoCSS bool `json:"noCSS,omitempty" yaml:"noCSS,omitempty"`
}

// HasTitle reports whether the definition can be displayed
func (d Definition) HasTitle() bool {
	return strings.TrimSpace(d.Title) != ""
}

// HasRequirements reports whether the definition depends on other handles
func (d Definition) HasRequirements() bool {
	return len(d.Requires) > 0
}

// rawDefinition mirrors the object form of a catalog entry
type rawDefinition struct {
	Title   string          `json:"title"`
	Require json.RawMessage `json:"require"`
	Owner   string          `json:"owner"`
	NoCSS   bool            `json:"noCSS"`
}

// DecodeDefinition decodes one catalog entry. The entry is either a bare
// string holding the title, or an object whose "require" field is a comma
// separated string or a list of handles.
func DecodeDefinition(category Category, handle string, data []byte) (Definition, error) {
	def := Definition{Handle: handle, Category: category}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &def.Title); err != nil {
			return def, errors.Wrapf(err, errors.ErrCatalogParse, "invalid title for %s/%s", category, handle)
		}
		return def, nil
	}

	var raw rawDefinition
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return def, errors.Wrapf(err, errors.ErrCatalogParse, "invalid definition for %s/%s", category, handle)
	}

	requires, err := ParseRequires(raw.Require)
	if err != nil {
		return def, errors.Wrapf(err, errors.ErrCatalogParse, "invalid require for %s/%s", category, handle)
	}

	def.Title = raw.Title
	def.Owner = raw.Owner
	def.NoCSS = raw.NoCSS
	def.Requires = requires
	return def, nil
}

// ParseRequires normalizes the "require" field into an ordered handle list.
// Blank segments are dropped so "markup, css" and ["markup","css"] agree.
func ParseRequires(data json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var parts []string
	if trimmed[0] == '"' {
		var joined string
		if err := json.Unmarshal(trimmed, &joined); err != nil {
			return nil, err
		}
		parts = strings.Split(joined, ",")
	} else if err := json.Unmarshal(trimmed, &parts); err != nil {
		return nil, err
	}

	var requires []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			requires = append(requires, p)
		}
	}
	return requires, nil
}
