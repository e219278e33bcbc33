package validate_test

import (
	"testing"

	"github.com/arthur-debert/prismatic/pkg/commands/validate"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/filesystem"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmbedded(t *testing.T) {
	result, err := validate.Validate(filesystem.NewMemory(), validate.ValidateOptions{})
	require.NoError(t, err)

	assert.Equal(t, validate.EmbeddedSourceName, result.Source)
	assert.True(t, result.Valid, "issues: %v", result.Issues)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 8, result.Counts[types.CategoryThemes])
	assert.Equal(t, 1, result.Counts[types.CategoryCore])
}

func TestValidateFiles(t *testing.T) {
	fsys := filesystem.NewMemory()
	docs := map[string]string{
		"/schema-bad.json": `{"languages": {"css": 5}}`,
		"/not-json.json":   `{"languages": `,
		"/dangling.json":   `{"languages": {"sass": {"title": "Sass", "require": "css"}}}`,
		"/self.json":       `{"languages": {"css": {"title": "CSS", "require": "css"}}}`,
		"/fine.json":       `{"themes": {"prism": "Default"}}`,
		"/cycle.json":      `{"plugins": {"a": {"title": "A", "require": "b"}, "b": {"title": "B", "require": "a"}}}`,
	}
	for name, content := range docs {
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0644))
	}

	tests := []struct {
		file    string
		valid   bool
		contain string
	}{
		{"/schema-bad.json", false, "/languages/css"},
		{"/not-json.json", false, "not valid JSON"},
		{"/dangling.json", false, `requires unknown languages "css"`},
		{"/self.json", false, "css requires itself"},
		{"/fine.json", true, ""},
		{"/cycle.json", false, "dependency cycle a -> b -> a"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := validate.Validate(fsys, validate.ValidateOptions{File: tt.file})
			require.NoError(t, err)
			assert.Equal(t, tt.file, result.Source)
			assert.Equal(t, tt.valid, result.Valid, "issues: %v", result.Issues)
			if tt.contain != "" {
				require.NotEmpty(t, result.Issues)
				assert.Contains(t, result.Issues[0], tt.contain)
			}
		})
	}
}

func TestValidateMissingFile(t *testing.T) {
	_, err := validate.Validate(filesystem.NewMemory(), validate.ValidateOptions{File: "/nope.json"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogLoad), "got %v", err)
}
