package resolver

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/prismatic/pkg/catalog"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLookup is a catalog stand-in keyed by handle, languages only
type mapLookup map[string][]string

func (m mapLookup) Definition(category types.Category, handle string) (types.Definition, bool) {
	if category != types.CategoryLanguages {
		return types.Definition{}, false
	}
	requires, ok := m[handle]
	if !ok {
		return types.Definition{}, false
	}
	return types.Definition{Handle: handle, Title: handle, Requires: requires, Category: category}, true
}

func TestResolveRequirements(t *testing.T) {
	lookup := mapLookup{
		"markup":     nil,
		"css":        {"markup"},
		"javascript": {"markup", "css"},
		"a":          {"b"},
		"b":          {"c"},
		"c":          nil,
	}
	r := New(lookup)

	tests := []struct {
		name   string
		handle string
		want   []string
	}{
		{"no requirements", "markup", []string{"markup"}},
		{"chain", "a", []string{"c", "b", "a"}},
		{"shared base", "javascript", []string{"markup", "css", "javascript"}},
		{"absent handle is a bare entry", "my-custom", []string{"my-custom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveRequirements(tt.handle, types.CategoryLanguages)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalkKeepsDuplicates(t *testing.T) {
	r := New(mapLookup{
		"markup":     nil,
		"css":        {"markup"},
		"javascript": {"markup", "css"},
	})

	got, err := r.Walk("javascript", types.CategoryLanguages)
	require.NoError(t, err)
	assert.Equal(t, []string{"markup", "css", "markup", "javascript"}, got)
}

func TestWalkMissingRequirement(t *testing.T) {
	r := New(mapLookup{"php": {"markup-templating"}})

	got, err := r.ResolveRequirements("php", types.CategoryLanguages)
	require.NoError(t, err)
	assert.Equal(t, []string{"markup-templating", "php"}, got)
}

func TestWalkOtherCategoryIsBare(t *testing.T) {
	r := New(mapLookup{"css": {"markup"}})

	got, err := r.ResolveRequirements("css", types.CategoryThemes)
	require.NoError(t, err)
	assert.Equal(t, []string{"css"}, got)
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name   string
		lookup mapLookup
		handle string
		cycle  []string
	}{
		{"two nodes", mapLookup{"a": {"b"}, "b": {"a"}}, "a", []string{"a", "b", "a"}},
		{"self reference", mapLookup{"a": {"a"}}, "a", []string{"a", "a"}},
		{"cycle below the root", mapLookup{"root": {"x"}, "x": {"y"}, "y": {"z"}, "z": {"x"}}, "root", []string{"x", "y", "z", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.lookup).ResolveRequirements(tt.handle, types.CategoryLanguages)
			require.Error(t, err)

			var cycleErr *CyclicDependencyError
			require.True(t, stderrors.As(err, &cycleErr))
			assert.Equal(t, tt.cycle, cycleErr.Cycle)
			assert.Equal(t, types.CategoryLanguages, cycleErr.Category)
			assert.True(t, errors.IsErrorCode(err, errors.ErrDependencyCycle))
			assert.Contains(t, err.Error(), "dependency cycle in languages")
		})
	}
}

func TestDiamondIsNotACycle(t *testing.T) {
	r := New(mapLookup{
		"top":   {"left", "right"},
		"left":  {"base"},
		"right": {"base"},
		"base":  nil,
	})

	walk, err := r.Walk("top", types.CategoryLanguages)
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "right", "base", "left", "top"}, walk)

	got, err := r.ResolveRequirements("top", types.CategoryLanguages)
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "right", "left", "top"}, got)
}

func TestResolveAll(t *testing.T) {
	r := New(mapLookup{
		"markup": nil,
		"css":    {"markup"},
		"scss":   {"css"},
		"less":   {"css"},
	})

	got, err := r.ResolveAll([]string{"scss", "less", "markup"}, types.CategoryLanguages)
	require.NoError(t, err)
	assert.Equal(t, []string{"markup", "css", "scss", "less"}, got)

	_, err = New(mapLookup{"a": {"b"}, "b": {"a"}}).ResolveAll([]string{"a"}, types.CategoryLanguages)
	assert.Error(t, err)
}

func TestResolveAgainstEmbeddedCatalog(t *testing.T) {
	cat, err := catalog.Parse(catalog.Embedded())
	require.NoError(t, err)
	r := New(cat)

	got, err := r.ResolveRequirements("tsx", types.CategoryLanguages)
	require.NoError(t, err)
	assert.Equal(t, "tsx", got[len(got)-1])
	assertBefore(t, got, "clike", "javascript")
	assertBefore(t, got, "javascript", "typescript")
	assertBefore(t, got, "markup", "jsx")
	assertBefore(t, got, "jsx", "tsx")

	plugins, err := r.ResolveRequirements("copy-to-clipboard", types.CategoryPlugins)
	require.NoError(t, err)
	assert.Equal(t, []string{"toolbar", "copy-to-clipboard"}, plugins)
}

func assertBefore(t *testing.T, order []string, first, second string) {
	t.Helper()
	i, j := indexOf(order, first), indexOf(order, second)
	require.NotEqual(t, -1, i, "%s missing from %v", first, order)
	require.NotEqual(t, -1, j, "%s missing from %v", second, order)
	assert.Less(t, i, j, "%s should come before %s in %v", first, second, order)
}

func indexOf(items []string, item string) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, Unique(nil))
}
