package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.PrismError
		want string
	}{
		{
			name: "plain",
			err:  errors.New(errors.ErrNotFound, "languages/cobol is not defined"),
			want: "[NOT_FOUND] languages/cobol is not defined",
		},
		{
			name: "formatted",
			err:  errors.Newf(errors.ErrUnknownCategory, "unknown category %q", "widgets"),
			want: `[UNKNOWN_CATEGORY] unknown category "widgets"`,
		},
		{
			name: "wrapping",
			err:  errors.Wrap(stderrors.New("unexpected EOF"), errors.ErrCatalogParse, "components.json"),
			want: "[CATALOG_PARSE] components.json: unexpected EOF",
		},
		{
			name: "wrapping formatted",
			err:  errors.Wrapf(stderrors.New("permission denied"), errors.ErrFileWrite, "copy %s", "prism.css"),
			want: "[FILE_WRITE] copy prism.css: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "nothing %d", 1))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrMissingTitle, "no title")
	assert.Nil(t, err.Details)
	assert.Nil(t, errors.GetErrorDetails(err))

	err.WithDetail("category", "themes").
		WithDetails(map[string]interface{}{"handle": "prism-funky", "file": "components.json"})

	assert.Equal(t, map[string]interface{}{
		"category": "themes",
		"handle":   "prism-funky",
		"file":     "components.json",
	}, errors.GetErrorDetails(err))

	assert.Same(t, err, err.WithDetails(nil))
	assert.Len(t, err.Details, 3)
}

func TestIs(t *testing.T) {
	cycleA := errors.New(errors.ErrDependencyCycle, "a -> b -> a")
	cycleB := errors.New(errors.ErrDependencyCycle, "c -> c")
	missing := errors.New(errors.ErrNotFound, "missing")

	assert.True(t, stderrors.Is(cycleA, cycleB))
	assert.False(t, stderrors.Is(cycleA, missing))
	assert.False(t, cycleA.Is(stderrors.New("a -> b -> a")))
}

func TestIsErrorCode(t *testing.T) {
	root := stderrors.New("no such file")
	access := errors.Wrap(root, errors.ErrFileAccess, "read components.json")
	load := errors.Wrap(access, errors.ErrCatalogLoad, "load catalog")
	viaFmt := fmt.Errorf("loading config: %w", load)

	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{"outer code", load, errors.ErrCatalogLoad, true},
		{"nested code", load, errors.ErrFileAccess, true},
		{"through fmt wrapper", viaFmt, errors.ErrFileAccess, true},
		{"absent code", load, errors.ErrDependencyCycle, false},
		{"standard error", root, errors.ErrNotFound, false},
		{"nil", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsErrorCode(tt.err, tt.code))
		})
	}

	assert.True(t, stderrors.Is(viaFmt, root), "root cause stays reachable")
}

func TestGetErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrInvalidInput, "bad context").WithDetail("context", "admin")
	wrapped := fmt.Errorf("resolve: %w", inner)

	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(wrapped))
	assert.Equal(t, "admin", errors.GetErrorDetails(wrapped)["context"])
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorCodeString(t *testing.T) {
	require.Equal(t, "DEPENDENCY_CYCLE", errors.ErrDependencyCycle.String())
}
