package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample returns the value of the series of family name carrying labels,
// reading counters and histogram sample counts
func sample(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			got := map[string]string{}
			for _, pair := range metric.GetLabel() {
				got[pair.GetName()] = pair.GetValue()
			}
			if !matches(got, labels) {
				continue
			}
			if h := metric.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func matches(got, want map[string]string) bool {
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestBuildCompleted(t *testing.T) {
	m := New()
	set := types.NewFileSet(
		"@prism/css/prism/themes/prism.css",
		"@prism/js/prism/components/prism-markup.min.js",
		"@prism/js/prism/components/prism-css.min.js",
	)

	m.BuildCompleted(types.ContextSite, set, 5*time.Millisecond)
	m.BuildCompleted(types.ContextControl, set, time.Millisecond)
	m.BuildCompleted("", nil, time.Millisecond)

	assert.Equal(t, 2.0, sample(t, m, "prismatic_asset_builds_total", map[string]string{"context": "site"}))
	assert.Equal(t, 1.0, sample(t, m, "prismatic_asset_builds_total", map[string]string{"context": "control"}))
	assert.Equal(t, 2.0, sample(t, m, "prismatic_asset_build_duration_seconds", map[string]string{"context": "site"}))
	assert.Equal(t, 1.0, sample(t, m, "prismatic_asset_build_duration_seconds", map[string]string{"context": "control"}))
	assert.Equal(t, 2.0, sample(t, m, "prismatic_asset_build_files", map[string]string{"kind": "script"}))
	assert.Equal(t, 2.0, sample(t, m, "prismatic_asset_build_files", map[string]string{"kind": "stylesheet"}))
}

func TestFileMissing(t *testing.T) {
	m := New()
	m.FileMissing(types.CategoryThemes, "tomorrow.css")
	m.FileMissing(types.CategoryThemes, "okaidia.css")
	m.FileMissing(types.CategoryPlugins, "prism-toolbar.css")

	assert.Equal(t, 2.0, sample(t, m, "prismatic_files_missing_total", map[string]string{"category": "themes"}))
	assert.Equal(t, 1.0, sample(t, m, "prismatic_files_missing_total", map[string]string{"category": "plugins"}))
}

func TestCatalogLoaded(t *testing.T) {
	m := New()
	m.CatalogLoaded(nil)
	m.CatalogLoaded(errors.New("boom"))
	m.CatalogLoaded(nil)

	assert.Equal(t, 2.0, sample(t, m, "prismatic_catalog_loads_total", map[string]string{"status": "ok"}))
	assert.Equal(t, 1.0, sample(t, m, "prismatic_catalog_loads_total", map[string]string{"status": "error"}))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/deps/{category}/{handle}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/deps/languages/tsx", "/deps/plugins/toolbar"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, sample(t, m, "prismatic_http_requests_total", map[string]string{"route": "/deps/{category}/{handle}", "code": "418"}))
	assert.Equal(t, 2.0, sample(t, m, "prismatic_http_request_duration_seconds", map[string]string{"route": "/deps/{category}/{handle}"}))
}

func TestHandlerExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(WithRegistry(reg), WithNamespace("prism_test"), WithConstLabels(prometheus.Labels{"instance": "a"}))
	assert.Same(t, reg, m.Registry())
	m.FileMissing(types.CategoryLanguages, "prism-foo.min.js")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `prism_test_files_missing_total{category="languages",instance="a"} 1`)
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
