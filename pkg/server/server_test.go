package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/prismatic/pkg/server"
	"github.com/arthur-debert/prismatic/pkg/testutil"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*httptest.Server, *testutil.TestEnvironment) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	srv := httptest.NewServer(server.New(env.Engine()).Handler())
	t.Cleanup(srv.Close)
	return srv, env
}

func get(t *testing.T, url string, into interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if into != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)

	var body map[string]string
	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCatalog(t *testing.T) {
	srv, _ := newServer(t)

	var result types.ListResult
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/api/catalog/plugin", &result))
	assert.Equal(t, types.CategoryPlugins, result.Category)
	assert.NotEmpty(t, result.Components)

	var failure map[string]interface{}
	assert.Equal(t, http.StatusBadRequest, get(t, srv.URL+"/api/catalog/fonts", &failure))
	assert.Equal(t, "UNKNOWN_CATEGORY", failure["code"])
}

func TestDeps(t *testing.T) {
	srv, _ := newServer(t)

	var result types.DepsResult
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/api/deps/languages/php?files=true", &result))
	assert.Equal(t, []string{"markup", "markup-templating", "php"}, result.Order)
	assert.Len(t, result.Files, 3)

	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/api/deps/languages/cobol", nil))
}

func TestResolve(t *testing.T) {
	srv, _ := newServer(t)

	var result types.ResolveResult
	url := srv.URL + "/api/resolve?languages=jsx&themes=prism&plugins=show-language&core=1&context=control"
	require.Equal(t, http.StatusOK, get(t, url, &result))

	assert.Equal(t, types.ContextControl, result.Context)
	assert.Equal(t, []string{
		"@prism/js/prism/components/prism-core.min.js",
		"@prism/js/prism/components/prism-clike.min.js",
		"@prism/js/prism/components/prism-javascript.min.js",
		"@prism/js/prism/components/prism-markup.min.js",
		"@prism/js/prism/components/prism-jsx.min.js",
		"@prism/js/prism/plugins/toolbar/prism-toolbar.min.js",
		"@prism/js/prism/components/prism-json.min.js",
	}, result.Scripts)
	assert.Equal(t, []string{
		"@prism/css/prism/themes/prism.css",
		"@prism/js/prism/plugins/toolbar/prism-toolbar.css",
	}, result.Stylesheets)

	assert.Equal(t, http.StatusBadRequest, get(t, srv.URL+"/api/resolve?context=admin", nil))
}

func TestHighlight(t *testing.T) {
	srv, _ := newServer(t)

	body := `{"blocks": [
		{"code": "<p>hi</p>", "language": "markup", "theme": "prism-okaidia"},
		{"code": "a { color: red }", "language": "css"}
	]}`
	resp, err := http.Post(srv.URL+"/api/highlight", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result server.HighlightResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	require.Len(t, result.Blocks, 2)
	assert.Contains(t, result.Blocks[0].HTML, "&lt;p&gt;hi&lt;/p&gt;")
	assert.Equal(t, "language-markup", result.Blocks[0].LanguageClass)
	assert.Equal(t, "prism-okaidia", result.Blocks[0].ThemeClass)

	assert.Equal(t, "@prism/js/prism/components/prism-core.min.js", result.Assets.Scripts[0])
	assert.Contains(t, result.Assets.Scripts, "@prism/js/prism/components/prism-css.min.js")
	assert.Equal(t, []string{
		"@prism/css/prism/themes/prism-okaidia.css",
		"@prism/css/prism/themes/prism.css",
	}, result.Assets.Stylesheets[:2])
}

func TestHighlightRejectsBadJSON(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Post(srv.URL+"/api/highlight", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newServer(t)

	require.Equal(t, http.StatusOK, get(t, srv.URL+"/api/resolve?languages=markup&themes=prism&plugins=autoloader", nil))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `prismatic_asset_builds_total{context="site"} 1`)
	assert.Contains(t, text, `prismatic_files_missing_total{category="plugins"}`)
	assert.Contains(t, text, `prismatic_http_requests_total{code="200",route="/api/resolve"} 1`)
	assert.Contains(t, text, `prismatic_catalog_loads_total{status="ok"} 1`)
}

func TestRunStopsOnCancel(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Config.Server.Addr = "127.0.0.1:0"
	srv := server.New(env.Engine())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
