package assets

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasses(t *testing.T) {
	assert.Equal(t, "language-javascript", LanguageClass("javascript"))
	assert.Equal(t, "prism-okaidia", ThemeClass("prism-okaidia"))
}

func TestSessionRender(t *testing.T) {
	s := NewSession()
	assert.False(t, s.HasAssets())

	block := s.Render("<b>hi</b>", "", "")
	assert.Equal(t, DefaultLanguage, block.Language)
	assert.Equal(t, DefaultTheme, block.Theme)
	assert.Equal(t, "language-markup", block.LanguageClass)
	assert.Equal(t, `<pre class="prism"><code class="language-markup">&lt;b&gt;hi&lt;/b&gt;</code></pre>`, block.HTML())

	s.Render("{}", "json", "prism-okaidia")
	s.Render("[]", "json", "prism")
	assert.True(t, s.HasAssets())

	req := s.Request(types.ContextSite)
	assert.Equal(t, []string{"prism", "prism-okaidia"}, req.Themes)
	assert.Equal(t, []string{"markup", "json"}, req.Languages)
	assert.True(t, req.IncludeCore)
	assert.True(t, req.UseDefaults, "rendered pages fall back to the editor defaults")
}

func TestSessionFlush(t *testing.T) {
	b, _ := newBuilder(t, Defaults{Plugins: []string{"line-numbers"}})
	s := NewSession()

	set, err := s.Flush(b, types.ContextSite)
	require.NoError(t, err)
	assert.Nil(t, set, "nothing rendered, nothing built")

	s.Render("{}", "json", "prism-okaidia")
	set, err = s.Flush(b, types.ContextSite)
	require.NoError(t, err)
	require.NotNil(t, set)

	assert.Equal(t, []string{"prism-core.min.js", "prism-json.min.js", "prism-line-numbers.min.js"}, bases(set.Scripts()))
	assert.Equal(t, []string{"prism-okaidia.css", "prism-line-numbers.css"}, bases(set.Stylesheets()))
	assert.False(t, s.HasAssets(), "flush resets the session")
}

func TestSessionsAreIndependent(t *testing.T) {
	first, second := NewSession(), NewSession()
	first.Render("x", "css", "prism")

	assert.True(t, first.HasAssets())
	assert.False(t, second.HasAssets())
}

func TestSessionFlushKeepsConcurrentRenders(t *testing.T) {
	b, _ := newBuilder(t, Defaults{})
	s := NewSession()
	languages := []string{"markup", "css", "javascript", "json", "scss", "less"}

	const renders = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < renders; i++ {
			s.Render(fmt.Sprint(i), languages[i%len(languages)], "prism")
		}
	}()

	seen := map[string]bool{}
	collect := func() {
		set, err := s.Flush(b, types.ContextSite)
		require.NoError(t, err)
		if set != nil {
			for _, p := range bases(set.Scripts()) {
				seen[p] = true
			}
		}
	}
	for i := 0; i < 50; i++ {
		collect()
	}
	wg.Wait()
	collect()

	for _, lang := range languages {
		assert.True(t, seen["prism-"+lang+".min.js"], "%s rendered but never flushed", lang)
	}
	assert.False(t, s.HasAssets())
}

func TestSessionFlushFailureKeepsRenders(t *testing.T) {
	b, _ := newBuilder(t, Defaults{})
	s := NewSession()
	s.Render("x", "a", "prism")

	_, err := s.Flush(b, types.ContextSite)
	require.Error(t, err)
	assert.True(t, s.HasAssets())
	assert.Equal(t, []string{"a"}, s.Request(types.ContextSite).Languages)
}
