package assets

import (
	"fmt"
	"html"
	"sync"

	"github.com/arthur-debert/prismatic/pkg/types"
)

// Render defaults for a block that names no language or theme
const (
	DefaultLanguage = "markup"
	DefaultTheme    = "prism"
)

// LanguageClass is the CSS class Prism keys highlighting on
func LanguageClass(language string) string {
	return "language-" + language
}

// ThemeClass is the CSS class of a theme wrapper
func ThemeClass(theme string) string {
	return theme
}

// Block is one rendered code block
type Block struct {
	Code          string `json:"code" yaml:"code"`
	Language      string `json:"language" yaml:"language"`
	Theme         string `json:"theme" yaml:"theme"`
	LanguageClass string `json:"languageClass" yaml:"languageClass"`
	ThemeClass    string `json:"themeClass" yaml:"themeClass"`
}

// HTML returns the block as escaped markup Prism can highlight in place
func (b Block) HTML() string {
	return fmt.Sprintf(`<pre class="%s"><code class="%s">%s</code></pre>`,
		html.EscapeString(b.ThemeClass),
		html.EscapeString(b.LanguageClass),
		html.EscapeString(b.Code))
}

// Session accumulates the themes and languages rendered during one request.
// Callers thread it through their render calls and flush it once.
type Session struct {
	mu        sync.Mutex
	themes    []string
	languages []string
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// Render records the block's language and theme and returns its classes
func (s *Session) Render(code, language, theme string) Block {
	if language == "" {
		language = DefaultLanguage
	}
	if theme == "" {
		theme = DefaultTheme
	}

	s.mu.Lock()
	s.themes = appendNew(s.themes, theme)
	s.languages = appendNew(s.languages, language)
	s.mu.Unlock()

	return Block{
		Code:          code,
		Language:      language,
		Theme:         theme,
		LanguageClass: LanguageClass(language),
		ThemeClass:    ThemeClass(theme),
	}
}

// HasAssets reports whether anything was rendered since the last flush
func (s *Session) HasAssets() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.themes) > 0 || len(s.languages) > 0
}

// Request returns the build request for what was rendered so far
func (s *Session) Request(ctx types.RenderContext) Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.request(ctx)
}

// request requires s.mu
func (s *Session) request(ctx types.RenderContext) Request {
	return Request{
		Themes:      append([]string(nil), s.themes...),
		Languages:   append([]string(nil), s.languages...),
		Context:     ctx,
		IncludeCore: true,
		UseDefaults: true,
	}
}

// Flush builds the set for everything rendered and resets the session.
// The snapshot and reset happen under one lock, so a concurrent Render
// lands either in this flush or in the next one. A failed build puts the
// snapshot back. An empty session yields nil without building.
func (s *Session) Flush(b *Builder, ctx types.RenderContext) (*types.FileSet, error) {
	s.mu.Lock()
	if len(s.themes) == 0 && len(s.languages) == 0 {
		s.mu.Unlock()
		return nil, nil
	}
	req := s.request(ctx)
	s.themes, s.languages = nil, nil
	s.mu.Unlock()

	set, err := b.Build(req)
	if err != nil {
		s.restore(req)
		return nil, err
	}
	return set, nil
}

func (s *Session) restore(req Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	themes, languages := req.Themes, req.Languages
	for _, t := range s.themes {
		themes = appendNew(themes, t)
	}
	for _, l := range s.languages {
		languages = appendNew(languages, l)
	}
	s.themes, s.languages = themes, languages
}

func appendNew(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
