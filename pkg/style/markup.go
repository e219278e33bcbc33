package style

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

var tagPattern = regexp.MustCompile(`\[(/?)([a-z][a-z-]*)\]`)

// MarkupParser renders [tag]text[/tag] markup with lipgloss styles.
// Tags nest; unknown or unbalanced tags are left in the text.
type MarkupParser struct {
	styles map[string]lipgloss.Style
}

func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{styles: map[string]lipgloss.Style{
		"title":     TitleStyle,
		"subtitle":  SubtitleStyle,
		"success":   SuccessStyle,
		"error":     ErrorStyle,
		"warning":   WarningStyle,
		"info":      InfoStyle,
		"code":      CodeStyle,
		"path":      PathStyle,
		"muted":     MutedStyle,
		"bold":      lipgloss.NewStyle().Bold(true),
		"italic":    lipgloss.NewStyle().Italic(true),
		"underline": lipgloss.NewStyle().Underline(true),
	}}
	for _, category := range types.AllCategories() {
		p.styles[tagFor(category)] = CategoryStyle(category)
	}
	return p
}

func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
}

type openTag struct {
	name string
	raw  string
	body strings.Builder
}

func (p *MarkupParser) Render(text string) string {
	root := &openTag{}
	stack := []*openTag{root}
	top := func() *openTag { return stack[len(stack)-1] }

	last := 0
	for _, m := range tagPattern.FindAllStringSubmatchIndex(text, -1) {
		top().body.WriteString(text[last:m[0]])
		last = m[1]
		raw := text[m[0]:m[1]]
		closing, name := m[3] > m[2], text[m[4]:m[5]]

		if _, known := p.styles[name]; !known {
			top().body.WriteString(raw)
			continue
		}
		if !closing {
			stack = append(stack, &openTag{name: name, raw: raw})
			continue
		}
		if len(stack) == 1 || top().name != name {
			top().body.WriteString(raw)
			continue
		}
		done := top()
		stack = stack[:len(stack)-1]
		top().body.WriteString(p.styles[name].Render(done.body.String()))
	}
	top().body.WriteString(text[last:])

	// unclosed tags go back in literally
	for len(stack) > 1 {
		done := top()
		stack = stack[:len(stack)-1]
		top().body.WriteString(done.raw + done.body.String())
	}
	return root.body.String()
}

// RenderTemplate substitutes {{key}} placeholders, then renders markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return p.Render(strings.NewReplacer(pairs...).Replace(template))
}

var defaultParser = NewMarkupParser()

func Render(text string) string { return defaultParser.Render(text) }

func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
