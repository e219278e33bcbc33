package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering command results
type Renderer interface {
	RenderResolve(result *types.ResolveResult) string
	RenderDeps(result *types.DepsResult) string
	RenderList(result *types.ListResult) string
	RenderValidate(result *types.ValidateResult) string
	RenderPublish(result *types.PublishResult) string
	RenderError(err error) string
}

// NewRenderer returns the terminal renderer when colors are on and the
// plain one otherwise
func NewRenderer(color bool) Renderer {
	if color {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	markup *MarkupParser
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{markup: NewMarkupParser()}
}

// RenderResolve renders the selection and its files
func (r *TerminalRenderer) RenderResolve(result *types.ResolveResult) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Assets (%s)", result.Context)) + "\n\n")

	for _, group := range []struct {
		category   types.Category
		components []types.ComponentInfo
	}{
		{types.CategoryThemes, result.Themes},
		{types.CategoryLanguages, result.Languages},
		{types.CategoryPlugins, result.Plugins},
	} {
		handles := make([]string, 0, len(group.components))
		for _, c := range group.components {
			handles = append(handles, c.Handle)
		}
		label := CategoryStyle(group.category).Render(group.category.String())
		b.WriteString(fmt.Sprintf("%s %s\n", label, MutedStyle.Render(strings.Join(handles, ", "))))
	}

	b.WriteString("\n" + SubtitleStyle.Render("Scripts") + "\n")
	b.WriteString(r.paths(result.Scripts))
	b.WriteString("\n" + SubtitleStyle.Render("Stylesheets") + "\n")
	b.WriteString(r.paths(result.Stylesheets))
	return strings.TrimRight(b.String(), "\n")
}

func (r *TerminalRenderer) paths(list []string) string {
	if len(list) == 0 {
		return Indent(MutedStyle.Render("none"), 1) + "\n"
	}
	var b strings.Builder
	for i, p := range list {
		b.WriteString(Indent(fmt.Sprintf("%2d %s", i+1, PathStyle.Render(p)), 1) + "\n")
	}
	return b.String()
}

// RenderDeps renders a dependency order as a chain
func (r *TerminalRenderer) RenderDeps(result *types.DepsResult) string {
	var b strings.Builder
	b.WriteString(r.markup.Render(fmt.Sprintf("[title]Dependencies of[/title] [%s]%s[/%s]",
		tagFor(result.Category), result.Handle, tagFor(result.Category))) + "\n\n")

	chain := make([]string, 0, len(result.Order))
	for _, h := range result.Order {
		chain = append(chain, CategoryStyle(result.Category).Render(h))
	}
	b.WriteString(Indent(strings.Join(chain, " "+ArrowIndicator+" "), 1))

	if len(result.Files) > 0 {
		b.WriteString("\n\n" + SubtitleStyle.Render("Files") + "\n")
		b.WriteString(r.paths(result.Files))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderList renders components as a table
func (r *TerminalRenderer) RenderList(result *types.ListResult) string {
	if len(result.Components) == 0 {
		return MutedStyle.Render(fmt.Sprintf("No %s found", result.Category))
	}

	header := []string{"Handle", "Title", "Requires"}
	withFiles := hasFiles(result.Components)
	if withFiles {
		header = append(header, "File")
	}

	data := pterm.TableData{header}
	for _, c := range result.Components {
		title := c.Title
		if c.Custom {
			title += " " + MutedStyle.Render("(custom)")
		}
		row := []string{CategoryStyle(result.Category).Render(c.Handle), title, strings.Join(c.Requires, ", ")}
		if withFiles {
			file := c.File
			if file == "" {
				file = WarningStyle.Render("missing")
			}
			row = append(row, file)
		}
		data = append(data, row)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return NewPlainRenderer().RenderList(result)
	}
	return TitleStyle.Render(strings.ToUpper(result.Category.String()[:1])+result.Category.String()[1:]) + "\n\n" +
		strings.TrimRight(table, "\n")
}

// RenderValidate renders validation issues
func (r *TerminalRenderer) RenderValidate(result *types.ValidateResult) string {
	var b strings.Builder
	if result.Valid {
		b.WriteString(fmt.Sprintf("%s %s is valid\n", SuccessStyle.Render(SuccessIndicator), PathStyle.Render(result.Source)))
	} else {
		b.WriteString(fmt.Sprintf("%s %s has %d issue(s)\n", ErrorStyle.Render(ErrorIndicator), PathStyle.Render(result.Source), len(result.Issues)))
		for _, issue := range result.Issues {
			b.WriteString(Indent(WarningStyle.Render(WarningIndicator)+" "+issue, 1) + "\n")
		}
	}
	if len(result.Counts) > 0 {
		b.WriteString("\n")
		for _, category := range sortedCategories(result.Counts) {
			b.WriteString(Indent(fmt.Sprintf("%s %d", CategoryStyle(category).Render(category.String()), result.Counts[category]), 1) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPublish renders source to URL pairs
func (r *TerminalRenderer) RenderPublish(result *types.PublishResult) string {
	if len(result.Files) == 0 {
		return MutedStyle.Render("Nothing to publish")
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Published %d file(s)", len(result.Files))))
	if result.PublicDir != "" {
		b.WriteString(" " + MutedStyle.Render("into "+result.PublicDir))
	}
	b.WriteString("\n\n")
	for _, f := range result.Files {
		b.WriteString(Indent(fmt.Sprintf("%s %s %s %s",
			SuccessStyle.Render(SuccessIndicator),
			PathStyle.Render(f.Source),
			ArrowIndicator,
			CodeStyle.Render(f.Servable)), 1) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderError renders an error message followed by its details
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	out := fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, ErrorStyle.Render(err.Error()))

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out += "\n" + Indent(fmt.Sprintf("%s: %v", MutedStyle.Render(k), details[k]), 1)
	}
	return out
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderResolve renders one path per line, scripts first
func (r *PlainRenderer) RenderResolve(result *types.ResolveResult) string {
	var b strings.Builder
	b.WriteString("Scripts:\n")
	for _, p := range result.Scripts {
		b.WriteString("  " + p + "\n")
	}
	b.WriteString("Stylesheets:\n")
	for _, p := range result.Stylesheets {
		b.WriteString("  " + p + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderDeps renders the order on one line
func (r *PlainRenderer) RenderDeps(result *types.DepsResult) string {
	out := fmt.Sprintf("%s/%s: %s", result.Category, result.Handle, strings.Join(result.Order, " -> "))
	for _, f := range result.Files {
		out += "\n  " + f
	}
	return out
}

// RenderList renders one component per line
func (r *PlainRenderer) RenderList(result *types.ListResult) string {
	if len(result.Components) == 0 {
		return fmt.Sprintf("No %s found", result.Category)
	}
	var b strings.Builder
	for _, c := range result.Components {
		line := fmt.Sprintf("%s\t%s", c.Handle, c.Title)
		if len(c.Requires) > 0 {
			line += "\trequires " + strings.Join(c.Requires, ",")
		}
		if c.File != "" {
			line += "\t" + c.File
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderValidate renders the verdict and the issues
func (r *PlainRenderer) RenderValidate(result *types.ValidateResult) string {
	if result.Valid {
		return result.Source + ": valid"
	}
	lines := []string{fmt.Sprintf("%s: %d issue(s)", result.Source, len(result.Issues))}
	for _, issue := range result.Issues {
		lines = append(lines, "  "+issue)
	}
	return strings.Join(lines, "\n")
}

// RenderPublish renders one servable path per line
func (r *PlainRenderer) RenderPublish(result *types.PublishResult) string {
	if len(result.Files) == 0 {
		return "Nothing to publish"
	}
	lines := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		lines = append(lines, f.Source+" -> "+f.Servable)
	}
	return strings.Join(lines, "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

func tagFor(category types.Category) string {
	switch category {
	case types.CategoryThemes:
		return "theme"
	case types.CategoryLanguages:
		return "language"
	case types.CategoryPlugins:
		return "plugin"
	}
	return "core"
}

func hasFiles(components []types.ComponentInfo) bool {
	for _, c := range components {
		if c.File != "" {
			return true
		}
	}
	return false
}

func sortedCategories(counts map[types.Category]int) []types.Category {
	categories := make([]types.Category, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}
