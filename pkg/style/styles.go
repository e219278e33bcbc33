package style

import (
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	TitleStyle    = fg(HeadingColor).Bold(true)
	SubtitleStyle = fg(HeadingColor).Bold(true)
	MutedStyle    = fg(MutedColor)
	SuccessStyle  = fg(SuccessColor).Bold(true)
	ErrorStyle    = fg(ErrorColor).Bold(true)
	WarningStyle  = fg(WarningColor)
	InfoStyle     = fg(InfoColor)
	CodeStyle     = fg(PrimaryColor)
	PathStyle     = fg(SecondaryColor).Italic(true)
)

// CategoryStyle labels handles and headings of a category
func CategoryStyle(category types.Category) lipgloss.Style {
	return fg(CategoryColor(category)).Bold(true)
}

const (
	SuccessIndicator = "✓"
	ErrorIndicator   = "✗"
	WarningIndicator = "!"
	ArrowIndicator   = "→"
)

// Indent pads s by two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string      { return lipgloss.NewStyle().Bold(true).Render(s) }
func Italic(s string) string    { return lipgloss.NewStyle().Italic(true).Render(s) }
func Underline(s string) string { return lipgloss.NewStyle().Underline(true).Render(s) }
