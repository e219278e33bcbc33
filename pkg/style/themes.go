package style

import (
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// shade pairs the light and dark terminal variants of one color
func shade(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Interface colors. The hues follow the default Prism theme tokens so the
// CLI reads like the highlighted code it describes.
var (
	PrimaryColor   = shade("#0077AA", "#66D9EF") // keyword
	SecondaryColor = shade("#708090", "#9AA5B1") // comment
	SuccessColor   = shade("#669900", "#A6E22E") // string
	ErrorColor     = shade("#C92C2C", "#F92672") // deleted
	WarningColor   = shade("#CC7A00", "#FD971F") // regex
	InfoColor      = shade("#1990B8", "#56B6C2") // url
	HeadingColor   = shade("#1A1A1A", "#F8F8F2")
	MutedColor     = shade("#7D8B99", "#75715E")
)

// Category colors, keyed so every category has a distinct label
var categoryColors = map[types.Category]lipgloss.AdaptiveColor{
	types.CategoryCore:      shade("#2F9C0A", "#B8E994"),
	types.CategoryThemes:    shade("#905FC7", "#AE81FF"),
	types.CategoryLanguages: shade("#DD4A68", "#FF79C6"),
	types.CategoryPlugins:   shade("#A67F59", "#E6DB74"),
}

// CategoryColor returns the label color of category, or InfoColor for
// anything outside the catalog
func CategoryColor(category types.Category) lipgloss.AdaptiveColor {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return InfoColor
}
