package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// ConfigureOutput picks the color profile for output written to w.
// NO_COLOR, a non-terminal writer or noColor turn styling off.
// It reports whether colors are enabled.
func ConfigureOutput(w io.Writer, noColor bool) bool {
	profile := termenv.NewOutput(w).EnvColorProfile()
	if noColor {
		profile = termenv.Ascii
	}

	lipgloss.SetColorProfile(profile)
	if profile == termenv.Ascii {
		pterm.DisableStyling()
		return false
	}
	pterm.EnableStyling()
	return true
}
