package simulator

import "github.com/charmbracelet/lipgloss"

// Color palette for the virtual LCD.
var (
	backlightOnColor  = lipgloss.Color("#9ACD32") // classic green-yellow LCD glow
	backlightOffColor = lipgloss.Color("#3A3A3A")
	lcdTextColor      = lipgloss.Color("#1A1A1A")
	dimTextColor      = lipgloss.Color("#808080")
	mutedColor        = lipgloss.Color("#626262")
)

var (
	// screenOnStyle frames the LCD while the backlight is lit.
	screenOnStyle = lipgloss.NewStyle().
			Background(backlightOnColor).
			Foreground(lcdTextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	// screenOffStyle is the dimmed frame shown while the display sleeps.
	screenOffStyle = lipgloss.NewStyle().
			Background(backlightOffColor).
			Foreground(dimTextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	// statusStyle is for the position and event lines under the screen.
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(1)

	// titleStyle is for the header above the screen.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(1)
)
