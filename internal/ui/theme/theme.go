// Package theme holds the colors and shared styles of the TUI.
package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette, bright for small eyes on a dark terminal.
var (
	Primary   = lipgloss.Color("#EC4899") // Candy Pink
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(ArcadeYellow).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Swatch renders a block of the given #RRGGBB color. Anything else falls
// back to a dim block.
func Swatch(hex string, width int) string {
	if width < 1 {
		width = 1
	}
	bg := TextDim
	if strings.HasPrefix(hex, "#") && (len(hex) == 7 || len(hex) == 4) {
		bg = lipgloss.Color(hex)
	}
	return lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", width))
}
