// Package layout renders the frame around every screen: a title bar, the
// screen's content and a row of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// AppName is shown at the left of the header.
const AppName = "Bé Vui Học"

// Smallest terminal the games fit in.
const (
	MinWidth  = 64
	MinHeight = 20
)

// compactHeight is where screens start dropping decoration.
const compactHeight = 28

// KeyHint is one entry of the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight reports whether screens should use their short layout.
func IsCompactHeight(height int) bool {
	return height < compactHeight
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger window.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Cửa sổ nhỏ quá!\n\nHãy kéo rộng ra ít nhất %d x %d\n(hiện tại %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Align(lipgloss.Center).Render(text))
}

// RenderHeader draws the title bar. best is the sum of the best scores
// across subjects.
func RenderHeader(title string, best int, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("✿ " + AppName)
	stars := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("★ %d", best))
	if title != "" {
		name += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ›  ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	}

	bar := width - 2
	gap := bar - lipgloss.Width(name) - lipgloss.Width(stars)
	if gap < 1 {
		gap = 1
	}
	line := name + strings.Repeat(" ", gap) + stars

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(theme.Border).
		Render(line)
}

// RenderFooter lists the key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(theme.Border).
		Render(strings.Join(parts, desc.Render("  ·  ")))
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if rest < 0 {
		rest = 0
	}
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
