package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/ui/components"
	"github.com/bevuihoc/bevuihoc/internal/ui/layout"
	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

const arcadeTitleFull = `╔╗ ╔═╗  ╦  ╦╦ ╦╦  ╦ ╦╔═╗╔═╗
╠╩╗║╣   ╚╗╔╝║ ║║  ╠═╣║ ║║
╚═╝╚═╝   ╚╝ ╚═╝╩  ╩ ╩╚═╝╚═╝`

const arcadeTitleCompact = layout.AppName

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the score summary in a bordered box matching content width.
func renderStatsBar(total, played, subjects, cw int, compact bool) string {
	totalStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	playedStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			totalStyle.Render(fmt.Sprintf("★%d", total)),
			playedStyle.Render(fmt.Sprintf("🏆%d/%d", played, subjects)),
		)
	} else {
		stats = fmt.Sprintf("%s    %s",
			totalStyle.Render(fmt.Sprintf("★ %d ĐIỂM", total)),
			playedStyle.Render(fmt.Sprintf("🏆 %d/%d MÔN", played, subjects)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.ArcadeButton(label, i == selected, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
