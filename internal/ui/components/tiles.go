package components

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// Tiles renders word tiles for sentence building. Picked tiles are dimmed
// and the sentence built so far is shown above them.
func Tiles(words []string, picks []int, w int) string {
	built := make([]string, 0, len(picks))
	for _, p := range picks {
		if p >= 0 && p < len(words) {
			built = append(built, words[p])
		}
	}
	line := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Width(w).
		Align(lipgloss.Center).
		Render(strings.Join(built, " ") + "▁")

	tiles := make([]string, 0, len(words))
	for i, word := range words {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
		if slices.Contains(picks, i) {
			style = style.Foreground(theme.TextDim).BorderForeground(theme.Border)
		} else {
			style = style.Foreground(theme.Text).BorderForeground(theme.ArcadeCyan)
		}
		tiles = append(tiles, style.Render(fmt.Sprintf("%d %s", i+1, word)))
	}
	return line + "\n\n" + wrapBlocks(tiles, w)
}

// Grid renders a size×size board with the target cell lit.
func Grid(size, target int, w int) string {
	cell := lipgloss.NewStyle().
		Width(5).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.TextDim)
	lit := cell.
		BorderForeground(theme.ArcadeYellow).
		Foreground(theme.ArcadeYellow).
		Bold(true)

	rows := make([]string, 0, size)
	for r := 0; r < size; r++ {
		cells := make([]string, 0, size)
		for c := 0; c < size; c++ {
			n := r*size + c
			if n == target {
				cells = append(cells, lit.Render(fmt.Sprintf("★%d", n+1)))
			} else {
				cells = append(cells, cell.Render(fmt.Sprintf("%d", n+1)))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(strings.Join(rows, "\n"))
}

// Passage renders typing practice text: typed runes green, the cursor
// rune highlighted, the rest dim.
func Passage(text string, pos int, w int) string {
	runes := []rune(text)
	pos = max(0, min(pos, len(runes)))
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(string(runes[:pos])))
	if pos < len(runes) {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Render(string(runes[pos])))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(string(runes[pos+1:])))
	}
	return lipgloss.NewStyle().Width(w).Render(b.String())
}

// wrapBlocks joins rendered blocks horizontally, breaking rows at w.
func wrapBlocks(blocks []string, w int) string {
	var rows []string
	var row []string
	rowW := 0
	for _, b := range blocks {
		bw := lipgloss.Width(b)
		if rowW+bw > w && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowW = nil, 0
		}
		row = append(row, b)
		rowW += bw
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, strings.Join(rows, "\n"))
}
