package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// Choice is one answer button. A non-empty Swatch (#RRGGBB) draws a
// color block before the text.
type Choice struct {
	Text   string
	Swatch string
}

// MultiChoice is a multiple-choice selector laid out in rows of up to
// Columns buttons. Arrows move the cursor, digits pick directly.
type MultiChoice struct {
	Choices     []Choice
	Columns     int
	Selected    int
	Submitted   bool
	ChosenIndex int
	Correct     bool // verdict for ChosenIndex, set by Mark
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(choices []Choice) MultiChoice {
	cols := 2
	if len(choices) <= 3 {
		cols = len(choices)
	}
	if cols < 1 {
		cols = 1
	}
	return MultiChoice{
		Choices:     choices,
		Columns:     cols,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. After a choice is
// made the component ignores keys until Unlock.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted || len(m.Choices) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		if m.Selected > 0 {
			m.Selected--
		}
	case "right", "l":
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case "up", "k":
		if m.Selected-m.Columns >= 0 {
			m.Selected -= m.Columns
		}
	case "down", "j":
		if m.Selected+m.Columns < len(m.Choices) {
			m.Selected += m.Columns
		}
	case "enter", "space":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Choices) {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
			}
		}
	}

	return m, nil
}

// Chosen reports the picked index, if any.
func (m MultiChoice) Chosen() (int, bool) {
	return m.ChosenIndex, m.Submitted && m.ChosenIndex >= 0
}

// Mark records whether the chosen answer was right, for coloring.
func (m *MultiChoice) Mark(correct bool) {
	m.Correct = correct
}

// Unlock lets the player pick again after a miss.
func (m *MultiChoice) Unlock() {
	m.Submitted = false
	m.ChosenIndex = -1
}

// View renders the choices as a grid of buttons at width w.
func (m MultiChoice) View(w int) string {
	if len(m.Choices) == 0 {
		return ""
	}
	cellW := w/m.Columns - 2
	if cellW < 8 {
		cellW = 8
	}

	var rows []string
	for start := 0; start < len(m.Choices); start += m.Columns {
		end := min(start+m.Columns, len(m.Choices))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.cell(i, cellW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m MultiChoice) cell(i, w int) string {
	c := m.Choices[i]
	label := fmt.Sprintf("%d  %s", i+1, c.Text)
	if c.Swatch != "" {
		label = fmt.Sprintf("%d  %s %s", i+1, theme.Swatch(c.Swatch, 2), c.Text)
	}

	border := theme.Border
	fg := theme.Text
	switch {
	case m.Submitted && i == m.ChosenIndex && m.Correct:
		border, fg = theme.Success, theme.Success
	case m.Submitted && i == m.ChosenIndex:
		border, fg = theme.Error, theme.Error
	case !m.Submitted && i == m.Selected:
		border, fg = theme.ArcadeYellow, theme.ArcadeYellow
	}

	return lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Bold(i == m.Selected).
		Foreground(fg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(label)
}
