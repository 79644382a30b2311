// Package home is the start menu: pick an age group, look at the best
// scores or leave.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/router"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/screens/levelselect"
	"github.com/bevuihoc/bevuihoc/internal/screens/scoreboard"
	"github.com/bevuihoc/bevuihoc/internal/ui/components"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env        screen.Env
	menu       components.Menu
	menuLabels []string
	scores     map[string]int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env screen.Env) *HomeScreen {
	h := &HomeScreen{env: env, scores: map[string]int{}}

	h.menuLabels = []string{"LỚP 1", "MẦM NON", "BẢNG ĐIỂM", "THOÁT"}
	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: h.openGroup(levels.GroupGrade1)},
		{Label: h.menuLabels[1], Action: h.openGroup(levels.GroupPreschool)},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: scoreboard.New(h.env, h.scores)}
			}
		}},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) openGroup(g levels.Group) func() tea.Cmd {
	return func() tea.Cmd {
		next := levelselect.New(h.env, g, h.scores)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return screen.LoadScores(h.env)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(screen.BestScoresMsg); ok {
		if msg.Err == nil && msg.Scores != nil {
			h.scores = msg.Scores
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) total() (total, played int) {
	for _, v := range h.scores {
		total += v
		if v > 0 {
			played++
		}
	}
	return total, played
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100
	tiny := height < 16

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)
	total, played := h.total()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(total), cw))
	}
	sections = append(sections, renderStatsBar(total, played, len(levels.Subjects()), cw, compact))
	if tiny {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}
