// Package levelselect lists the mini-games of one age group.
package levelselect

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/router"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/screens/difficulty"
	"github.com/bevuihoc/bevuihoc/internal/screens/play"
	"github.com/bevuihoc/bevuihoc/internal/ui/components"
	"github.com/bevuihoc/bevuihoc/internal/ui/layout"
	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// LevelSelectScreen shows the levels of a group with their best scores.
type LevelSelectScreen struct {
	env    screen.Env
	group  levels.Group
	levels []levels.Level
	scores map[string]int
	menu   components.Menu
}

var (
	_ screen.Screen          = (*LevelSelectScreen)(nil)
	_ screen.KeyHintProvider = (*LevelSelectScreen)(nil)
)

// New lists the levels of g, with config overrides applied.
func New(env screen.Env, g levels.Group, scores map[string]int) *LevelSelectScreen {
	s := &LevelSelectScreen{
		env:    env,
		group:  g,
		levels: env.Config.LevelsIn(g),
		scores: scores,
	}
	s.rebuild(0)
	return s
}

func (s *LevelSelectScreen) rebuild(selected int) {
	items := make([]components.MenuItem, len(s.levels))
	for i, l := range s.levels {
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%d. %s", i+1, l.Title),
			Detail: s.detail(l),
			Action: s.open(l),
		}
	}
	s.menu = components.NewMenu(items)
	if selected < len(items) {
		s.menu.Selected = selected
	}
}

func (s *LevelSelectScreen) detail(l levels.Level) string {
	if best := s.scores[string(l.Subject)]; best > 0 {
		return fmt.Sprintf("★ %d", best)
	}
	return ""
}

// open starts l, asking for a difficulty first when there is a choice.
func (s *LevelSelectScreen) open(l levels.Level) func() tea.Cmd {
	return func() tea.Cmd {
		var next screen.Screen
		if l.SingleDifficulty() {
			next = play.New(s.env, l, l.DefaultDifficulty())
		} else {
			next = difficulty.New(s.env, l)
		}
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *LevelSelectScreen) Init() tea.Cmd {
	return nil
}

func (s *LevelSelectScreen) Title() string {
	return s.group.String()
}

func (s *LevelSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn"},
		{Key: "Enter", Description: "Chơi"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *LevelSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(screen.BestScoresMsg); ok {
		if msg.Err == nil && msg.Scores != nil {
			s.scores = msg.Scores
			s.rebuild(s.menu.Selected)
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LevelSelectScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render("Chọn trò chơi"))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if sel := s.menu.Selected; sel >= 0 && sel < len(s.levels) {
		l := s.levels[sel]
		info := l.Description
		if l.SingleDifficulty() && l.Timed(l.DefaultDifficulty()) {
			info += fmt.Sprintf("\n⏱ %d giây", int(l.TimeLimit(l.DefaultDifficulty()).Seconds()))
		}
		b.WriteString("\n")
		b.WriteString(components.ArcadeCard(info, cw))
	}

	return components.CabinetFrame(b.String(), width, height)
}
