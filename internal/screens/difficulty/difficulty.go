// Package difficulty asks which difficulty to play a level at.
package difficulty

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/router"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/screens/play"
	"github.com/bevuihoc/bevuihoc/internal/ui/components"
	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// DifficultyScreen lists the difficulties a level offers.
type DifficultyScreen struct {
	env   screen.Env
	level levels.Level
	menu  components.Menu
}

var _ screen.Screen = (*DifficultyScreen)(nil)

// New builds the picker for l.
func New(env screen.Env, l levels.Level) *DifficultyScreen {
	s := &DifficultyScreen{env: env, level: l}
	items := make([]components.MenuItem, len(l.Difficulties))
	for i, d := range l.Difficulties {
		detail := "không giới hạn giờ"
		if l.Timed(d) {
			detail = fmt.Sprintf("⏱ %d giây", int(l.TimeLimit(d).Seconds()))
		}
		items[i] = components.MenuItem{
			Label:  d.Label(l.Language),
			Detail: detail,
			Action: func() tea.Cmd {
				// Replace so the summary returns to the level list.
				next := play.New(env, l, d)
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			},
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *DifficultyScreen) Init() tea.Cmd {
	return nil
}

func (s *DifficultyScreen) Title() string {
	return s.level.Title
}

func (s *DifficultyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DifficultyScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render("Chọn độ khó"))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	return components.CabinetFrame(b.String(), width, height)
}
