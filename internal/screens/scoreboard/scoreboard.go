// Package scoreboard lists the best score of every subject and can wipe
// them.
package scoreboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/ui/components"
	"github.com/bevuihoc/bevuihoc/internal/ui/layout"
	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// resetDoneMsg reports the outcome of wiping the scores.
type resetDoneMsg struct{ Err error }

// ScoreboardScreen shows best scores per subject.
type ScoreboardScreen struct {
	env          screen.Env
	scores       map[string]int
	confirmReset bool
	errMsg       string
}

var (
	_ screen.Screen          = (*ScoreboardScreen)(nil)
	_ screen.KeyHintProvider = (*ScoreboardScreen)(nil)
	_ screen.EscapeHandler   = (*ScoreboardScreen)(nil)
)

// New shows scores until a fresh BestScoresMsg arrives.
func New(env screen.Env, scores map[string]int) *ScoreboardScreen {
	return &ScoreboardScreen{env: env, scores: scores}
}

func (s *ScoreboardScreen) Init() tea.Cmd {
	return screen.LoadScores(s.env)
}

func (s *ScoreboardScreen) Title() string {
	return "Bảng điểm"
}

// HandlesEscape lets Esc cancel the reset prompt.
func (s *ScoreboardScreen) HandlesEscape() bool {
	return s.confirmReset
}

func (s *ScoreboardScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Xoá hết"},
			{Key: "N", Description: "Giữ lại"},
		}
	}
	return []layout.KeyHint{
		{Key: "X", Description: "Xoá điểm"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *ScoreboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.BestScoresMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else if msg.Scores != nil {
			s.scores = msg.Scores
			s.errMsg = ""
		}
		return s, nil

	case resetDoneMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return screen.ScoresChangedMsg{} }

	case tea.KeyPressMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *ScoreboardScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.confirmReset {
		switch key {
		case "y", "Y":
			s.confirmReset = false
			return s, s.reset()
		case "n", "N", "esc":
			s.confirmReset = false
		}
		return s, nil
	}
	if key == "x" || key == "X" {
		s.confirmReset = true
	}
	return s, nil
}

func (s *ScoreboardScreen) reset() tea.Cmd {
	st, logger := s.env.Scores, s.env.Log("scoreboard")
	return func() tea.Msg {
		if st == nil {
			return resetDoneMsg{}
		}
		err := st.Reset(context.Background())
		if err != nil {
			logger.Error("reset scores", "error", err)
		} else {
			logger.Info("scores reset")
		}
		return resetDoneMsg{Err: err}
	}
}

func (s *ScoreboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render("🏆 Điểm cao nhất"))
	b.WriteString("\n\n")

	total := 0
	for _, subj := range levels.Subjects() {
		best := s.scores[string(subj)]
		total += best
		name := lipgloss.NewStyle().Foreground(theme.Text).Render(subj.Title())
		score := lipgloss.NewStyle().Foreground(theme.TextDim).Render("-")
		if best > 0 {
			score = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(fmt.Sprintf("%d", best))
		}
		pad := max(1, cw-8-lipgloss.Width(name)-lipgloss.Width(score))
		b.WriteString(name + strings.Repeat(" ", pad) + score + "\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("Tổng: ★ %d", total)))

	if s.confirmReset {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Xoá toàn bộ điểm? [Y/N]"))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Lỗi: " + s.errMsg))
	}

	return components.CabinetFrame(components.ArcadeCard(b.String(), cw), width, height)
}
