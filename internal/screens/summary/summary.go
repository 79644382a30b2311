// Package summary shows the outcome of a finished round and its review
// list of mistakes.
package summary

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/minigame"
	"github.com/bevuihoc/bevuihoc/internal/router"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/ui/layout"
	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// Reviewer toggles the review state of a finished round.
type Reviewer interface {
	Review(on bool) bool
}

// Params configures a SummaryScreen.
type Params struct {
	Round    Reviewer
	Result   minigame.Result
	NewBest  bool
	SaveErr  error
	Replay   func() screen.Screen
	Language string
}

// SummaryScreen displays the round summary.
type SummaryScreen struct {
	p         Params
	reviewing bool
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.EscapeHandler   = (*SummaryScreen)(nil)
)

// New creates a new SummaryScreen.
func New(p Params) *SummaryScreen {
	return &SummaryScreen{p: p}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Kết quả"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Tiếp tục"}}
	if s.p.Replay != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Chơi lại"})
	}
	if len(s.p.Result.Attempts) > 0 {
		label := "Xem lỗi sai"
		if s.reviewing {
			label = "Ẩn lỗi sai"
		}
		hints = append(hints, layout.KeyHint{Key: "V", Description: label})
	}
	return hints
}

// Reviewing reports whether the mistake list is open.
func (s *SummaryScreen) Reviewing() bool { return s.reviewing }

// HandlesEscape lets Esc close the mistake list before leaving.
func (s *SummaryScreen) HandlesEscape() bool { return s.reviewing }

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		if s.reviewing {
			s.toggleReview()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "r", "R":
		if s.p.Replay != nil {
			next := s.p.Replay()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "v", "V":
		if len(s.p.Result.Attempts) > 0 {
			s.toggleReview()
		}
	}
	return s, nil
}

func (s *SummaryScreen) toggleReview() {
	on := !s.reviewing
	if s.p.Round != nil && !s.p.Round.Review(on) {
		return
	}
	s.reviewing = on
}

func (s *SummaryScreen) View(width, height int) string {
	if s.reviewing {
		return s.renderReview(width)
	}
	res := s.p.Result

	var b strings.Builder
	b.WriteString("\n")
	title := "Hoàn thành!"
	if res.TimedOut {
		title = "Hết giờ!"
	}
	b.WriteString(centered(width, theme.Primary, true, title))
	b.WriteString("\n\n")

	if res.Cheer != "" {
		b.WriteString(centered(width, theme.ArcadeYellow, true, res.Cheer))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width, theme.Text, true, fmt.Sprintf("★ %d điểm", res.Points)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Đúng: %d/%d        Sai: %d        Chính xác: %.0f%%",
		res.Score, res.Total, res.Incorrect, res.Accuracy*100)
	b.WriteString(centered(width, theme.Text, false, stats))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.TextDim, false, "Thời gian: "+formatDuration(res.Elapsed)))
	b.WriteString("\n\n")

	switch {
	case s.p.SaveErr != nil:
		b.WriteString(centered(width, theme.Error, false, "Không lưu được điểm: "+s.p.SaveErr.Error()))
	case s.p.NewBest:
		b.WriteString(centered(width, theme.Success, true, "🏆 Kỷ lục mới!"))
	}

	if n := len(res.Attempts); n > 0 {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.TextDim, false, fmt.Sprintf("Có %d câu sai. Nhấn V để xem lại.", n)))
	}
	return b.String()
}

func (s *SummaryScreen) renderReview(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Primary, true, "Xem lại câu sai"))
	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, a := range s.p.Result.Attempts {
		line := fmt.Sprintf("%d. %s", i+1, a.Prompt)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line)))
		b.WriteString("\n")
		answers := lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+a.Given) +
			"    " +
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓ "+a.Expected)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, answers))
		b.WriteString("\n\n")
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func centered(width int, fg color.Color, bold bool, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Bold(bold).
		Render(text)
}
