package play

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/challenge"
	"github.com/bevuihoc/bevuihoc/internal/minigame"
	"github.com/bevuihoc/bevuihoc/internal/ui/components"
	"github.com/bevuihoc/bevuihoc/internal/ui/layout"
	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// warnSeconds turns the clock red.
const warnSeconds = 10

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.quitConfirm:
		return renderQuitConfirm(width)
	case s.ended:
		return renderCentered(width, theme.TextDim, "\n\n\n  Đang lưu điểm...")
	}

	var b strings.Builder
	b.WriteString(s.renderHUD(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	switch {
	case s.cardErr != nil:
		b.WriteString(renderUnavailable(width, s.cardErr))
	case !s.hasCard:
		b.WriteString(renderCentered(width, theme.TextDim, "Đang chuẩn bị câu hỏi..."))
	default:
		b.WriteString(s.renderCard(width, height))
	}
	return b.String()
}

// renderHUD draws question, score and clock, plus typing stats when the
// mini-game reports them.
func (s *PlayScreen) renderHUD(width int) string {
	st := s.status
	parts := []string{
		fmt.Sprintf("Câu %d/%d", st.CurrentQuestion, st.TotalQuestions),
	}
	if st.Score != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("★ %d", *st.Score)))
	}
	if st.CPM != nil {
		parts = append(parts, fmt.Sprintf("%d ký tự/phút", *st.CPM))
	}
	if st.Accuracy != nil {
		parts = append(parts, fmt.Sprintf("chính xác %d%%", *st.Accuracy))
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + strings.Join(parts, "   "))

	if st.TimeRemaining == nil {
		return left
	}

	limit := s.level.TimeLimit(s.difficulty).Seconds()
	pct := 0.0
	if limit > 0 {
		pct = float64(*st.TimeRemaining) / limit
	}
	bar := components.ProgressBar{
		Label:     fmt.Sprintf("⏱ %ds", *st.TimeRemaining),
		Percent:   pct,
		Width:     min(36, max(16, width/3)),
		WarnBelow: warnSeconds / max(limit, 1),
	}
	right := bar.View()
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left + "\n  " + right
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *PlayScreen) renderCard(width, height int) string {
	c := s.card
	cw := components.ContentWidth(width)

	var body strings.Builder
	if c.Image != "" && !layout.IsCompactHeight(height) {
		body.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Image))
		body.WriteString("\n\n")
	}
	body.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	if c.Detail != "" {
		body.WriteString("\n")
		body.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(c.Detail))
	}
	if c.Speak != "" && c.Mode == minigame.ModeText {
		body.WriteString("\n")
		body.WriteString(theme.Hint.Render("🔊 " + c.Speak))
	}

	var card string
	if s.verdict != nil && !s.verdict.Retry {
		card = components.FeedbackCard(body.String(), s.verdict.Correct, cw)
	} else {
		card = components.ArcadeCard(body.String(), cw)
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	switch c.Mode {
	case minigame.ModeText:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Trả lời: "+s.input.View()))
	case minigame.ModeChoice:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View(cw)))
	case minigame.ModeOrder:
		b.WriteString(components.Tiles(c.Texts(), s.picks, width))
	case minigame.ModeGrid:
		b.WriteString(components.Grid(3, c.Cell-1, width))
	case minigame.ModeKeys:
		pos := 0
		if t := s.round.Tracker(); t != nil {
			pos = t.Pos()
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Passage(c.Expected, pos, cw)))
	}

	if line := s.renderVerdict(width); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}
	return b.String()
}

func (s *PlayScreen) renderVerdict(width int) string {
	v := s.verdict
	switch {
	case v == nil:
		return ""
	case v.Correct:
		return renderCentered(width, theme.Success, "✓ Đúng rồi!")
	case v.Retry:
		return renderCentered(width, theme.Accent, "Chưa đúng, thử lại nhé!")
	default:
		return renderCentered(width, theme.Error, fmt.Sprintf("✗ Đáp án đúng: %s", v.Expected))
	}
}

func renderUnavailable(width int, err error) string {
	msg := "Chưa có nội dung cho màn chơi này."
	if !errors.Is(err, challenge.ErrContentUnavailable) {
		msg = "Không tải được câu hỏi: " + err.Error()
	}
	return renderCentered(width, theme.Accent, msg+"\n\nNhấn Esc để quay lại.")
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(renderCentered(width, theme.Text, "Dừng chơi bây giờ?"))
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.TextDim, "Điểm của lượt này sẽ không được lưu."))
	b.WriteString("\n\n")
	b.WriteString(renderCentered(width, theme.Error, "[Y] Thoát"))
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.Success, "[N] Chơi tiếp"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return renderCentered(width, theme.Error, fmt.Sprintf("\n\n\n  Lỗi: %s\n\n  Nhấn phím bất kỳ để quay lại.", errMsg))
}

func renderCentered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(text)
}
