// Package welcome plays the splash animation shown at start-up.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/router"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

// Tagline is shown under the banner.
const Tagline = "Học mà chơi, chơi mà học!"

// spelled is typed out one letter per tick before the banner appears.
var spelled = []rune("BÉ VUI HỌC")

// bannerAt is the first frame showing the banner; the hint follows.
var (
	bannerAt = len(spelled) + 4
	hintAt   = bannerAt + 6
)

var rainbow = []string{"#EF4444", "#F59E0B", "#FACC15", "#22C55E", "#0EA5E9", "#8B5CF6", "#EC4899"}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// WelcomeScreen spells the app name, shows the banner and waits for any
// key before handing over to the home screen.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	left  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a welcome screen that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.left {
			return w, nil
		}
		w.frame++
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave builds the home screen once.
func (w *WelcomeScreen) leave() tea.Cmd {
	if w.left {
		return nil
	}
	w.left = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// Settled reports whether the whole intro has been shown.
func (w *WelcomeScreen) Settled() bool { return w.frame >= hintAt }

func (w *WelcomeScreen) View(width, height int) string {
	var rows []string
	if w.frame < bannerAt {
		rows = append(rows, spell(min(w.frame, len(spelled))))
	} else {
		rows = append(rows,
			balloons(w.frame),
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
		)
	}
	if w.Settled() && (w.frame/4)%2 == 0 {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("nhấn phím bất kỳ để bắt đầu"))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, rows...))
}

// spell renders the first n letters, each in its own color.
func spell(n int) string {
	var b strings.Builder
	for i, r := range spelled[:n] {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(rainbow[i%len(rainbow)]))
		b.WriteString(style.Render(string(r)))
		b.WriteByte(' ')
	}
	return b.String()
}

// balloons bob up and down a column each frame.
func balloons(frame int) string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		if (frame+i)%2 == 0 {
			b.WriteString(" ◯ ")
		} else {
			b.WriteString(" ● ")
		}
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(b.String())
}
