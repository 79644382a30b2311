// Package app wires the router, the screens and the frame into the root
// Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/router"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/screens/home"
	"github.com/bevuihoc/bevuihoc/internal/screens/play"
	"github.com/bevuihoc/bevuihoc/internal/screens/welcome"
	"github.com/bevuihoc/bevuihoc/internal/ui/layout"
)

// Options selects how the app starts.
type Options struct {
	Env screen.Env

	// SkipWelcome goes straight to the home screen.
	SkipWelcome bool

	// Level, when set, opens that level on top of the home screen.
	Level      *levels.Level
	Difficulty content.Difficulty
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env     screen.Env
	router  *router.Router
	initCmd tea.Cmd
	best    int
	width   int
	height  int
}

// newAppModel creates a new AppModel with the start screen.
func newAppModel(opts Options) AppModel {
	env := opts.Env
	homeFactory := func() screen.Screen { return home.New(env) }

	m := AppModel{env: env}
	switch {
	case opts.Level != nil:
		h := homeFactory()
		m.router = router.New(h)
		d := opts.Difficulty
		if d == "" {
			d = opts.Level.DefaultDifficulty()
		}
		m.initCmd = tea.Batch(h.Init(), m.router.Push(play.New(env, *opts.Level, d)))
	case opts.SkipWelcome:
		h := homeFactory()
		m.router = router.New(h)
		m.initCmd = h.Init()
	default:
		w := welcome.New(homeFactory)
		m.router = router.New(w)
		m.initCmd = w.Init()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, screen.LoadScores(m.env))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.Close()
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case screen.ScoresChangedMsg:
		return m, screen.LoadScores(m.env)

	case screen.BestScoresMsg:
		if msg.Err != nil {
			m.env.Log("app").Warn("load best scores", "error", msg.Err)
		} else {
			m.best = msg.Total()
		}
		return m, m.router.Broadcast(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.best, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Tắt"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Tắt"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn"},
		{Key: "Enter", Description: "Vào"},
		{Key: "Ctrl+C", Description: "Tắt"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.router.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
