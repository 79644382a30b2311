// Package play hosts one round of a mini-game: it renders the current
// card, turns keys into answers and hands the result to the summary.
package play

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/minigame"
	"github.com/bevuihoc/bevuihoc/internal/router"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/screens/summary"
	"github.com/bevuihoc/bevuihoc/internal/session"
	"github.com/bevuihoc/bevuihoc/internal/ui/components"
	"github.com/bevuihoc/bevuihoc/internal/ui/layout"
)

// PlayScreen implements screen.Screen for a running round.
type PlayScreen struct {
	env        screen.Env
	level      levels.Level
	difficulty content.Difficulty
	logger     *log.Logger

	round *minigame.Round
	inbox *inbox
	stop  func()

	card    minigame.Card
	hasCard bool
	cardErr error
	status  session.Status

	input  components.TextInput
	choice components.MultiChoice
	picks  []int

	verdict     *minigame.Verdict
	quitConfirm bool
	ended       bool
	errMsg      string
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.EscapeHandler   = (*PlayScreen)(nil)
	_ screen.Closer          = (*PlayScreen)(nil)
)

// New prepares a round of level at difficulty d. Setup failures are shown
// on the screen instead of returned.
func New(env screen.Env, level levels.Level, d content.Difficulty) *PlayScreen {
	s := &PlayScreen{
		env:        env,
		level:      level,
		difficulty: d,
		logger:     env.Log("play"),
		inbox:      newInbox(),
		input:      components.NewTextInput("Gõ câu trả lời...", 40),
	}

	rng := env.NewRand()
	src, err := minigame.NewSource(context.Background(), level.Kind, d, env.Content, rng)
	if err == nil {
		s.round, err = minigame.NewRound(minigame.Options{
			Level:         level,
			Difficulty:    d,
			Source:        src,
			FeedbackDelay: env.Config.FeedbackDelay(),
			Audio:         env.AudioOrNop(),
			Logger:        env.Logger,
			Rand:          rng,
			Scheduler:     env.Scheduler,
			OnEvent:       s.inbox.push,
		})
	}
	if err != nil {
		s.logger.Error("round setup failed", "level", level.Kind, "difficulty", d, "error", err)
		s.errMsg = err.Error()
	}
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.round == nil {
		return nil
	}
	s.stop = s.round.Start()
	s.status = s.round.Status()
	return tea.Batch(s.input.Init(), s.inbox.wait())
}

func (s *PlayScreen) Title() string {
	return s.level.Title
}

// HandlesEscape keeps Esc for the quit prompt while the round runs.
func (s *PlayScreen) HandlesEscape() bool {
	return s.round != nil && !s.ended
}

// Close stops the round timers and the event pump.
func (s *PlayScreen) Close() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.inbox.close()
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Thoát"},
			{Key: "N", Description: "Chơi tiếp"},
		}
	}
	hints := []layout.KeyHint{{Key: "Esc", Description: "Thoát"}}
	switch s.card.Mode {
	case minigame.ModeText:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Trả lời"})
	case minigame.ModeChoice:
		hints = append(hints, layout.KeyHint{Key: "1-9", Description: "Chọn"}, layout.KeyHint{Key: "←→↑↓", Description: "Di chuyển"})
	case minigame.ModeOrder:
		hints = append(hints, layout.KeyHint{Key: "1-9", Description: "Ghép từ"}, layout.KeyHint{Key: "⌫", Description: "Bỏ từ"})
	case minigame.ModeGrid:
		hints = append(hints, layout.KeyHint{Key: "1-9", Description: "Bấm ô"})
	case minigame.ModeKeys:
		hints = append(hints, layout.KeyHint{Key: "a-z", Description: "Gõ theo mẫu"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Chơi lại"})
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roundEventMsg:
		return s, tea.Batch(s.handleEvent(msg.Event), s.inbox.wait())

	case roundSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleEvent(ev minigame.Event) tea.Cmd {
	switch ev := ev.(type) {
	case minigame.StatusEvent:
		s.status = ev.Status

	case minigame.CardEvent:
		s.verdict = nil
		if ev.Err != nil {
			s.card, s.hasCard, s.cardErr = minigame.Card{}, false, ev.Err
			return nil
		}
		s.setCard(ev.Card)
		s.status = s.round.Status()

	case minigame.EndEvent:
		s.ended = true
		s.quitConfirm = false
		return s.save(ev.Result)
	}
	return nil
}

func (s *PlayScreen) setCard(c minigame.Card) {
	s.card, s.hasCard, s.cardErr = c, true, nil
	s.input.Clear()
	s.picks = nil

	choices := make([]components.Choice, len(c.Options))
	for i, o := range c.Options {
		choices[i] = components.Choice{Text: o.Text, Swatch: o.Swatch}
	}
	s.choice = components.NewMultiChoice(choices)
}

// save records the best score off the update loop.
func (s *PlayScreen) save(res minigame.Result) tea.Cmd {
	scores := s.env.Scores
	return func() tea.Msg {
		if scores == nil {
			return roundSavedMsg{Result: res}
		}
		improved, err := minigame.SaveBest(context.Background(), scores, res)
		return roundSavedMsg{Result: res, Improved: improved, Err: err}
	}
}

func (s *PlayScreen) handleSaved(msg roundSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.logger.Error("save best score", "subject", msg.Result.Level.Subject, "error", msg.Err)
	}
	env, level, d, round := s.env, s.level, s.difficulty, s.round
	next := summary.New(summary.Params{
		Round:    round,
		Result:   msg.Result,
		NewBest:  msg.Improved,
		SaveErr:  msg.Err,
		Replay:   func() screen.Screen { return New(env, level, d) },
		Language: level.Language,
	})
	return s, tea.Batch(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
		func() tea.Msg { return screen.ScoresChangedMsg{} },
	)
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Setup error: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.ended {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "ctrl+r":
		s.restart()
		return s, nil
	}

	if !s.hasCard || s.pendingFeedback() {
		return s, nil
	}

	switch s.card.Mode {
	case minigame.ModeText:
		if key == "enter" {
			s.submit(s.input.Value())
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case minigame.ModeChoice:
		s.choice, _ = s.choice.Update(msg)
		if i, ok := s.choice.Chosen(); ok {
			v := s.round.Choose(i)
			s.choice.Mark(v.Correct)
			s.record(v)
			if v.Retry || !v.Accepted {
				s.choice.Unlock()
			}
		}
		return s, nil

	case minigame.ModeOrder:
		s.handleOrderKey(key)
		return s, nil

	case minigame.ModeGrid:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
			s.record(s.round.Submit(key))
		}
		return s, nil

	case minigame.ModeKeys:
		for _, r := range msg.Text {
			s.round.Key(r)
		}
		return s, nil
	}
	return s, nil
}

func (s *PlayScreen) handleOrderKey(key string) {
	switch key {
	case "backspace":
		if len(s.picks) > 0 {
			s.picks = s.picks[:len(s.picks)-1]
		}
		return
	case "enter":
		if len(s.picks) == len(s.card.Options) {
			s.submitPicks()
		}
		return
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(s.card.Options) {
		return
	}
	for _, p := range s.picks {
		if p == n-1 {
			return
		}
	}
	s.picks = append(s.picks, n-1)
	if len(s.picks) == len(s.card.Options) {
		s.submitPicks()
	}
}

func (s *PlayScreen) submitPicks() {
	fields := make([]string, len(s.picks))
	for i, p := range s.picks {
		fields[i] = strconv.Itoa(p + 1)
	}
	v := s.round.Submit(strings.Join(fields, " "))
	s.record(v)
	if !v.Correct {
		s.picks = nil
	}
}

func (s *PlayScreen) submit(input string) {
	if utf8.RuneCountInString(input) == 0 {
		return
	}
	v := s.round.Submit(input)
	if !v.Accepted {
		return
	}
	s.input.Submit(v.Correct)
	s.record(v)
	if v.Retry {
		s.input.Clear()
	}
}

func (s *PlayScreen) record(v minigame.Verdict) {
	if !v.Accepted {
		return
	}
	s.verdict = &v
	s.status = s.round.Status()
}

// pendingFeedback is true while a decided answer is on show.
func (s *PlayScreen) pendingFeedback() bool {
	return s.verdict != nil && !s.verdict.Retry
}

func (s *PlayScreen) restart() {
	if s.stop != nil {
		s.stop()
	}
	s.verdict = nil
	s.stop = s.round.Restart()
	s.status = s.round.Status()
	s.logger.Info("round restarted", "level", s.level.Kind)
}
