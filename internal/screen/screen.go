// Package screen defines the contract between the router and the
// individual screens, plus the services every screen may reach.
package screen

import (
	"context"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/bevuihoc/bevuihoc/internal/audio"
	"github.com/bevuihoc/bevuihoc/internal/config"
	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/logging"
	"github.com/bevuihoc/bevuihoc/internal/session"
	"github.com/bevuihoc/bevuihoc/internal/store"
	"github.com/bevuihoc/bevuihoc/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that consume Esc themselves
// instead of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Closer is implemented by screens holding timers or goroutines. The
// router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// Env carries the services screens need.
type Env struct {
	Config  config.Config
	Content *content.Loader
	Scores  store.Store
	Audio   audio.Service
	Logger  *log.Logger

	// Scheduler drives round timers; nil means wall-clock timers.
	Scheduler session.Scheduler
}

// NewRand returns a generator for one round. A configured seed makes
// every round repeat the same draws.
func (e Env) NewRand() *rand.Rand {
	seed := e.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Log returns the logger for a screen, never nil.
func (e Env) Log(component string) *log.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return logging.Component(e.Logger, component)
}

// AudioOrNop returns the audio service, never nil.
func (e Env) AudioOrNop() audio.Service {
	if e.Audio == nil {
		return audio.Nop{}
	}
	return e.Audio
}

// ScoresChangedMsg asks the app to reload best scores.
type ScoresChangedMsg struct{}

// BestScoresMsg carries freshly loaded best scores to every open screen.
type BestScoresMsg struct {
	Scores map[string]int
	Err    error
}

// Total sums every subject's best score.
func (m BestScoresMsg) Total() int {
	total := 0
	for _, v := range m.Scores {
		total += v
	}
	return total
}

// LoadScores reads the best scores off the update loop.
func LoadScores(env Env) tea.Cmd {
	return func() tea.Msg {
		if env.Scores == nil {
			return BestScoresMsg{Scores: map[string]int{}}
		}
		scores, err := env.Scores.BestScores(context.Background())
		return BestScoresMsg{Scores: scores, Err: err}
	}
}
