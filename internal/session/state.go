package session

import (
	"errors"
	"fmt"
	"time"
)

// Phase is the coarse round state that drives rendering upstream.
type Phase int

const (
	PhasePlaying  Phase = iota // Accepting answers, countdown running
	PhaseFinished              // Round over; review is possible
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DefaultFeedbackDelay is how long a verdict stays on screen before the
// round advances.
const DefaultFeedbackDelay = time.Second

// Config is fixed for the lifetime of an engine.
type Config struct {
	// TotalQuestions is the number of decisions in a round.
	TotalQuestions int

	// TimeLimit is the round budget; whole seconds are counted down.
	TimeLimit time.Duration

	// Language is passed through to callbacks and summaries ("vi", "en").
	Language string

	// FeedbackDelay is the pause between a decision and the advance.
	// Zero advances synchronously inside RecordCorrect/RecordIncorrect.
	FeedbackDelay time.Duration
}

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("invalid session config")

// Validate checks the config's invariants.
func (c Config) Validate() error {
	if c.TotalQuestions <= 0 {
		return fmt.Errorf("%w: total questions must be positive, got %d", ErrInvalidConfig, c.TotalQuestions)
	}
	if c.TimeLimit < time.Second {
		return fmt.Errorf("%w: time limit must be at least 1s, got %s", ErrInvalidConfig, c.TimeLimit)
	}
	if c.FeedbackDelay < 0 {
		return fmt.Errorf("%w: feedback delay must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c Config) limitSeconds() int {
	return int(c.TimeLimit / time.Second)
}

// State is a point-in-time copy of the engine's round state.
type State[T any] struct {
	RoundID string
	Phase   Phase

	// TimeRemaining is in whole seconds and never negative.
	TimeRemaining int

	// QuestionIndex is zero-based and never exceeds TotalQuestions-1.
	QuestionIndex int

	Score             int
	IncorrectAttempts []T

	Reviewing bool

	// FeedbackPending is true between a decision and its advance.
	FeedbackPending bool
}

// Status is the HUD snapshot pushed to the host. Optional fields are nil
// when the mini-game does not report them.
type Status struct {
	TimeRemaining   *int
	CurrentQuestion int
	TotalQuestions  int
	Score           *int
	CPM             *int
	Accuracy        *int
}

// Summary describes a finished (or in-progress) round.
type Summary struct {
	RoundID   string
	Language  string
	Score     int
	Total     int
	Incorrect int
	// Accuracy is correct decisions over all decisions made, 0 when none.
	Accuracy float64
	TimedOut bool
	Elapsed  time.Duration
}

// Result is delivered once when a round finishes.
type Result[T any] struct {
	Summary
	Attempts []T
}
