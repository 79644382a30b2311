// Package session implements the round engine shared by every mini-game:
// a countdown, question progression, score and mistake tracking, review
// mode and a single-fire end-of-round transition.
package session

import (
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/bevuihoc/bevuihoc/internal/audio"
)

// Callbacks are the host's sinks. Any of them may be nil. They are invoked
// without the engine lock held, so they may call back into the engine.
type Callbacks[T any] struct {
	// OnStatus receives a HUD snapshot on start, every tick and every advance.
	OnStatus func(Status)

	// OnCorrect fires once per accepted correct decision.
	OnCorrect func()

	// OnQuestion fires when the index advances; the host fetches the next
	// challenge for the given zero-based index.
	OnQuestion func(index int)

	// OnGameEnd fires exactly once per round.
	OnGameEnd func(Result[T])

	// OnEffect receives audio cues: correct, incorrect and the completion signal.
	OnEffect func(audio.Effect)
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	scheduler Scheduler
	logger    *log.Logger
	newID     func() string
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(o *engineOptions) { o.scheduler = s }
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// WithIDGenerator replaces the round ID source.
func WithIDGenerator(f func() string) Option {
	return func(o *engineOptions) { o.newID = f }
}

// Engine is the round state machine. T is the mini-game's attempt record,
// stored for review and never inspected.
type Engine[T any] struct {
	mu     sync.Mutex
	cfg    Config
	cb     Callbacks[T]
	sched  Scheduler
	logger *log.Logger
	newID  func() string

	st State[T]

	// gen invalidates timer callbacks from earlier rounds or disposers.
	gen         uint64
	ended       bool
	timedOut    bool
	lastCorrect bool
	ticker      Timer
	feedback    Timer
}

// New validates cfg and returns an engine in the playing phase with the
// countdown not yet running. Call Start to begin.
func New[T any](cfg Config, cb Callbacks[T], opts ...Option) (*Engine[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := engineOptions{
		scheduler: RealScheduler{},
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	e := &Engine[T]{
		cfg:    cfg,
		cb:     cb,
		sched:  o.scheduler,
		logger: o.logger,
		newID:  o.newID,
	}
	e.initLocked()
	return e, nil
}

// Config returns the engine's immutable configuration.
func (e *Engine[T]) Config() Config {
	return e.cfg
}

// Start initializes the round and begins the countdown. The returned
// function cancels the countdown and any pending feedback timer; the host
// must call it when the mini-game goes away.
func (e *Engine[T]) Start() (stop func()) {
	return e.restart("round started")
}

// Reset reinitializes every field, including a fresh countdown, from any
// state. Pending timers from the previous round are cancelled.
func (e *Engine[T]) Reset() (stop func()) {
	return e.restart("round reset")
}

func (e *Engine[T]) restart(msg string) func() {
	e.mu.Lock()
	e.initLocked()
	gen := e.gen
	e.scheduleTickLocked(gen)
	events := []func(){e.statusEventLocked()}
	e.logger.Info(msg,
		"round", e.st.RoundID,
		"questions", e.cfg.TotalQuestions,
		"limit", e.cfg.TimeLimit,
		"lang", e.cfg.Language)
	e.mu.Unlock()

	dispatch(events)
	return func() { e.dispose(gen) }
}

func (e *Engine[T]) initLocked() {
	e.stopTimersLocked()
	e.gen++
	e.ended = false
	e.timedOut = false
	e.lastCorrect = false
	e.st = State[T]{
		RoundID:       e.newID(),
		Phase:         PhasePlaying,
		TimeRemaining: e.cfg.limitSeconds(),
	}
}

func (e *Engine[T]) dispose(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		return
	}
	e.gen++
	e.stopTimersLocked()
	e.st.FeedbackPending = false
	e.logger.Debug("round disposed", "round", e.st.RoundID)
}

func (e *Engine[T]) stopTimersLocked() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	if e.feedback != nil {
		e.feedback.Stop()
		e.feedback = nil
	}
}

// RecordCorrect accepts a correct decision. It reports false, changing
// nothing, when the round is finished or a decision is already pending.
func (e *Engine[T]) RecordCorrect() bool {
	e.mu.Lock()
	if !e.acceptingLocked() {
		e.mu.Unlock()
		return false
	}
	e.st.Score++
	e.lastCorrect = true
	e.logger.Debug("correct", "round", e.st.RoundID, "question", e.st.QuestionIndex+1, "score", e.st.Score)

	events := []func(){
		func() { call0(e.cb.OnCorrect) },
		e.effectEvent(audio.EffectCorrect),
	}
	events = append(events, e.beginFeedbackLocked()...)
	e.mu.Unlock()

	dispatch(events)
	return true
}

// RecordIncorrect appends attempt to the mistake list. Same acceptance
// rules as RecordCorrect.
func (e *Engine[T]) RecordIncorrect(attempt T) bool {
	e.mu.Lock()
	if !e.acceptingLocked() {
		e.mu.Unlock()
		return false
	}
	e.st.IncorrectAttempts = append(e.st.IncorrectAttempts, attempt)
	e.lastCorrect = false
	e.logger.Debug("incorrect", "round", e.st.RoundID, "question", e.st.QuestionIndex+1, "mistakes", len(e.st.IncorrectAttempts))

	events := []func(){e.effectEvent(audio.EffectIncorrect)}
	events = append(events, e.beginFeedbackLocked()...)
	e.mu.Unlock()

	dispatch(events)
	return true
}

func (e *Engine[T]) acceptingLocked() bool {
	if e.st.Phase != PhasePlaying || e.st.FeedbackPending {
		e.logger.Debug("decision ignored", "round", e.st.RoundID, "phase", e.st.Phase, "pending", e.st.FeedbackPending)
		return false
	}
	return true
}

func (e *Engine[T]) beginFeedbackLocked() []func() {
	if e.cfg.FeedbackDelay <= 0 {
		return e.advanceLocked()
	}
	e.st.FeedbackPending = true
	gen := e.gen
	e.feedback = e.sched.AfterFunc(e.cfg.FeedbackDelay, func() { e.onFeedbackElapsed(gen) })
	return nil
}

func (e *Engine[T]) onFeedbackElapsed(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || !e.st.FeedbackPending {
		e.mu.Unlock()
		return
	}
	events := e.advanceLocked()
	e.mu.Unlock()
	dispatch(events)
}

// advanceLocked moves past the decided question, finishing the round after
// the last one.
func (e *Engine[T]) advanceLocked() []func() {
	e.st.FeedbackPending = false
	e.feedback = nil
	if e.st.Phase != PhasePlaying {
		return nil
	}
	if e.st.QuestionIndex >= e.cfg.TotalQuestions-1 {
		return e.finishLocked(false)
	}
	e.st.QuestionIndex++
	idx := e.st.QuestionIndex
	return []func(){
		func() {
			if e.cb.OnQuestion != nil {
				e.cb.OnQuestion(idx)
			}
		},
		e.statusEventLocked(),
	}
}

// Tick counts one second down. At zero the round finishes. Ticks after the
// round has finished are ignored.
func (e *Engine[T]) Tick() {
	e.mu.Lock()
	events := e.tickLocked()
	e.mu.Unlock()
	dispatch(events)
}

func (e *Engine[T]) tickLocked() []func() {
	if e.st.Phase != PhasePlaying {
		return nil
	}
	e.st.TimeRemaining--
	if e.st.TimeRemaining <= 0 {
		e.st.TimeRemaining = 0
		// The HUD sees the clock reach zero before the round ends.
		return append([]func(){e.statusEventLocked()}, e.finishLocked(true)...)
	}
	return []func(){e.statusEventLocked()}
}

func (e *Engine[T]) scheduleTickLocked(gen uint64) {
	e.ticker = e.sched.AfterFunc(time.Second, func() { e.onTick(gen) })
}

func (e *Engine[T]) onTick(gen uint64) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	events := e.tickLocked()
	if e.st.Phase == PhasePlaying {
		e.scheduleTickLocked(gen)
	}
	e.mu.Unlock()
	dispatch(events)
}

// finishLocked is the only path into PhaseFinished. The ended latch makes
// the timer and answer paths race-safe: the first caller wins.
func (e *Engine[T]) finishLocked(timedOut bool) []func() {
	if e.ended {
		return nil
	}
	e.ended = true
	e.timedOut = timedOut
	e.st.Phase = PhaseFinished
	e.st.FeedbackPending = false
	e.stopTimersLocked()

	res := Result[T]{
		Summary:  e.summaryLocked(),
		Attempts: slices.Clone(e.st.IncorrectAttempts),
	}
	e.logger.Info("round finished",
		"round", res.RoundID,
		"score", res.Score,
		"total", res.Total,
		"mistakes", res.Incorrect,
		"timed_out", timedOut)

	var events []func()
	if !timedOut && e.lastCorrect {
		events = append(events, e.effectEvent(audio.EffectVictory))
	}
	events = append(events, func() {
		if e.cb.OnGameEnd != nil {
			e.cb.OnGameEnd(res)
		}
	})
	return events
}

// EnterReview shows the mistake list. Valid only once the round is finished.
func (e *Engine[T]) EnterReview() bool {
	return e.setReview(true)
}

// ExitReview hides the mistake list. Valid only once the round is finished.
func (e *Engine[T]) ExitReview() bool {
	return e.setReview(false)
}

func (e *Engine[T]) setReview(on bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st.Phase != PhaseFinished {
		return false
	}
	e.st.Reviewing = on
	return true
}

// Snapshot returns a copy of the round state.
func (e *Engine[T]) Snapshot() State[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.st
	st.IncorrectAttempts = slices.Clone(e.st.IncorrectAttempts)
	return st
}

// Status returns the current HUD snapshot.
func (e *Engine[T]) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

// Summary describes the round so far.
func (e *Engine[T]) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summaryLocked()
}

func (e *Engine[T]) statusLocked() Status {
	remaining := e.st.TimeRemaining
	score := e.st.Score
	return Status{
		TimeRemaining:   &remaining,
		CurrentQuestion: e.st.QuestionIndex + 1,
		TotalQuestions:  e.cfg.TotalQuestions,
		Score:           &score,
	}
}

func (e *Engine[T]) statusEventLocked() func() {
	status := e.statusLocked()
	return func() {
		if e.cb.OnStatus != nil {
			e.cb.OnStatus(status)
		}
	}
}

func (e *Engine[T]) effectEvent(kind audio.Effect) func() {
	return func() {
		if e.cb.OnEffect != nil {
			e.cb.OnEffect(kind)
		}
	}
}

func (e *Engine[T]) summaryLocked() Summary {
	incorrect := len(e.st.IncorrectAttempts)
	decided := e.st.Score + incorrect
	var accuracy float64
	if decided > 0 {
		accuracy = float64(e.st.Score) / float64(decided)
	}
	return Summary{
		RoundID:   e.st.RoundID,
		Language:  e.cfg.Language,
		Score:     e.st.Score,
		Total:     e.cfg.TotalQuestions,
		Incorrect: incorrect,
		Accuracy:  accuracy,
		TimedOut:  e.timedOut,
		Elapsed:   time.Duration(e.cfg.limitSeconds()-e.st.TimeRemaining) * time.Second,
	}
}

func call0(f func()) {
	if f != nil {
		f()
	}
}

func dispatch(events []func()) {
	for _, ev := range events {
		ev()
	}
}
