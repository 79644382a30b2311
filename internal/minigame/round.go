package minigame

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bevuihoc/bevuihoc/internal/audio"
	"github.com/bevuihoc/bevuihoc/internal/challenge"
	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/logging"
	"github.com/bevuihoc/bevuihoc/internal/session"
)

// PointsPerCorrect is added to the round's point total for every correct
// answer.
const PointsPerCorrect = 10

// Event is delivered to Options.OnEvent from whichever goroutine drove
// the round: the caller of Submit, or a timer.
type Event interface{ event() }

// StatusEvent carries a HUD refresh.
type StatusEvent struct{ Status session.Status }

// CardEvent announces the card for question Index. Err is set, and Card
// empty, when the source could not supply one.
type CardEvent struct {
	Index int
	Card  Card
	Err   error
}

// EndEvent is sent once per round.
type EndEvent struct{ Result Result }

func (StatusEvent) event() {}
func (CardEvent) event()   {}
func (EndEvent) event()    {}

// Options configures a Round. Level, Difficulty and Source are required.
type Options struct {
	Level      levels.Level
	Difficulty content.Difficulty
	Source     Source

	// FeedbackDelay is the pause after an answer for levels that do not
	// set their own.
	FeedbackDelay time.Duration

	Audio     audio.Service
	Logger    *log.Logger
	Rand      *rand.Rand
	Scheduler session.Scheduler
	Clock     func() time.Time
	OnEvent   func(Event)
}

// Result is the finished round as the app sees it.
type Result struct {
	session.Result[Attempt]

	Level      levels.Level
	Difficulty content.Difficulty

	// Points is the value compared against the subject's best score.
	Points int

	// Cheer is the phrase spoken at the end of the round.
	Cheer string
}

// Verdict describes how Submit handled an answer.
type Verdict struct {
	// Accepted is false when the answer was ignored: no card, blank input,
	// feedback still showing, or the round is over.
	Accepted bool
	Correct  bool

	// Retry means the answer was wrong but the question stays.
	Retry bool

	Given    string
	Expected string
}

// Round is one play-through of a level.
type Round struct {
	opts   Options
	engine *session.Engine[Attempt]
	logger *log.Logger

	mu      sync.Mutex
	card    Card
	hasCard bool
	cardErr error
	tracker *challenge.Tracker
	points  int
	cheer   string
	victory bool // the engine already played the victory cue
	result  *Result
}

// NewRound validates opts and prepares the engine. Call Start to play.
func NewRound(opts Options) (*Round, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("round for %s: no source", opts.Level.Kind)
	}
	if !opts.Level.Supports(opts.Difficulty) {
		return nil, fmt.Errorf("level %s does not offer difficulty %s", opts.Level.Kind, opts.Difficulty)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Scheduler == nil {
		opts.Scheduler = session.RealScheduler{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	questions := opts.Level.Questions
	if questions == 0 {
		questions = opts.Source.Size()
	}
	if questions == 0 {
		return nil, fmt.Errorf("%w: level %s has nothing to ask", challenge.ErrContentUnavailable, opts.Level.Kind)
	}

	r := &Round{
		opts:   opts,
		logger: logging.Component(opts.Logger, "minigame").With("level", opts.Level.Kind),
	}
	cfg := session.Config{
		TotalQuestions: questions,
		TimeLimit:      opts.Level.TimeLimit(opts.Difficulty),
		Language:       opts.Level.Language,
		FeedbackDelay:  feedbackDelay(opts.Level, opts.FeedbackDelay),
	}
	engine, err := session.New(cfg, session.Callbacks[Attempt]{
		OnStatus:   func(st session.Status) { r.emit(StatusEvent{Status: r.decorate(st)}) },
		OnCorrect:  r.addPoints,
		OnQuestion: r.draw,
		OnGameEnd:  r.finish,
		OnEffect:   r.effect,
	},
		session.WithScheduler(opts.Scheduler),
		session.WithLogger(logging.Component(opts.Logger, "session")),
	)
	if err != nil {
		return nil, err
	}
	r.engine = engine
	return r, nil
}

func feedbackDelay(l levels.Level, fallback time.Duration) time.Duration {
	switch {
	case l.Instant:
		return 0
	case l.FeedbackDelay > 0:
		return l.FeedbackDelay
	default:
		return fallback
	}
}

// Level is the level being played.
func (r *Round) Level() levels.Level { return r.opts.Level }

// Difficulty is the chosen difficulty.
func (r *Round) Difficulty() content.Difficulty { return r.opts.Difficulty }

// Start begins the countdown and shows the first card. The returned
// function stops every timer and must be called when the round goes away.
func (r *Round) Start() (stop func()) {
	r.clear()
	stop = r.engine.Start()
	r.draw(0)
	return stop
}

// Restart plays the level again from scratch.
func (r *Round) Restart() (stop func()) {
	r.clear()
	stop = r.engine.Reset()
	r.draw(0)
	return stop
}

func (r *Round) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.card, r.hasCard, r.cardErr = Card{}, false, nil
	r.tracker = nil
	r.points = 0
	r.cheer = ""
	r.victory = false
	r.result = nil
}

// draw fetches the card for question index.
func (r *Round) draw(index int) {
	r.mu.Lock()
	card, err := r.opts.Source.Next()
	if err != nil {
		r.card, r.hasCard, r.cardErr = Card{}, false, err
		r.tracker = nil
	} else {
		r.card, r.hasCard, r.cardErr = card, true, nil
		r.tracker = nil
		if card.Mode == ModeKeys {
			r.tracker = challenge.NewTracker(card.Expected)
		}
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Warn("content unavailable", "question", index+1, "error", err)
		r.emit(CardEvent{Index: index, Err: err})
		return
	}
	r.logger.Debug("card", "question", index+1, "mode", card.Mode, "expected", card.Expected)
	if card.Speak != "" {
		r.opts.Audio.Speak(card.Speak, card.Lang)
	}
	r.emit(CardEvent{Index: index, Card: card})
}

// Card returns the current card, or the error that prevented drawing one.
func (r *Round) Card() (Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasCard {
		if r.cardErr != nil {
			return Card{}, r.cardErr
		}
		return Card{}, fmt.Errorf("%w: no card drawn", challenge.ErrContentUnavailable)
	}
	return r.card, nil
}

// Submit judges input against the current card. Submissions are expected
// from a single goroutine, normally the UI loop.
func (r *Round) Submit(input string) Verdict {
	r.mu.Lock()
	card, ok := r.card, r.hasCard
	r.mu.Unlock()
	if !ok || strings.TrimSpace(input) == "" || !card.Accepts(input) {
		return Verdict{}
	}

	given, correct := card.Judge(input)
	v := Verdict{Correct: correct, Given: given, Expected: card.Expected}
	switch {
	case correct:
		v.Accepted = r.engine.RecordCorrect()
	case r.opts.Level.RetryOnMiss:
		st := r.engine.Snapshot()
		if st.Phase == session.PhasePlaying && !st.FeedbackPending {
			v.Accepted, v.Retry = true, true
			r.opts.Audio.PlayEffect(audio.EffectIncorrect)
			r.logger.Debug("retry", "question", st.QuestionIndex+1, "given", given)
		}
	default:
		v.Accepted = r.engine.RecordIncorrect(attemptFor(card, given))
	}
	return v
}

// Choose submits the option at zero-based index i.
func (r *Round) Choose(i int) Verdict {
	return r.Submit(strconv.Itoa(i + 1))
}

// Key feeds one keystroke to a typing card and reports whether it was
// the expected key. Completing the passage submits it.
func (r *Round) Key(ch rune) bool {
	r.mu.Lock()
	t := r.tracker
	if t == nil {
		r.mu.Unlock()
		return false
	}
	matched := t.Type(ch, r.opts.Clock())
	done, text := t.Done(), t.Text()
	r.mu.Unlock()

	if done && matched {
		r.Submit(text)
	} else {
		r.emit(StatusEvent{Status: r.Status()})
	}
	return matched
}

// Tracker returns the keystroke tracker of a typing card, or nil.
func (r *Round) Tracker() *challenge.Tracker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracker
}

// Tick counts the clock down by one second outside the scheduler.
func (r *Round) Tick() { r.engine.Tick() }

// Status is the HUD snapshot with the mini-game's extra fields.
func (r *Round) Status() session.Status {
	return r.decorate(r.engine.Status())
}

func (r *Round) decorate(st session.Status) session.Status {
	if !r.opts.Level.Timed(r.opts.Difficulty) {
		st.TimeRemaining = nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tracker != nil {
		cpm, acc := r.tracker.CPM(r.opts.Clock()), r.tracker.Accuracy()
		st.CPM, st.Accuracy = &cpm, &acc
	}
	return st
}

// Snapshot returns the engine state.
func (r *Round) Snapshot() session.State[Attempt] { return r.engine.Snapshot() }

// Points is the running point total.
func (r *Round) Points() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points
}

// Result returns the outcome once the round has finished.
func (r *Round) Result() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}

// Review toggles the mistake list of a finished round.
func (r *Round) Review(on bool) bool {
	if on {
		return r.engine.EnterReview()
	}
	return r.engine.ExitReview()
}

func (r *Round) addPoints() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points += PointsPerCorrect
}

// effect and finish share opts.Rand with draw, so finish holds r.mu while
// picking a phrase.
func (r *Round) effect(e audio.Effect) {
	if e == audio.EffectVictory {
		r.mu.Lock()
		r.victory = true
		r.mu.Unlock()
	}
	r.opts.Audio.PlayEffect(e)
}

func (r *Round) finish(res session.Result[Attempt]) {
	lang := r.opts.Level.Language

	r.mu.Lock()
	if r.tracker != nil && r.tracker.Typed() > 0 {
		r.points += r.tracker.Score(r.opts.Clock())
	}
	// Only a clean round is celebrated, whatever the last answer was.
	// A timed-out round with a clean sheet counts as clean.
	clean := res.Score > 0 && res.Incorrect == 0
	switch {
	case r.victory && clean:
		r.cheer = audio.VictoryPhrase(r.opts.Rand, lang)
		r.opts.Audio.Speak(r.cheer, lang)
	case r.victory:
		r.cheer = audio.EncouragementPhrase(r.opts.Rand, lang)
		r.opts.Audio.Speak(r.cheer, lang)
	case clean:
		r.cheer = audio.Celebrate(r.opts.Audio, r.opts.Rand, lang)
	default:
		r.cheer = audio.Encourage(r.opts.Audio, r.opts.Rand, lang)
	}
	out := Result{
		Result:     res,
		Level:      r.opts.Level,
		Difficulty: r.opts.Difficulty,
		Points:     r.points,
		Cheer:      r.cheer,
	}
	r.result = &out
	r.mu.Unlock()

	r.logger.Info("round over", "points", out.Points, "score", res.Score, "total", res.Total, "timed_out", res.TimedOut)
	r.emit(EndEvent{Result: out})
}

func (r *Round) emit(ev Event) {
	if r.opts.OnEvent != nil {
		r.opts.OnEvent(ev)
	}
}
