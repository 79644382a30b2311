package minigame

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevuihoc/bevuihoc/internal/audio"
	"github.com/bevuihoc/bevuihoc/internal/challenge"
	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/logging"
	"github.com/bevuihoc/bevuihoc/internal/session"
	"github.com/bevuihoc/bevuihoc/internal/store"
)

// countingSource asks "q1", "q2", ... whose answers are "1", "2", ...
type countingSource struct {
	n    int
	size int
	err  error
}

func (s *countingSource) Size() int { return s.size }

func (s *countingSource) Next() (Card, error) {
	if s.err != nil {
		return Card{}, s.err
	}
	s.n++
	want := strconv.Itoa(s.n)
	return Card{
		Mode:     ModeText,
		Prompt:   "q" + want,
		Speak:    "q" + want,
		Lang:     "vi",
		Expected: want,
		judge: func(in string) (string, bool) {
			given := strings.TrimSpace(in)
			return given, given == want
		},
	}, nil
}

type recorder struct {
	mu      sync.Mutex
	effects []audio.Effect
	spoken  []string
	events  []Event
}

func (r *recorder) PlayEffect(e audio.Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, e)
}

func (r *recorder) Speak(text, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spoken = append(r.spoken, text)
}

func (r *recorder) onEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) ends() []EndEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []EndEvent
	for _, ev := range r.events {
		if e, ok := ev.(EndEvent); ok {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) has(e audio.Effect) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, got := range r.effects {
		if got == e {
			return true
		}
	}
	return false
}

func testLevel() levels.Level {
	return levels.Level{
		Kind:         "test",
		Subject:      levels.SubjectMath,
		Language:     "vi",
		Difficulties: []content.Difficulty{content.DifficultyEasy},
		Questions:    3,
		TimeLimits:   map[content.Difficulty]time.Duration{content.DifficultyEasy: 30 * time.Second},
	}
}

type harness struct {
	round *Round
	sched *session.ManualScheduler
	rec   *recorder
	src   *countingSource
}

func newHarness(t *testing.T, lvl levels.Level, src *countingSource) *harness {
	t.Helper()
	h := &harness{sched: session.NewManualScheduler(), rec: &recorder{}, src: src}
	r, err := NewRound(Options{
		Level:         lvl,
		Difficulty:    content.DifficultyEasy,
		Source:        src,
		FeedbackDelay: time.Second,
		Audio:         h.rec,
		Logger:        logging.Discard(),
		Rand:          rand.New(rand.NewSource(1)),
		Scheduler:     h.sched,
		OnEvent:       h.rec.onEvent,
	})
	require.NoError(t, err)
	h.round = r
	t.Cleanup(r.Start())
	return h
}

func TestRound_AllCorrect(t *testing.T) {
	h := newHarness(t, testLevel(), &countingSource{})

	for i := 1; i <= 3; i++ {
		card, err := h.round.Card()
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("q%d", i), card.Prompt)

		v := h.round.Submit(card.Expected)
		assert.True(t, v.Accepted)
		assert.True(t, v.Correct)

		again := h.round.Submit(card.Expected)
		assert.False(t, again.Accepted, "second answer while feedback is showing")

		h.sched.Advance(time.Second)
	}

	ends := h.rec.ends()
	require.Len(t, ends, 1)
	res := ends[0].Result
	assert.Equal(t, 3*PointsPerCorrect, res.Points)
	assert.True(t, res.Perfect())
	assert.NotEmpty(t, res.Cheer)
	assert.True(t, h.rec.has(audio.EffectVictory))
	assert.Contains(t, h.rec.spoken, "q1")

	got, ok := h.round.Result()
	require.True(t, ok)
	assert.Equal(t, res.Points, got.Points)
}

func TestRound_WrongAnswersAreReviewed(t *testing.T) {
	h := newHarness(t, testLevel(), &countingSource{})

	v := h.round.Submit("nope")
	assert.True(t, v.Accepted)
	assert.False(t, v.Correct)
	assert.Equal(t, "1", v.Expected)
	assert.True(t, h.rec.has(audio.EffectIncorrect))

	h.sched.Advance(time.Second)
	h.round.Submit("2")
	h.sched.Advance(time.Second)
	h.round.Submit("x")
	h.sched.Advance(time.Second)

	res, ok := h.round.Result()
	require.True(t, ok)
	assert.Equal(t, PointsPerCorrect, res.Points)
	assert.False(t, res.Perfect())
	assert.Equal(t, []Attempt{
		{Prompt: "q1", Expected: "1", Given: "nope"},
		{Prompt: "q3", Expected: "3", Given: "x"},
	}, res.Mistakes())

	assert.True(t, h.round.Review(true))
	assert.True(t, h.round.Snapshot().Reviewing)
	assert.True(t, h.round.Review(false))
}

func TestRound_LateCorrectAnswerAfterMistakeEncourages(t *testing.T) {
	h := newHarness(t, testLevel(), &countingSource{})

	h.round.Submit("wrong")
	h.sched.Advance(time.Second)
	h.round.Submit("2")
	h.sched.Advance(time.Second)
	h.round.Submit("3")
	h.sched.Advance(time.Second)

	ends := h.rec.ends()
	require.Len(t, ends, 1)
	res := ends[0].Result
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 1, res.Incorrect)

	// The last answer was right, so the victory cue plays, but the phrase
	// is a consolation one. The round's rand is only used for the phrase.
	want := audio.EncouragementPhrase(rand.New(rand.NewSource(1)), "vi")
	assert.Equal(t, want, res.Cheer)
	assert.Contains(t, h.rec.spoken, want)
	assert.True(t, h.rec.has(audio.EffectVictory))
	assert.False(t, h.rec.has(audio.EffectEncouragement))
}

func TestRound_CleanRoundCelebrates(t *testing.T) {
	h := newHarness(t, testLevel(), &countingSource{})
	for i := 1; i <= 3; i++ {
		h.round.Submit(strconv.Itoa(i))
		h.sched.Advance(time.Second)
	}

	res, ok := h.round.Result()
	require.True(t, ok)
	assert.Equal(t, audio.VictoryPhrase(rand.New(rand.NewSource(1)), "vi"), res.Cheer)
}

func TestRound_RetryOnMissKeepsQuestion(t *testing.T) {
	lvl := testLevel()
	lvl.RetryOnMiss = true
	h := newHarness(t, lvl, &countingSource{})

	v := h.round.Submit("wrong")
	assert.True(t, v.Accepted)
	assert.True(t, v.Retry)
	assert.True(t, h.rec.has(audio.EffectIncorrect))

	card, err := h.round.Card()
	require.NoError(t, err)
	assert.Equal(t, "q1", card.Prompt)
	assert.Empty(t, h.round.Snapshot().IncorrectAttempts)
	assert.False(t, h.round.Snapshot().FeedbackPending)
}

func TestRound_InstantAdvancesImmediately(t *testing.T) {
	lvl := testLevel()
	lvl.Instant = true
	h := newHarness(t, lvl, &countingSource{})

	h.round.Submit("1")
	card, err := h.round.Card()
	require.NoError(t, err)
	assert.Equal(t, "q2", card.Prompt)
	assert.Equal(t, 1, h.round.Snapshot().QuestionIndex)
}

func TestRound_LevelFeedbackDelayOverridesDefault(t *testing.T) {
	lvl := testLevel()
	lvl.FeedbackDelay = 500 * time.Millisecond
	h := newHarness(t, lvl, &countingSource{})

	h.round.Submit("1")
	h.sched.Advance(500 * time.Millisecond)
	card, _ := h.round.Card()
	assert.Equal(t, "q2", card.Prompt)
}

func TestRound_BlankInputIgnored(t *testing.T) {
	h := newHarness(t, testLevel(), &countingSource{})
	assert.False(t, h.round.Submit("   ").Accepted)
	assert.Zero(t, h.round.Snapshot().Score)
	assert.Empty(t, h.round.Snapshot().IncorrectAttempts)
}

func TestRound_NumberPastLastOptionIgnored(t *testing.T) {
	lvl, ok := levels.Lookup(levels.KindMath)
	require.True(t, ok)
	rng := rand.New(rand.NewSource(7))
	src, err := NewSource(context.Background(), lvl.Kind, content.DifficultyEasy, nil, rng)
	require.NoError(t, err)
	rec := &recorder{}
	r, err := NewRound(Options{
		Level:      lvl,
		Difficulty: content.DifficultyEasy,
		Source:     src,
		Audio:      rec,
		Rand:       rng,
		Scheduler:  session.NewManualScheduler(),
		OnEvent:    rec.onEvent,
	})
	require.NoError(t, err)
	t.Cleanup(r.Start())

	card, err := r.Card()
	require.NoError(t, err)
	require.Equal(t, ModeChoice, card.Mode)
	absent := len(card.Options) + 1
	for containsValue(card.Options, strconv.Itoa(absent)) {
		absent++
	}

	v := r.Submit(strconv.Itoa(absent))
	assert.False(t, v.Accepted)
	assert.Empty(t, r.Snapshot().IncorrectAttempts)
	assert.False(t, rec.has(audio.EffectIncorrect))

	v = r.Submit(rightAnswer(t, card))
	assert.True(t, v.Accepted)
	assert.True(t, v.Correct)
}

func TestRound_NoCardNoSubmission(t *testing.T) {
	src := &countingSource{err: fmt.Errorf("%w: empty", challenge.ErrContentUnavailable)}
	h := newHarness(t, testLevel(), src)

	_, err := h.round.Card()
	assert.ErrorIs(t, err, challenge.ErrContentUnavailable)
	assert.False(t, h.round.Submit("1").Accepted)

	var sawErr bool
	for _, ev := range h.rec.events {
		if ce, ok := ev.(CardEvent); ok && ce.Err != nil {
			sawErr = true
		}
	}
	assert.True(t, sawErr)
	assert.Equal(t, session.PhasePlaying, h.round.Snapshot().Phase)
}

func TestRound_TimeoutEncourages(t *testing.T) {
	h := newHarness(t, testLevel(), &countingSource{})
	h.sched.Advance(30 * time.Second)

	ends := h.rec.ends()
	require.Len(t, ends, 1)
	assert.True(t, ends[0].Result.TimedOut)
	assert.Zero(t, ends[0].Result.Points)
	assert.True(t, h.rec.has(audio.EffectEncouragement))
	assert.False(t, h.rec.has(audio.EffectVictory))
}

func TestRound_UntimedHidesClock(t *testing.T) {
	lvl := testLevel()
	lvl.TimeLimits = nil
	h := newHarness(t, lvl, &countingSource{})
	assert.Nil(t, h.round.Status().TimeRemaining)

	timed := newHarness(t, testLevel(), &countingSource{})
	require.NotNil(t, timed.round.Status().TimeRemaining)
	assert.Equal(t, 30, *timed.round.Status().TimeRemaining)
}

func TestRound_QuestionsFromSourceSize(t *testing.T) {
	lvl := testLevel()
	lvl.Questions = 0
	h := newHarness(t, lvl, &countingSource{size: 7})
	assert.Equal(t, 7, h.round.Status().TotalQuestions)

	_, err := NewRound(Options{Level: lvl, Difficulty: content.DifficultyEasy, Source: &countingSource{}})
	assert.True(t, errors.Is(err, challenge.ErrContentUnavailable))
}

func TestRound_Restart(t *testing.T) {
	h := newHarness(t, testLevel(), &countingSource{})
	h.round.Submit("1")
	h.sched.Advance(time.Second)
	require.Equal(t, PointsPerCorrect, h.round.Points())

	t.Cleanup(h.round.Restart())
	assert.Zero(t, h.round.Points())
	assert.Zero(t, h.round.Snapshot().QuestionIndex)
	_, ok := h.round.Result()
	assert.False(t, ok)
}

func TestNewRound_RejectsUnsupportedDifficulty(t *testing.T) {
	_, err := NewRound(Options{Level: testLevel(), Difficulty: content.DifficultyHard, Source: &countingSource{}})
	assert.Error(t, err)
}

func TestRound_TypingPassage(t *testing.T) {
	lvl, ok := levels.Lookup(levels.KindTypingBasic)
	require.True(t, ok)
	rng := rand.New(rand.NewSource(5))
	src, err := NewSource(context.Background(), lvl.Kind, content.DifficultyEasy, nil, rng)
	require.NoError(t, err)

	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	now := start
	rec := &recorder{}
	r, err := NewRound(Options{
		Level:      lvl,
		Difficulty: content.DifficultyEasy,
		Source:     src,
		Audio:      rec,
		Rand:       rng,
		Scheduler:  session.NewManualScheduler(),
		Clock:      func() time.Time { return now },
		OnEvent:    rec.onEvent,
	})
	require.NoError(t, err)
	t.Cleanup(r.Start())

	card, err := r.Card()
	require.NoError(t, err)
	assert.Equal(t, ModeKeys, card.Mode)

	assert.False(t, r.Key('x'))
	now = start.Add(time.Minute)
	for _, ch := range card.Expected {
		require.True(t, r.Key(ch))
	}

	res, ok := r.Result()
	require.True(t, ok)
	tr := r.Tracker()
	require.NotNil(t, tr)
	assert.Equal(t, 1, tr.Errors())
	assert.Equal(t, PointsPerCorrect+tr.Score(now), res.Points)
	assert.Equal(t, len([]rune(card.Expected)), tr.CPM(now))

	st := r.Status()
	require.NotNil(t, st.CPM)
	require.NotNil(t, st.Accuracy)
	assert.Nil(t, st.TimeRemaining)
}

func TestSaveBest(t *testing.T) {
	st := store.OpenJSON(filepath.Join(t.TempDir(), "scores.json"), logging.Discard())
	ctx := context.Background()
	res := Result{Level: testLevel(), Points: 40}

	improved, err := SaveBest(ctx, st, res)
	require.NoError(t, err)
	assert.True(t, improved)

	res.Points = 30
	improved, err = SaveBest(ctx, st, res)
	require.NoError(t, err)
	assert.False(t, improved)

	best, _ := st.Best(ctx, string(levels.SubjectMath))
	assert.Equal(t, 40, best)
}
