// Package audio provides the sound and speech cues played around a round.
// The session engine never calls it directly; hosts translate engine events
// into effects.
package audio

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"
)

// Effect is a short, non-verbal cue.
type Effect int

const (
	EffectCorrect Effect = iota
	EffectIncorrect
	EffectVictory
	EffectEncouragement
)

func (e Effect) String() string {
	switch e {
	case EffectCorrect:
		return "correct"
	case EffectIncorrect:
		return "incorrect"
	case EffectVictory:
		return "victory"
	case EffectEncouragement:
		return "encouragement"
	default:
		return fmt.Sprintf("effect(%d)", int(e))
	}
}

// Service plays effects and speaks text in a language tag ("vi", "en").
type Service interface {
	PlayEffect(e Effect)
	Speak(text, lang string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) PlayEffect(Effect)    {}
func (Nop) Speak(string, string) {}

var (
	victoryPhrases = map[string][]string{
		"vi": {"Bé giỏi lắm!", "Tuyệt vời!", "Xuất sắc!", "Con làm tốt lắm!", "Giỏi quá đi!"},
		"en": {"Great job!", "Awesome!", "Excellent!", "You're a star!", "Well done!"},
	}
	encouragementPhrases = map[string][]string{
		"vi": {"Không sao, cố gắng lên nào!", "Thử lại nhé!", "Gần đúng rồi, cố lên!", "Mình làm lại nha!"},
		"en": {"It's okay, try again!", "Let's give it another shot!", "You can do it!", "Keep trying!"},
	}
)

// VictoryPhrase picks a celebration line for lang. Unknown tags fall back to Vietnamese.
func VictoryPhrase(rng *rand.Rand, lang string) string {
	return pick(rng, victoryPhrases, lang)
}

// EncouragementPhrase picks a consolation line for lang.
func EncouragementPhrase(rng *rand.Rand, lang string) string {
	return pick(rng, encouragementPhrases, lang)
}

func pick(rng *rand.Rand, table map[string][]string, lang string) string {
	phrases, ok := table[lang]
	if !ok {
		phrases = table["vi"]
	}
	return phrases[rng.Intn(len(phrases))]
}

// Celebrate plays the victory effect and speaks a random victory phrase.
// It returns the phrase so hosts can also print it.
func Celebrate(svc Service, rng *rand.Rand, lang string) string {
	phrase := VictoryPhrase(rng, lang)
	svc.PlayEffect(EffectVictory)
	svc.Speak(phrase, lang)
	return phrase
}

// Encourage plays the encouragement effect and speaks a consolation phrase.
func Encourage(svc Service, rng *rand.Rand, lang string) string {
	phrase := EncouragementPhrase(rng, lang)
	svc.PlayEffect(EffectEncouragement)
	svc.Speak(phrase, lang)
	return phrase
}

// Terminal rings the terminal bell for effects and logs spoken text.
// It has no speech synthesis.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	bell   bool
	logger *log.Logger
}

// NewTerminal returns a Terminal writing bells to w. A nil logger discards speech.
func NewTerminal(w io.Writer, bell bool, logger *log.Logger) *Terminal {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Terminal{w: w, bell: bell, logger: logger}
}

func (t *Terminal) PlayEffect(e Effect) {
	t.logger.Debug("effect", "kind", e)
	if !t.bell {
		return
	}
	// One bell for a correct answer, two for the round finale.
	var rings int
	switch e {
	case EffectCorrect:
		rings = 1
	case EffectVictory:
		rings = 2
	}
	if rings == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < rings; i++ {
		if _, err := io.WriteString(t.w, "\a"); err != nil {
			t.logger.Warn("bell write failed", "error", err)
			return
		}
	}
}

func (t *Terminal) Speak(text, lang string) {
	if text == "" {
		return
	}
	t.logger.Info("speak", "lang", lang, "text", text)
}
