package challenge

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

const (
	homeRow       = "asdfjkl;"
	typingWords   = 10
	typingMinWord = 3
	typingMaxWord = 5
)

// TypingText returns ten home-row "words" of three to five keys.
func TypingText(rng *rand.Rand) string {
	words := make([]string, typingWords)
	for i := range words {
		n := typingMinWord + rng.Intn(typingMaxWord-typingMinWord+1)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteByte(homeRow[rng.Intn(len(homeRow))])
		}
		words[i] = b.String()
	}
	return strings.Join(words, " ")
}

// TypingProvider hands out home-row passages. The whole passage is one
// question.
type TypingProvider struct {
	rng *rand.Rand
}

func NewTyping(rng *rand.Rand) *TypingProvider {
	return &TypingProvider{rng: rng}
}

func (p *TypingProvider) Next() (Challenge[string], error) {
	text := TypingText(p.rng)
	return Challenge[string]{
		Prompt: "Gõ đoạn chữ sau",
		Detail: text,
		Answer: text,
	}, nil
}

func (p *TypingProvider) IsCorrect(c Challenge[string], answer string) bool {
	return answer == c.Answer
}

// Tracker follows keystrokes against a passage. A wrong key counts as an
// error and does not move the cursor.
type Tracker struct {
	text   []rune
	pos    int
	typed  int
	errors int
	start  time.Time
	end    time.Time
}

func NewTracker(text string) *Tracker {
	return &Tracker{text: []rune(text)}
}

// Type records one keystroke at time now and reports whether it matched.
// Keystrokes after the passage is complete are ignored.
func (t *Tracker) Type(r rune, now time.Time) bool {
	if t.Done() {
		return false
	}
	if t.start.IsZero() {
		t.start = now
	}
	t.typed++
	if r != t.text[t.pos] {
		t.errors++
		return false
	}
	t.pos++
	if t.Done() {
		t.end = now
	}
	return true
}

func (t *Tracker) Done() bool { return t.pos >= len(t.text) }

// Pos is the number of correctly typed characters.
func (t *Tracker) Pos() int { return t.pos }

func (t *Tracker) Text() string { return string(t.text) }

func (t *Tracker) Typed() int { return t.typed }

func (t *Tracker) Errors() int { return t.errors }

// CPM is correct characters per minute since the first keystroke,
// measured to the last keystroke once the passage is complete.
func (t *Tracker) CPM(now time.Time) int {
	if t.start.IsZero() {
		return 0
	}
	if !t.end.IsZero() {
		now = t.end
	}
	elapsed := now.Sub(t.start).Minutes()
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(float64(t.pos) / elapsed))
}

// Accuracy is the percentage of keystrokes that matched; 100 before any.
func (t *Tracker) Accuracy() int {
	if t.typed == 0 {
		return 100
	}
	return int(math.Round(float64(t.typed-t.errors) / float64(t.typed) * 100))
}

// Score rewards both speed and accuracy.
func (t *Tracker) Score(now time.Time) int {
	return t.CPM(now) + t.Accuracy()
}

// VowelProvider walks the Telex rules in order, wrapping around.
type VowelProvider struct {
	rules []content.VowelRule
	next  int
}

func NewVowels(rules []content.VowelRule) *VowelProvider {
	return &VowelProvider{rules: rules}
}

func (p *VowelProvider) Next() (Challenge[string], error) {
	if len(p.rules) == 0 {
		return Challenge[string]{}, unavailable("vowel rules", 0, 1)
	}
	r := p.rules[p.next%len(p.rules)]
	p.next++
	return Challenge[string]{
		Prompt: "Gõ chữ",
		Detail: r.Description,
		Image:  r.Result,
		Answer: r.Result,
		Accept: []string{r.Guide},
	}, nil
}

// IsCorrect accepts input ending in the composed letter or, on
// keyboards without a Telex input method, in the raw key sequence.
func (p *VowelProvider) IsCorrect(c Challenge[string], answer string) bool {
	return MatchSuffix(answer, append([]string{c.Answer}, c.Accept...)...)
}

// Len is the number of rules, i.e. the questions in one pass.
func (p *VowelProvider) Len() int { return len(p.rules) }
