package challenge

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

// ScrambleProvider shuffles the words of a sentence; the player puts
// them back in order. Options holds the words in scrambled order and
// Answer the source sentence.
type ScrambleProvider struct {
	rng  *rand.Rand
	deck *Deck[content.ScrambleSentence]
}

func NewScramble(rng *rand.Rand, sentences []content.ScrambleSentence, d content.Difficulty) *ScrambleProvider {
	return &ScrambleProvider{rng: rng, deck: NewDeck(rng, content.ByDifficulty(sentences, d))}
}

func (p *ScrambleProvider) Next() (Challenge[string], error) {
	s, err := p.deck.Draw()
	if err != nil {
		return Challenge[string]{}, err
	}
	words := s.Words()
	scrambled, err := Scramble(p.rng, words)
	if err != nil {
		return Challenge[string]{}, fmt.Errorf("scramble %q: %w", s.Sentence, err)
	}
	return Challenge[string]{
		Prompt:  "Sắp xếp các từ thành câu đúng",
		Speak:   s.Sentence,
		Lang:    "vi",
		Answer:  strings.Join(words, " "),
		Options: scrambled,
	}, nil
}

// IsCorrect compares the assembled sentence ignoring case and spacing.
func (p *ScrambleProvider) IsCorrect(c Challenge[string], answer string) bool {
	return MatchText(answer, c.Answer)
}

// AssemblePicks turns a list of 1-based option positions such as "2 1 3"
// into the sentence they spell. Every word must be used exactly once.
func AssemblePicks(picks string, words []string) (string, error) {
	fields := strings.Fields(strings.ReplaceAll(picks, ",", " "))
	if len(fields) != len(words) {
		return "", fmt.Errorf("picked %d words, need %d", len(fields), len(words))
	}
	used := make([]bool, len(words))
	out := make([]string, 0, len(words))
	for _, f := range fields {
		n, ok := ParseNumber(f)
		if !ok || n < 1 || n > len(words) {
			return "", fmt.Errorf("invalid pick %q", f)
		}
		if used[n-1] {
			return "", fmt.Errorf("word %d picked twice", n)
		}
		used[n-1] = true
		out = append(out, words[n-1])
	}
	return strings.Join(out, " "), nil
}
