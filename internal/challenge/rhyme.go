package challenge

import (
	"math/rand"
	"slices"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

// RhymeProvider asks which option rhymes with a word. Pairs are picked
// at random among those not yet shown this pass.
type RhymeProvider struct {
	rng   *rand.Rand
	pairs []content.RhymePair
	used  *UsedSet
}

func NewRhyme(rng *rand.Rand, pairs []content.RhymePair, d content.Difficulty) *RhymeProvider {
	pool := content.ByDifficulty(pairs, d)
	return &RhymeProvider{rng: rng, pairs: pool, used: NewUsedSet(rng, len(pool))}
}

func (p *RhymeProvider) Next() (Challenge[string], error) {
	i, err := p.used.Next()
	if err != nil {
		return Challenge[string]{}, err
	}
	pair := p.pairs[i]
	options := slices.Clone(pair.Options)
	if !slices.Contains(options, pair.Rhyme) {
		options = append(options, pair.Rhyme)
	}
	if len(options) < 2 {
		return Challenge[string]{}, unavailable("rhyme options for "+pair.Word, len(options), 2)
	}
	return Challenge[string]{
		Prompt:  "Từ nào cùng vần với",
		Detail:  pair.Word,
		Speak:   pair.Word,
		Lang:    "vi",
		Answer:  pair.Rhyme,
		Options: Shuffle(p.rng, options),
	}, nil
}

func (p *RhymeProvider) IsCorrect(c Challenge[string], answer string) bool {
	return answer == c.Answer
}
