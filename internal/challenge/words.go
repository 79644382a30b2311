package challenge

import (
	"math/rand"
	"strings"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

// imageMatchDecoys is how many wrong words accompany the right one.
const imageMatchDecoys = 2

// TextProvider asks free-text questions built from a deck of records.
// Answers match case-insensitively after trimming.
type TextProvider[R any] struct {
	deck  *Deck[R]
	build func(R) Challenge[string]
}

func newTextProvider[R any](rng *rand.Rand, pool []R, build func(R) Challenge[string]) *TextProvider[R] {
	return &TextProvider[R]{deck: NewDeck(rng, pool), build: build}
}

func (p *TextProvider[R]) Next() (Challenge[string], error) {
	rec, err := p.deck.Draw()
	if err != nil {
		return Challenge[string]{}, err
	}
	return p.build(rec), nil
}

func (p *TextProvider[R]) IsCorrect(c Challenge[string], answer string) bool {
	return MatchText(answer, c.Answer, c.Accept...)
}

// Pool returns the difficulty-filtered records the deck draws from.
func (p *TextProvider[R]) Pool() []R { return p.deck.Items() }

// NewEnglishFill asks for the letters missing from a word.
func NewEnglishFill(rng *rand.Rand, words []content.EnglishWord, d content.Difficulty) *TextProvider[content.EnglishWord] {
	return newTextProvider(rng, content.ByDifficulty(words, d), func(w content.EnglishWord) Challenge[string] {
		return Challenge[string]{
			Prompt: "Fill in the missing letters",
			Detail: w.Sentence,
			Image:  w.Image,
			Answer: w.Missing,
		}
	})
}

// NewVietnameseFill asks for the missing rhyme of a word. Both the
// accented rhyme and its unaccented Telex spelling are accepted.
func NewVietnameseFill(rng *rand.Rand, words []content.VietnameseWord, d content.Difficulty) *TextProvider[content.VietnameseWord] {
	return newTextProvider(rng, content.ByDifficulty(words, d), func(w content.VietnameseWord) Challenge[string] {
		return Challenge[string]{
			Prompt: "Điền vần còn thiếu",
			Detail: w.Sentence,
			Image:  w.Image,
			Speak:  w.Answer,
			Lang:   "vi",
			Answer: w.Missing,
			Accept: []string{w.ToType},
		}
	})
}

// NewListenType reads a word aloud and asks for its spelling.
func NewListenType(rng *rand.Rand, words []content.EnglishWord, d content.Difficulty) *TextProvider[content.EnglishWord] {
	return newTextProvider(rng, content.ByDifficulty(words, d), func(w content.EnglishWord) Challenge[string] {
		return Challenge[string]{
			Prompt: "Listen and type the word",
			Image:  w.Image,
			Speak:  w.Word,
			Lang:   "en",
			Answer: w.Word,
		}
	})
}

// NewListenFillSentence reads a full sentence aloud and asks for the
// word missing from its written form.
func NewListenFillSentence(rng *rand.Rand, sentences []content.EnglishSentence, d content.Difficulty) *TextProvider[content.EnglishSentence] {
	return newTextProvider(rng, content.ByDifficulty(sentences, d), func(s content.EnglishSentence) Challenge[string] {
		return Challenge[string]{
			Prompt: "Listen and fill in the missing word",
			Detail: s.Sentence,
			Image:  s.Image,
			Speak:  strings.Replace(s.Sentence, "__", s.Missing, 1),
			Lang:   "en",
			Answer: s.Missing,
		}
	})
}

// ImageMatchProvider shows a picture and three words, one of which names it.
type ImageMatchProvider struct {
	rng  *rand.Rand
	deck *Deck[content.EnglishWord]
}

func NewImageMatch(rng *rand.Rand, words []content.EnglishWord, d content.Difficulty) *ImageMatchProvider {
	return &ImageMatchProvider{rng: rng, deck: NewDeck(rng, content.ByDifficulty(words, d))}
}

func (p *ImageMatchProvider) Next() (Challenge[string], error) {
	if n := p.deck.Len(); n < imageMatchDecoys+1 {
		return Challenge[string]{}, unavailable("english words", n, imageMatchDecoys+1)
	}
	w, err := p.deck.Draw()
	if err != nil {
		return Challenge[string]{}, err
	}
	decoys, err := PickDistinct(p.rng, p.deck.Items(), imageMatchDecoys, w.Word, func(e content.EnglishWord) string { return e.Word })
	if err != nil {
		return Challenge[string]{}, err
	}
	options := []string{w.Word}
	for _, d := range decoys {
		options = append(options, d.Word)
	}
	return Challenge[string]{
		Prompt:  "Which word matches the picture?",
		Image:   w.Image,
		Speak:   w.Word,
		Lang:    "en",
		Answer:  w.Word,
		Options: Shuffle(p.rng, options),
	}, nil
}

func (p *ImageMatchProvider) IsCorrect(c Challenge[string], answer string) bool {
	return answer == c.Answer
}
