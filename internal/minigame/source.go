package minigame

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/bevuihoc/bevuihoc/internal/challenge"
	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
)

// Source issues cards for a round.
type Source interface {
	// Next returns the next card. It wraps challenge.ErrContentUnavailable
	// when the pool cannot supply one.
	Next() (Card, error)

	// Size is the number of distinct records in one pass, or 0 when the
	// source is generated and unbounded.
	Size() int
}

// adapter turns a typed provider into a Source.
type adapter[A any] struct {
	provider challenge.Provider[A]
	mode     Mode
	format   func(A) string
	parse    func(string) (A, bool)
	size     int

	// caption builds an option's text from its value and label.
	caption func(value, label string) string
	swatch  func(A) string
}

var _ Source = (*adapter[int])(nil)

func (a *adapter[A]) Size() int { return a.size }

func (a *adapter[A]) Next() (Card, error) {
	c, err := a.provider.Next()
	if err != nil {
		return Card{}, err
	}
	card := Card{
		Mode:     a.mode,
		Prompt:   c.Prompt,
		Detail:   c.Detail,
		Image:    c.Image,
		Speak:    c.Speak,
		Lang:     c.Lang,
		Expected: a.format(c.Answer),
	}
	caption := a.caption
	if caption == nil {
		caption = labelOrValue
	}
	for i, o := range c.Options {
		var label string
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		opt := Option{Value: a.format(o)}
		opt.Text = caption(opt.Value, label)
		if a.swatch != nil {
			opt.Swatch = a.swatch(o)
		}
		if opt.Value == card.Expected && a.mode == ModeChoice {
			card.Expected = opt.Text
		}
		card.Options = append(card.Options, opt)
	}
	if a.mode == ModeGrid {
		card.Cell = gridCell(c.Answer)
	}

	if a.mode == ModeChoice {
		card.accepts = func(input string) bool {
			_, err := resolveChoice(input, card.Options)
			return !errors.Is(err, errNoSuchPosition)
		}
	}
	card.judge = func(input string) (string, bool) {
		switch a.mode {
		case ModeChoice:
			i, err := resolveChoice(input, card.Options)
			if err != nil {
				return strings.TrimSpace(input), false
			}
			return card.Options[i].Text, a.provider.IsCorrect(c, c.Options[i])
		case ModeOrder:
			words := make([]string, len(card.Options))
			for i, o := range card.Options {
				words[i] = o.Value
			}
			if sentence, err := challenge.AssemblePicks(input, words); err == nil {
				input = sentence
			}
		}
		given := strings.TrimSpace(input)
		ans, ok := a.parse(given)
		if !ok {
			return given, false
		}
		return given, a.provider.IsCorrect(c, ans)
	}
	return card, nil
}

var errNoSuchPosition = errors.New("no option at that position")

// resolveChoice accepts a 1-based position, an option value or its text.
// A number that is neither a position nor a value yields
// errNoSuchPosition.
func resolveChoice(input string, options []Option) (int, error) {
	values := make([]string, len(options))
	for i, o := range options {
		values[i] = o.Value
	}
	i, err := challenge.ParseChoice(input, values)
	if err == nil {
		return i, nil
	}
	want := challenge.NormalizeText(input)
	for j, o := range options {
		if challenge.NormalizeText(o.Value) == want || challenge.NormalizeText(o.Text) == want {
			return j, nil
		}
	}
	if _, nerr := strconv.Atoi(strings.TrimSpace(input)); nerr == nil {
		return 0, fmt.Errorf("%w: %v", errNoSuchPosition, err)
	}
	return 0, err
}

func gridCell(answer any) int {
	if n, ok := answer.(int); ok {
		return n
	}
	return 0
}

func labelOrValue(value, label string) string {
	if label != "" {
		return label
	}
	return value
}

func textOf(s string) string { return s }

func parseText(s string) (string, bool) { return s, true }

func numbered(a challenge.Provider[int], mode Mode) *adapter[int] {
	return &adapter[int]{provider: a, mode: mode, format: strconv.Itoa, parse: challenge.ParseNumber}
}

func texted(p challenge.Provider[string], mode Mode) *adapter[string] {
	return &adapter[string]{provider: p, mode: mode, format: textOf, parse: parseText}
}

// NewSource builds the card source for a level. Content is loaded through
// loader; pools that come back empty surface as ErrContentUnavailable on
// the first Next.
func NewSource(ctx context.Context, kind levels.Kind, d content.Difficulty, loader *content.Loader, rng *rand.Rand) (Source, error) {
	switch kind {
	case levels.KindClickBasic:
		return numbered(challenge.NewClickBasic(rng), ModeGrid), nil
	case levels.KindClickTarget:
		a := numbered(challenge.NewClickTarget(rng), ModeChoice)
		a.caption = func(value, label string) string { return label + " " + value }
		return a, nil
	case levels.KindMath:
		return numbered(challenge.NewMath(rng, d), ModeChoice), nil
	case levels.KindPreschoolCounting:
		return numbered(challenge.NewCounting(rng), ModeChoice), nil

	case levels.KindVietnameseFill:
		p := challenge.NewVietnameseFill(rng, loader.VietnameseWords(ctx), d)
		return sized(texted(p, ModeText), len(p.Pool())), nil
	case levels.KindVietnameseScramble:
		return texted(challenge.NewScramble(rng, loader.ScrambleSentences(ctx), d), ModeOrder), nil
	case levels.KindVietnameseRhyme:
		return texted(challenge.NewRhyme(rng, loader.RhymePairs(ctx), d), ModeChoice), nil
	case levels.KindEnglishFill:
		p := challenge.NewEnglishFill(rng, loader.EnglishWords(ctx), d)
		return sized(texted(p, ModeText), len(p.Pool())), nil
	case levels.KindEnglishListenType:
		p := challenge.NewListenType(rng, loader.EnglishWords(ctx), d)
		return sized(texted(p, ModeText), len(p.Pool())), nil
	case levels.KindEnglishListenFill:
		p := challenge.NewListenFillSentence(rng, loader.EnglishSentences(ctx), d)
		return sized(texted(p, ModeText), len(p.Pool())), nil
	case levels.KindEnglishImageMatch:
		return texted(challenge.NewImageMatch(rng, loader.EnglishWords(ctx), d), ModeChoice), nil
	case levels.KindTypingBasic:
		return texted(challenge.NewTyping(rng), ModeKeys), nil
	case levels.KindTypingVowels:
		p := challenge.NewVowels(loader.VowelRules(ctx))
		return sized(texted(p, ModeText), p.Len()), nil

	case levels.KindPreschoolColors, levels.KindPreschoolAnimals, levels.KindPreschoolObjects, levels.KindPreschoolShapes:
		cat, _ := levels.PreschoolCategory(kind)
		p := challenge.NewPreschool(rng, loader.Preschool(ctx, cat))
		a := texted(p, ModeChoice)
		a.swatch = func(id string) string {
			it, _ := p.Item(id)
			return it.Hex
		}
		// Colors are painted, so their text is only seen in the review.
		a.caption = func(id, label string) string {
			if it, ok := p.Item(id); ok && it.Hex != "" {
				return it.Name
			}
			return label
		}
		return a, nil
	}
	return nil, fmt.Errorf("no source for level %q", kind)
}

func sized[A any](a *adapter[A], n int) *adapter[A] {
	a.size = n
	return a
}
