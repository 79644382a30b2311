// Package challenge produces the questions a mini-game asks and decides
// whether a submitted answer matches. Providers draw from difficulty
// filtered content pools without repeating an item until the pool is
// used up, and all randomness comes from an injected *rand.Rand.
package challenge

import (
	"errors"
	"fmt"
)

var (
	// ErrContentUnavailable means the pool is too small to build a
	// challenge. Providers return it instead of a malformed challenge.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrGenerationStarvation means a bounded retry loop could not
	// satisfy its constraints.
	ErrGenerationStarvation = errors.New("generation starvation")
)

func unavailable(what string, have, need int) error {
	return fmt.Errorf("%w: %s has %d records, need %d", ErrContentUnavailable, what, have, need)
}

// Challenge is one question. It is immutable once issued.
type Challenge[A any] struct {
	// Prompt is the main question line.
	Prompt string

	// Detail is supporting text: a gapped sentence, a rule description,
	// or a row of objects to count.
	Detail string

	// Image is an emoji illustrating the question, if any.
	Image string

	// Speak is read aloud in Lang when the question is shown.
	Speak string
	Lang  string

	Answer A

	// Accept lists alternative answers that also count as correct.
	Accept []A

	// Options holds the candidates for multiple-choice questions, in
	// display order. Labels, when set, decorates each option.
	Options []A
	Labels  []string
}

// Multichoice reports whether the challenge is answered by picking an option.
func (c Challenge[A]) Multichoice() bool {
	return len(c.Options) > 0
}

// Provider issues challenges from its own pool state.
type Provider[A any] interface {
	Next() (Challenge[A], error)
	IsCorrect(c Challenge[A], answer A) bool
}
