// Package minigame runs one round of a level: it draws challenges from a
// Source, feeds decisions into the session engine and keeps the app-level
// point total that is compared against the stored best score.
package minigame

import (
	"fmt"
	"strings"
)

// Mode tells the host which input widget a card needs.
type Mode int

const (
	ModeText   Mode = iota // free-text answer
	ModeChoice             // pick one option
	ModeOrder              // pick every option once, in order
	ModeGrid               // press the key of the highlighted cell
	ModeKeys               // type a passage key by key
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeChoice:
		return "choice"
	case ModeOrder:
		return "order"
	case ModeGrid:
		return "grid"
	case ModeKeys:
		return "keys"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Option is one selectable answer.
type Option struct {
	// Value is what gets judged.
	Value string

	// Text is shown to the player and in the review list.
	Text string

	// Swatch is a hex color painted in place of Text.
	Swatch string
}

// Card is a challenge prepared for display. Cards are immutable.
type Card struct {
	Mode   Mode
	Prompt string
	Detail string
	Image  string
	Speak  string
	Lang   string

	Options []Option

	// Expected is the correct answer as shown in the review.
	Expected string

	// Cell is the highlighted grid cell for ModeGrid, 1-based.
	Cell int

	judge func(input string) (given string, correct bool)
	// accepts filters input that names nothing on the card.
	accepts func(input string) bool
}

// Accepts reports whether input is worth judging at all. A number past
// the last option is ignored rather than counted as a mistake.
func (c Card) Accepts(input string) bool {
	return c.accepts == nil || c.accepts(input)
}

// Judge decides input. given is the answer as it should appear in the
// review list. A card without a judge rejects everything.
func (c Card) Judge(input string) (given string, correct bool) {
	if c.judge == nil {
		return strings.TrimSpace(input), false
	}
	return c.judge(input)
}

// Texts returns the display text of every option.
func (c Card) Texts() []string {
	out := make([]string, len(c.Options))
	for i, o := range c.Options {
		out[i] = o.Text
	}
	return out
}

// Attempt is a wrong answer kept for the review screen.
type Attempt struct {
	Prompt   string
	Expected string
	Given    string
}

func attemptFor(c Card, given string) Attempt {
	prompt := c.Prompt
	if c.Detail != "" {
		prompt += " " + c.Detail
	}
	return Attempt{Prompt: prompt, Expected: c.Expected, Given: given}
}
