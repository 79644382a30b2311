package challenge

import (
	"fmt"
	"math/rand"
)

const (
	clickTargets   = 5
	clickMaxNumber = 30

	// GridCells is the size of the reaction-game board (a 3x3 keypad).
	GridCells = 9
)

// ClickTargetProvider asks for the animal carrying a given number. Each
// challenge shows five distinct numbers on five distinct animals.
type ClickTargetProvider struct {
	rng *rand.Rand
}

func NewClickTarget(rng *rand.Rand) *ClickTargetProvider {
	return &ClickTargetProvider{rng: rng}
}

func (p *ClickTargetProvider) Next() (Challenge[int], error) {
	animals := Shuffle(p.rng, targetEmojis)[:clickTargets]
	numbers := p.rng.Perm(clickMaxNumber)[:clickTargets]
	for i := range numbers {
		numbers[i]++
	}
	want := numbers[p.rng.Intn(clickTargets)]
	return Challenge[int]{
		Prompt:  fmt.Sprintf("Chọn con vật có số %d", want),
		Answer:  want,
		Options: numbers,
		Labels:  animals,
	}, nil
}

func (p *ClickTargetProvider) IsCorrect(c Challenge[int], answer int) bool {
	return answer == c.Answer
}

// ClickBasicProvider places a random emoji on a random cell of the
// reaction board; the answer is the cell number (1-9).
type ClickBasicProvider struct {
	rng  *rand.Rand
	last int
}

func NewClickBasic(rng *rand.Rand) *ClickBasicProvider {
	return &ClickBasicProvider{rng: rng}
}

func (p *ClickBasicProvider) Next() (Challenge[int], error) {
	// Move the target every time so a held key never scores twice.
	cell := 1 + p.rng.Intn(GridCells)
	if cell == p.last {
		cell = cell%GridCells + 1
	}
	p.last = cell
	return Challenge[int]{
		Prompt: "Nhấn phím ô có hình",
		Image:  clickEmojis[p.rng.Intn(len(clickEmojis))],
		Answer: cell,
	}, nil
}

func (p *ClickBasicProvider) IsCorrect(c Challenge[int], answer int) bool {
	return answer == c.Answer
}
