package challenge

import (
	"fmt"
	"math/rand"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

// Bounds for every operand and answer.
const (
	MathMin = 0
	MathMax = 20
)

const (
	mathAttempts = 10
	mathDecoys   = 3
)

// Op is an arithmetic operator.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
)

// MathProblem is a single addition or subtraction.
type MathProblem struct {
	A, B   int
	Op     Op
	Answer int
}

func (p MathProblem) String() string {
	return fmt.Sprintf("%d %s %d", p.A, p.Op, p.B)
}

// Regroups reports whether the ones column carries (addition) or
// borrows (subtraction).
func (p MathProblem) Regroups() bool {
	switch p.Op {
	case OpAdd:
		return p.A%10+p.B%10 >= 10
	case OpSub:
		return p.A%10 < p.B%10
	}
	return false
}

// candidateFunc builds one unvalidated problem.
type candidateFunc func(rng *rand.Rand, op Op, hard bool) MathProblem

// MathProvider generates addition and subtraction problems within
// [MathMin, MathMax]. Hard problems always carry or borrow; easier ones
// never do.
type MathProvider struct {
	rng        *rand.Rand
	difficulty content.Difficulty
	validators []Validator
	candidate  candidateFunc
	fallbacks  int
}

func NewMath(rng *rand.Rand, d content.Difficulty) *MathProvider {
	return &MathProvider{
		rng:        rng,
		difficulty: d,
		validators: DefaultValidators(),
		candidate:  constructProblem,
	}
}

// Next returns a problem with its answer and three nearby decoys.
func (p *MathProvider) Next() (Challenge[int], error) {
	prob := p.Generate()
	decoys, err := NumericDecoys(p.rng, prob.Answer, mathDecoys, MathMin, MathMax)
	if err != nil {
		return Challenge[int]{}, err
	}
	return Challenge[int]{
		Prompt:  prob.String() + " = ?",
		Answer:  prob.Answer,
		Options: Shuffle(p.rng, append([]int{prob.Answer}, decoys...)),
	}, nil
}

func (p *MathProvider) IsCorrect(c Challenge[int], answer int) bool {
	return answer == c.Answer
}

// Generate returns a validated problem. Candidates that fail validation
// are discarded; when the retry budget runs out a fixed safe problem is
// used instead.
func (p *MathProvider) Generate() MathProblem {
	op := OpAdd
	if p.rng.Intn(2) == 1 {
		op = OpSub
	}
	hard := p.difficulty == content.DifficultyHard

	for attempt := 0; attempt < mathAttempts; attempt++ {
		cand := p.candidate(p.rng, op, hard)
		verr := p.validate(cand)
		if verr == nil {
			return cand
		}
		if !verr.Retryable {
			break
		}
	}
	p.fallbacks++
	return fallbackProblem(op, hard)
}

func (p *MathProvider) validate(prob MathProblem) *ValidationError {
	for _, v := range p.validators {
		if err := v.Validate(prob, p.difficulty); err != nil {
			return err
		}
	}
	return nil
}

// Fallbacks counts problems that came from the fixed fallback.
func (p *MathProvider) Fallbacks() int { return p.fallbacks }

// constructProblem builds a problem digit by digit so the carry rule
// holds without rejection sampling.
func constructProblem(rng *rand.Rand, op Op, hard bool) MathProblem {
	var a, b int
	switch {
	case op == OpAdd && hard:
		a1 := 1 + rng.Intn(9)
		b1 := 10 - a1 + rng.Intn(a1)
		a, b = a1, b1
		if a1+b1 == 10 && rng.Intn(2) == 1 {
			if rng.Intn(2) == 0 {
				a += 10
			} else {
				b += 10
			}
		}
	case op == OpAdd:
		a1 := 1 + rng.Intn(9)
		b1 := rng.Intn(10 - a1)
		a, b = a1+10*rng.Intn(2), b1
	case hard:
		a1 := rng.Intn(9)
		a = 10 + a1
		b = a1 + 1 + rng.Intn(9-a1)
	default:
		a1 := 1 + rng.Intn(9)
		a = a1 + 10*rng.Intn(2)
		b = 1 + rng.Intn(a1)
	}
	if op == OpAdd {
		return MathProblem{A: a, B: b, Op: OpAdd, Answer: a + b}
	}
	return MathProblem{A: a, B: b, Op: OpSub, Answer: a - b}
}

func fallbackProblem(op Op, hard bool) MathProblem {
	switch {
	case op == OpAdd && hard:
		return MathProblem{A: 8, B: 5, Op: OpAdd, Answer: 13}
	case op == OpAdd:
		return MathProblem{A: 3, B: 4, Op: OpAdd, Answer: 7}
	case hard:
		return MathProblem{A: 12, B: 5, Op: OpSub, Answer: 7}
	default:
		return MathProblem{A: 8, B: 3, Op: OpSub, Answer: 5}
	}
}
