package challenge

import (
	"fmt"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

// Validator checks a generated math problem before it is shown.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "range", "math-check".
	Name() string

	// Validate returns nil if the problem passes.
	Validate(p MathProblem, d content.Difficulty) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the standard chain: range, then arithmetic,
// then the carry/borrow rule.
func DefaultValidators() []Validator {
	return []Validator{
		&RangeValidator{Min: MathMin, Max: MathMax},
		&MathCheckValidator{},
		&RegroupValidator{},
	}
}

// RangeValidator keeps operands and answer inside [Min, Max].
type RangeValidator struct {
	Min, Max int
}

func (v *RangeValidator) Name() string { return "range" }

func (v *RangeValidator) Validate(p MathProblem, _ content.Difficulty) *ValidationError {
	for _, n := range []int{p.A, p.B, p.Answer} {
		if n < v.Min || n > v.Max {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%s = %d leaves [%d,%d]", p, p.Answer, v.Min, v.Max),
				Retryable: true,
			}
		}
	}
	return nil
}

// MathCheckValidator recomputes the answer independently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p MathProblem, _ content.Difficulty) *ValidationError {
	var want int
	switch p.Op {
	case OpAdd:
		want = p.A + p.B
	case OpSub:
		want = p.A - p.B
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("unsupported operator %q", p.Op),
			Retryable: false,
		}
	}
	if want != p.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %d but problem claims %d", want, p.Answer),
			Retryable: true,
		}
	}
	return nil
}

// RegroupValidator requires a carry or borrow on hard problems and
// forbids one otherwise.
type RegroupValidator struct{}

func (v *RegroupValidator) Name() string { return "regroup" }

func (v *RegroupValidator) Validate(p MathProblem, d content.Difficulty) *ValidationError {
	want := d == content.DifficultyHard
	if p.Regroups() == want {
		return nil
	}
	msg := fmt.Sprintf("%s must not carry or borrow at %s", p, d)
	if want {
		msg = fmt.Sprintf("%s must carry or borrow at %s", p, d)
	}
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
