package challenge

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeText trims, lower-cases and collapses inner whitespace.
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// MatchText compares free-text input against the expected answer and any
// alternatives, ignoring case and surrounding whitespace. Empty input
// never matches.
func MatchText(input, want string, alternatives ...string) bool {
	got := NormalizeText(input)
	if got == "" {
		return false
	}
	if got == NormalizeText(want) {
		return true
	}
	for _, alt := range alternatives {
		if got == NormalizeText(alt) {
			return true
		}
	}
	return false
}

// MatchSuffix reports whether typed text ends with one of the targets.
// Used for Telex practice where the keyboard may or may not compose the
// accented letter.
func MatchSuffix(typed string, targets ...string) bool {
	typed = strings.ToLower(strings.TrimSpace(typed))
	if typed == "" {
		return false
	}
	for _, t := range targets {
		if t != "" && strings.HasSuffix(typed, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// ParseChoice resolves input to an option index. Input may be the
// 1-based position or the option text itself.
func ParseChoice(input string, options []string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("empty choice")
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(options) {
			return 0, fmt.Errorf("choice %d out of range 1-%d", n, len(options))
		}
		return n - 1, nil
	}
	want := NormalizeText(input)
	for i, opt := range options {
		if NormalizeText(opt) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no option %q", input)
}

// ParseNumber reads a typed numeric answer.
func ParseNumber(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}
