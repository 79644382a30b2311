package challenge

import (
	"fmt"
	"math/rand"
	"slices"
)

const (
	// decoyAttempts bounds random draws per widening step.
	decoyAttempts = 20

	// scrambleAttempts bounds reshuffles before falling back to a rotation.
	scrambleAttempts = 10
)

// decoySpreads are the ± windows tried in order around the answer.
var decoySpreads = []int{2, 4, 8}

// Shuffle returns a shuffled copy of s.
func Shuffle[T any](rng *rand.Rand, s []T) []T {
	out := slices.Clone(s)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// NumericDecoys returns k distinct values in [lo, hi] close to answer and
// different from it. Values are drawn from answer±2 first; the window
// widens when draws keep colliding, and as a last resort the nearest free
// values are taken in order.
func NumericDecoys(rng *rand.Rand, answer, k, lo, hi int) ([]int, error) {
	if hi-lo < k {
		return nil, fmt.Errorf("%w: range [%d,%d] cannot hold %d decoys", ErrGenerationStarvation, lo, hi, k)
	}
	seen := map[int]bool{answer: true}
	out := make([]int, 0, k)
	add := func(v int) {
		if v < lo || v > hi || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	for _, spread := range decoySpreads {
		for attempt := 0; attempt < decoyAttempts && len(out) < k; attempt++ {
			add(answer + rng.Intn(2*spread+1) - spread)
		}
		if len(out) == k {
			return out, nil
		}
	}

	for d := 1; len(out) < k && d <= hi-lo; d++ {
		add(answer - d)
		if len(out) < k {
			add(answer + d)
		}
	}
	return out, nil
}

// PickDistinct draws k items of pool whose keys differ from exclude and
// from each other.
func PickDistinct[T any, K comparable](rng *rand.Rand, pool []T, k int, exclude K, key func(T) K) ([]T, error) {
	seen := map[K]bool{exclude: true}
	candidates := make([]T, 0, len(pool))
	for _, item := range Shuffle(rng, pool) {
		if kk := key(item); !seen[kk] {
			seen[kk] = true
			candidates = append(candidates, item)
		}
	}
	if len(candidates) < k {
		return nil, fmt.Errorf("%w: %d distinct decoys available, need %d", ErrContentUnavailable, len(candidates), k)
	}
	return candidates[:k], nil
}

// Scramble returns words in an order different from the given one.
func Scramble(rng *rand.Rand, words []string) ([]string, error) {
	if len(words) < 2 {
		return nil, unavailable("sentence", len(words), 2)
	}
	for attempt := 0; attempt < scrambleAttempts; attempt++ {
		if out := Shuffle(rng, words); !slices.Equal(out, words) {
			return out, nil
		}
	}
	// A rotation only reproduces the source when every word is the same.
	rotated := append(slices.Clone(words[1:]), words[0])
	if slices.Equal(rotated, words) {
		return nil, fmt.Errorf("%w: all %d words are identical", ErrGenerationStarvation, len(words))
	}
	return rotated, nil
}
