package minigame

import (
	"context"

	"github.com/bevuihoc/bevuihoc/internal/store"
)

// SaveBest records res.Points as the best score of the level's subject
// when it beats the stored one.
func SaveBest(ctx context.Context, st store.Store, res Result) (bool, error) {
	return st.Record(ctx, string(res.Level.Subject), res.Points)
}

// Mistakes returns the wrong answers of the round, oldest first.
func (res Result) Mistakes() []Attempt {
	return res.Attempts
}

// Perfect reports whether every question was answered correctly.
func (res Result) Perfect() bool {
	return !res.TimedOut && res.Incorrect == 0 && res.Score == res.Total
}
