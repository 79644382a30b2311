package challenge

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

func TestTypingText_HomeRowWords(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		words := strings.Split(TypingText(seeded(seed)), " ")
		require.Len(t, words, 10)
		for _, w := range words {
			assert.True(t, len(w) >= 3 && len(w) <= 5, "word %q", w)
			assert.Empty(t, strings.Trim(w, homeRow), "word %q", w)
		}
	}
}

func TestTracker_WrongKeysDoNotAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	tr := NewTracker("as;")

	assert.True(t, tr.Type('a', start))
	assert.False(t, tr.Type('d', start.Add(time.Second)))
	assert.Equal(t, 1, tr.Pos())
	assert.True(t, tr.Type('s', start.Add(2*time.Second)))
	assert.False(t, tr.Done())
	assert.True(t, tr.Type(';', start.Add(3*time.Second)))
	assert.True(t, tr.Done())

	assert.False(t, tr.Type('x', start.Add(4*time.Second)), "input after completion is ignored")
	assert.Equal(t, 4, tr.Typed())
	assert.Equal(t, 1, tr.Errors())
	assert.Equal(t, 75, tr.Accuracy())
}

func TestTracker_Stats(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	tr := NewTracker("asdf")

	assert.Equal(t, 0, tr.CPM(start))
	assert.Equal(t, 100, tr.Accuracy())

	for i, r := range "asdf" {
		tr.Type(r, start.Add(time.Duration(i)*10*time.Second))
	}
	// Four characters over thirty seconds, frozen at the last keystroke.
	assert.Equal(t, 8, tr.CPM(start.Add(time.Hour)))
	assert.Equal(t, 100, tr.Accuracy())
	assert.Equal(t, 108, tr.Score(start.Add(time.Hour)))
}

func TestTypingProvider(t *testing.T) {
	p := NewTyping(seeded(1))
	c, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, c.Answer, c.Detail)
	assert.True(t, p.IsCorrect(c, c.Answer))
	assert.False(t, p.IsCorrect(c, strings.ToUpper(c.Answer)))
}

func TestVowels_SequentialAndWrapping(t *testing.T) {
	rules := []content.VowelRule{
		{Result: "ă", Guide: "aw", Description: "a + w = ă"},
		{Result: "â", Guide: "aa", Description: "a + a = â"},
	}
	p := NewVowels(rules)
	assert.Equal(t, 2, p.Len())

	var got []string
	for i := 0; i < 3; i++ {
		c, err := p.Next()
		require.NoError(t, err)
		got = append(got, c.Answer)
	}
	assert.Equal(t, []string{"ă", "â", "ă"}, got)
}

func TestVowels_IsCorrect(t *testing.T) {
	p := NewVowels([]content.VowelRule{{Result: "ư", Guide: "uw", Description: "u + w = ư"}})
	c, err := p.Next()
	require.NoError(t, err)

	assert.True(t, p.IsCorrect(c, "ư"))
	assert.True(t, p.IsCorrect(c, "uw"))
	assert.True(t, p.IsCorrect(c, "thư"))
	assert.False(t, p.IsCorrect(c, "u"))
}

func TestVowels_AcceptsRawTelexKeys(t *testing.T) {
	p := NewVowels([]content.VowelRule{{Result: "ă", Guide: "aw", Description: "a + w = ă"}})
	c, err := p.Next()
	require.NoError(t, err)

	assert.Equal(t, []string{"aw"}, c.Accept)
	assert.True(t, p.IsCorrect(c, "aw"))
	assert.True(t, p.IsCorrect(c, "  maw "))
	assert.False(t, p.IsCorrect(c, "wa"))
	assert.False(t, p.IsCorrect(c, "a"))
}

func TestVowels_Empty(t *testing.T) {
	_, err := NewVowels(nil).Next()
	assert.ErrorIs(t, err, ErrContentUnavailable)
}
