package minigame

import (
	"context"
	"io/fs"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevuihoc/bevuihoc/internal/challenge"
	"github.com/bevuihoc/bevuihoc/internal/content"
	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/logging"
)

// rightAnswer returns input that should be judged correct for card.
func rightAnswer(t *testing.T, card Card) string {
	t.Helper()
	switch card.Mode {
	case ModeChoice:
		for i, o := range card.Options {
			if o.Text == card.Expected {
				return strconv.Itoa(i + 1)
			}
		}
		t.Fatalf("expected %q is not among options %v", card.Expected, card.Texts())
	case ModeGrid:
		return strconv.Itoa(card.Cell)
	}
	return card.Expected
}

func TestNewSource_EveryLevel(t *testing.T) {
	loader := content.Embedded(logging.Discard())
	ctx := context.Background()

	for _, lvl := range levels.All() {
		for _, d := range lvl.Difficulties {
			t.Run(string(lvl.Kind)+"/"+string(d), func(t *testing.T) {
				src, err := NewSource(ctx, lvl.Kind, d, loader, rand.New(rand.NewSource(11)))
				require.NoError(t, err)

				for i := 0; i < 5; i++ {
					card, err := src.Next()
					require.NoError(t, err)
					assert.NotEmpty(t, card.Prompt)
					assert.NotEmpty(t, card.Expected)

					_, ok := card.Judge(rightAnswer(t, card))
					assert.True(t, ok, "right answer rejected: %+v", card)

					_, ok = card.Judge("zzz-not-an-answer")
					assert.False(t, ok)
				}
			})
		}
	}
}

func TestNewSource_UnknownLevel(t *testing.T) {
	_, err := NewSource(context.Background(), "chess", content.DifficultyEasy, nil, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestNewSource_VowelsSizedByRules(t *testing.T) {
	loader := content.Embedded(logging.Discard())
	src, err := NewSource(context.Background(), levels.KindTypingVowels, content.DifficultyEasy, loader, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, len(loader.VowelRules(context.Background())), src.Size())
}

func TestNewSource_EmptyPoolIsUnavailable(t *testing.T) {
	loader := content.NewLoader(emptyFS{}, logging.Discard())
	src, err := NewSource(context.Background(), levels.KindEnglishImageMatch, content.DifficultyEasy, loader, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	_, err = src.Next()
	assert.ErrorIs(t, err, challenge.ErrContentUnavailable)
}

func TestChoiceJudging(t *testing.T) {
	src, err := NewSource(context.Background(), levels.KindClickTarget, content.DifficultyEasy, nil, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	card, err := src.Next()
	require.NoError(t, err)
	require.Len(t, card.Options, 5)

	var wrong int
	for i, o := range card.Options {
		assert.Contains(t, o.Text, o.Value, "animal options show their number")
		if o.Text != card.Expected {
			wrong = i
		}
	}
	given, ok := card.Judge(strconv.Itoa(wrong + 1))
	assert.False(t, ok)
	assert.Equal(t, card.Options[wrong].Text, given)

	absent := len(card.Options) + 1
	for ; ; absent++ {
		if !containsValue(card.Options, strconv.Itoa(absent)) {
			break
		}
	}
	_, ok = card.Judge(strconv.Itoa(absent))
	assert.False(t, ok)
	assert.False(t, card.Accepts(strconv.Itoa(absent)), "a number naming no option is ignored")
	assert.True(t, card.Accepts("zzz"), "free text is still judged")
	assert.True(t, card.Accepts(strconv.Itoa(wrong+1)))
}

func containsValue(options []Option, v string) bool {
	for _, o := range options {
		if o.Value == v {
			return true
		}
	}
	return false
}

func TestChoiceJudging_ValuePastLastPosition(t *testing.T) {
	src, err := NewSource(context.Background(), levels.KindClickTarget, content.DifficultyEasy, nil, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		card, err := src.Next()
		require.NoError(t, err)
		for pos, o := range card.Options {
			n, err := strconv.Atoi(o.Value)
			require.NoError(t, err)
			if n <= len(card.Options) {
				continue
			}
			assert.True(t, card.Accepts(o.Value))
			given, ok := card.Judge(o.Value)
			assert.Equal(t, card.Options[pos].Text, given)
			assert.Equal(t, o.Text == card.Expected, ok)
		}
	}
}

func TestOrderJudging(t *testing.T) {
	loader := content.Embedded(logging.Discard())
	src, err := NewSource(context.Background(), levels.KindVietnameseScramble, content.DifficultyEasy, loader, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	card, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, ModeOrder, card.Mode)

	// Rebuild the sentence from positions.
	words := challenge.NormalizeText(card.Expected)
	var picks []string
	used := make([]bool, len(card.Options))
	for _, w := range splitWords(words) {
		for i, o := range card.Options {
			if !used[i] && challenge.NormalizeText(o.Value) == w {
				used[i] = true
				picks = append(picks, strconv.Itoa(i+1))
				break
			}
		}
	}
	given, ok := card.Judge(joinWords(picks))
	assert.True(t, ok)
	assert.Equal(t, card.Expected, given)
}

func TestPreschoolColorsUseSwatches(t *testing.T) {
	loader := content.Embedded(logging.Discard())
	src, err := NewSource(context.Background(), levels.KindPreschoolColors, content.DifficultyEasy, loader, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	card, err := src.Next()
	require.NoError(t, err)
	for _, o := range card.Options {
		assert.Regexp(t, `^#[0-9A-Fa-f]{6}$`, o.Swatch)
		assert.NotEqual(t, o.Swatch, o.Text)
	}
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func splitWords(s string) []string { return strings.Fields(s) }

func joinWords(w []string) string { return strings.Join(w, " ") }
