package levels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

func TestCatalog_KindsUniqueAndComplete(t *testing.T) {
	all := All()
	assert.Len(t, all, 17)
	assert.Len(t, Grade1(), 12)
	assert.Len(t, Preschool(), 5)

	seen := map[Kind]bool{}
	for _, l := range all {
		assert.False(t, seen[l.Kind], "duplicate %s", l.Kind)
		seen[l.Kind] = true
		assert.NotEmpty(t, l.Title, l.Kind)
		assert.NotEmpty(t, l.Difficulties, l.Kind)
		assert.Contains(t, []string{"vi", "en"}, l.Language, l.Kind)
		assert.GreaterOrEqual(t, l.Questions, 0, l.Kind)
	}
}

func TestCatalog_PreschoolLevels(t *testing.T) {
	for _, l := range Preschool() {
		assert.Equal(t, GroupPreschool, l.Group)
		assert.True(t, l.SingleDifficulty())
		assert.Equal(t, 10, l.Questions)
		assert.False(t, l.Timed(content.DifficultyEasy), l.Kind)
		assert.Equal(t, Untimed, l.TimeLimit(content.DifficultyEasy))
	}
}

func TestLookup(t *testing.T) {
	l, ok := Lookup(KindMath)
	require.True(t, ok)
	assert.Equal(t, "Toán Cộng Trừ", l.Title)
	assert.Equal(t, SubjectMath, l.Subject)
	assert.Equal(t, 10, l.Questions)
	assert.Equal(t, 120*time.Second, l.TimeLimit(content.DifficultyEasy))
	assert.Equal(t, 90*time.Second, l.TimeLimit(content.DifficultyHard))
	assert.True(t, l.Supports(content.DifficultyHard))
	assert.False(t, l.Supports(content.DifficultyMedium))
	assert.False(t, l.SingleDifficulty())

	_, ok = Lookup("chess")
	assert.False(t, ok)
}

func TestScrambleTimeGrowsWithDifficulty(t *testing.T) {
	l, ok := Lookup(KindVietnameseScramble)
	require.True(t, ok)
	assert.Equal(t, 120*time.Second, l.TimeLimit(content.DifficultyEasy))
	assert.Equal(t, 180*time.Second, l.TimeLimit(content.DifficultyHard))
}

func TestWithOverrides(t *testing.T) {
	l, _ := Lookup(KindMath)
	o := l.WithOverrides(4, map[content.Difficulty]time.Duration{
		content.DifficultyEasy: 30 * time.Second,
		content.DifficultyHard: 0,
	})
	assert.Equal(t, 4, o.Questions)
	assert.Equal(t, 30*time.Second, o.TimeLimit(content.DifficultyEasy))
	assert.Equal(t, 90*time.Second, o.TimeLimit(content.DifficultyHard))

	// The catalog entry is untouched.
	again, _ := Lookup(KindMath)
	assert.Equal(t, 10, again.Questions)
	assert.Equal(t, 120*time.Second, again.TimeLimit(content.DifficultyEasy))

	untimed, _ := Lookup(KindClickTarget)
	timed := untimed.WithOverrides(0, map[content.Difficulty]time.Duration{content.DifficultyEasy: time.Minute})
	assert.Equal(t, 5, timed.Questions)
	assert.True(t, timed.Timed(content.DifficultyEasy))
}

func TestSubjects(t *testing.T) {
	subjects := Subjects()
	assert.Equal(t, []Subject{
		SubjectClicking, SubjectMath, SubjectVietnamese, SubjectEnglish, SubjectTyping,
		SubjectPreschoolColors, SubjectPreschoolAnimals, SubjectPreschoolObjects,
		SubjectPreschoolShapes, SubjectPreschoolCounting,
	}, subjects)
	assert.Equal(t, "Toán", SubjectMath.Title())
	assert.Equal(t, "Đếm Số", SubjectPreschoolCounting.Title())
	assert.Equal(t, "OTHER", Subject("OTHER").Title())
}

func TestPreschoolCategory(t *testing.T) {
	cat, ok := PreschoolCategory(KindPreschoolShapes)
	assert.True(t, ok)
	assert.Equal(t, content.CategoryPreschoolShapes, cat)

	_, ok = PreschoolCategory(KindPreschoolCounting)
	assert.False(t, ok)
}

func TestInGroup(t *testing.T) {
	assert.Equal(t, Grade1(), InGroup(GroupGrade1))
	assert.Equal(t, Preschool(), InGroup(GroupPreschool))
	assert.Equal(t, "Mầm non", GroupPreschool.String())
}
