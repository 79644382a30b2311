// Package levels is the catalog of mini-games: what each one is called,
// which subject it scores under, which difficulties it offers and how
// long a round lasts.
package levels

import (
	"maps"
	"slices"
	"time"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

// Untimed is the time limit of rounds that have no real clock. It is
// long enough that no child runs into it.
const Untimed = 999 * time.Second

// Subject is the key best scores are stored under.
type Subject string

const (
	SubjectClicking   Subject = "CLICKING"
	SubjectMath       Subject = "MATH"
	SubjectVietnamese Subject = "VIETNAMESE"
	SubjectEnglish    Subject = "ENGLISH"
	SubjectTyping     Subject = "TYPING"

	SubjectPreschoolColors   Subject = "PRESCHOOL_COLORS"
	SubjectPreschoolAnimals  Subject = "PRESCHOOL_ANIMALS"
	SubjectPreschoolObjects  Subject = "PRESCHOOL_OBJECTS"
	SubjectPreschoolShapes   Subject = "PRESCHOOL_SHAPES"
	SubjectPreschoolCounting Subject = "PRESCHOOL_COUNTING"
)

// Title is the display name of a subject.
func (s Subject) Title() string {
	switch s {
	case SubjectClicking:
		return "Chuột & Phản xạ"
	case SubjectMath:
		return "Toán"
	case SubjectVietnamese:
		return "Tiếng Việt"
	case SubjectEnglish:
		return "Tiếng Anh"
	case SubjectTyping:
		return "Gõ phím"
	}
	for _, l := range preschool {
		if l.Subject == s {
			return l.Title
		}
	}
	return string(s)
}

// Kind identifies a mini-game. Values double as CLI names.
type Kind string

const (
	KindClickBasic         Kind = "click-basic"
	KindClickTarget        Kind = "click-target"
	KindMath               Kind = "math"
	KindVietnameseFill     Kind = "vi-fill"
	KindVietnameseScramble Kind = "vi-scramble"
	KindVietnameseRhyme    Kind = "vi-rhyme"
	KindEnglishFill        Kind = "en-fill"
	KindEnglishListenType  Kind = "en-listen-type"
	KindEnglishImageMatch  Kind = "en-image-match"
	KindEnglishListenFill  Kind = "en-listen-sentence"
	KindTypingBasic        Kind = "typing-basic"
	KindTypingVowels       Kind = "typing-vowels"

	KindPreschoolColors   Kind = "preschool-colors"
	KindPreschoolAnimals  Kind = "preschool-animals"
	KindPreschoolObjects  Kind = "preschool-objects"
	KindPreschoolShapes   Kind = "preschool-shapes"
	KindPreschoolCounting Kind = "preschool-counting"
)

// Group separates the grade-one games from the preschool ones.
type Group int

const (
	GroupGrade1 Group = iota
	GroupPreschool
)

func (g Group) String() string {
	if g == GroupPreschool {
		return "Mầm non"
	}
	return "Lớp 1"
}

// Level describes one mini-game.
type Level struct {
	Kind        Kind
	Subject     Subject
	Group       Group
	Title       string
	Description string
	Language    string

	// Difficulties offered, easiest first.
	Difficulties []content.Difficulty

	// Questions per round. Zero means one question per content record.
	Questions int

	// TimeLimits per difficulty; difficulties not listed are untimed.
	TimeLimits map[content.Difficulty]time.Duration

	// FeedbackDelay overrides the default pause after an answer when set.
	FeedbackDelay time.Duration

	// Instant levels advance with no pause at all.
	Instant bool

	// RetryOnMiss levels keep the question after a wrong answer instead
	// of recording a mistake.
	RetryOnMiss bool
}

// TimeLimit returns the round length for d.
func (l Level) TimeLimit(d content.Difficulty) time.Duration {
	if t, ok := l.TimeLimits[d]; ok {
		return t
	}
	return Untimed
}

// Timed reports whether rounds at d have a visible clock.
func (l Level) Timed(d content.Difficulty) bool {
	return l.TimeLimit(d) < Untimed
}

// Supports reports whether d is offered.
func (l Level) Supports(d content.Difficulty) bool {
	return slices.Contains(l.Difficulties, d)
}

// SingleDifficulty levels skip the difficulty picker.
func (l Level) SingleDifficulty() bool {
	return len(l.Difficulties) == 1
}

// DefaultDifficulty is the easiest offered difficulty.
func (l Level) DefaultDifficulty() content.Difficulty {
	return l.Difficulties[0]
}

// WithOverrides returns a copy using the given question count and time
// limits where they are set. Non-positive values are ignored.
func (l Level) WithOverrides(questions int, limits map[content.Difficulty]time.Duration) Level {
	if questions > 0 {
		l.Questions = questions
	}
	if len(limits) > 0 {
		merged := maps.Clone(l.TimeLimits)
		if merged == nil {
			merged = make(map[content.Difficulty]time.Duration, len(limits))
		}
		for d, t := range limits {
			if t > 0 {
				merged[d] = t
			}
		}
		l.TimeLimits = merged
	}
	return l
}

func seconds(easy, medium, hard int) map[content.Difficulty]time.Duration {
	return map[content.Difficulty]time.Duration{
		content.DifficultyEasy:   time.Duration(easy) * time.Second,
		content.DifficultyMedium: time.Duration(medium) * time.Second,
		content.DifficultyHard:   time.Duration(hard) * time.Second,
	}
}

var (
	easyOnly        = []content.Difficulty{content.DifficultyEasy}
	easyHard        = []content.Difficulty{content.DifficultyEasy, content.DifficultyHard}
	easyMedium      = []content.Difficulty{content.DifficultyEasy, content.DifficultyMedium}
	everyDifficulty = []content.Difficulty{content.DifficultyEasy, content.DifficultyMedium, content.DifficultyHard}
)

var grade1 = []Level{
	{
		Kind: KindClickBasic, Subject: SubjectClicking, Language: "vi",
		Title: "Click Thần Tốc", Description: "Bấm thật nhanh trước khi hết giờ!",
		Difficulties: everyDifficulty, Questions: 999, TimeLimits: seconds(60, 45, 30),
		Instant: true, RetryOnMiss: true,
	},
	{
		Kind: KindClickTarget, Subject: SubjectClicking, Language: "vi",
		Title: "Tìm Mục Tiêu", Description: "Chọn con vật có số được yêu cầu.",
		Difficulties: easyOnly, Questions: 5,
	},
	{
		Kind: KindMath, Subject: SubjectMath, Language: "vi",
		Title: "Toán Cộng Trừ", Description: "Làm các phép toán cộng trừ.",
		Difficulties: easyHard, Questions: 10, TimeLimits: seconds(120, 105, 90),
	},
	{
		Kind: KindVietnameseFill, Subject: SubjectVietnamese, Language: "vi",
		Title: "Điền Từ", Description: "Nhìn hình và điền chữ còn thiếu.",
		Difficulties: easyOnly, Questions: 5, TimeLimits: seconds(90, 90, 90),
	},
	{
		Kind: KindVietnameseScramble, Subject: SubjectVietnamese, Language: "vi",
		Title: "Sắp Xếp Câu", Description: "Sắp xếp các từ thành câu đúng.",
		Difficulties: easyHard, Questions: 5, TimeLimits: seconds(120, 150, 180),
	},
	{
		Kind: KindVietnameseRhyme, Subject: SubjectVietnamese, Language: "vi",
		Title: "Tìm Vần", Description: "Tìm từ có vần giống với từ cho sẵn.",
		Difficulties: easyHard, Questions: 5, TimeLimits: seconds(90, 90, 90),
	},
	{
		Kind: KindEnglishFill, Subject: SubjectEnglish, Language: "en",
		Title: "Fill Blank", Description: "Điền chữ cái còn thiếu vào từ.",
		Difficulties: easyMedium, Questions: 5, TimeLimits: seconds(90, 90, 90),
	},
	{
		Kind: KindEnglishListenType, Subject: SubjectEnglish, Language: "en",
		Title: "Listen & Type", Description: "Nghe và gõ lại từ đúng.",
		Difficulties: easyMedium, Questions: 5, TimeLimits: seconds(100, 100, 100),
	},
	{
		Kind: KindEnglishImageMatch, Subject: SubjectEnglish, Language: "en",
		Title: "Image & Word", Description: "Chọn đúng từ cho hình ảnh.",
		Difficulties: easyMedium, Questions: 5, TimeLimits: seconds(90, 90, 90),
	},
	{
		Kind: KindEnglishListenFill, Subject: SubjectEnglish, Language: "en",
		Title: "Listen & Fill Sentence", Description: "Nghe và điền từ còn thiếu vào câu.",
		Difficulties: easyMedium, Questions: 5, TimeLimits: seconds(120, 120, 120),
	},
	{
		Kind: KindTypingBasic, Subject: SubjectTyping, Language: "vi",
		Title: "Gõ Phím Cơ Bản", Description: "Luyện gõ các ký tự trên bàn phím.",
		Difficulties: easyOnly, Questions: 1, Instant: true,
	},
	{
		Kind: KindTypingVowels, Subject: SubjectTyping, Language: "vi",
		Title: "Gõ Dấu Tiếng Việt", Description: "Học cách gõ chữ và dấu tiếng Việt.",
		Difficulties: easyOnly, Questions: 0, FeedbackDelay: 500 * time.Millisecond, RetryOnMiss: true,
	},
}

var preschool = []Level{
	{
		Kind: KindPreschoolColors, Subject: SubjectPreschoolColors, Group: GroupPreschool, Language: "vi",
		Title: "Màu Sắc", Description: "Bé học về các màu sắc cơ bản.",
		Difficulties: easyOnly, Questions: 10,
	},
	{
		Kind: KindPreschoolAnimals, Subject: SubjectPreschoolAnimals, Group: GroupPreschool, Language: "vi",
		Title: "Con Vật", Description: "Nhận biết các con vật quen thuộc.",
		Difficulties: easyOnly, Questions: 10,
	},
	{
		Kind: KindPreschoolObjects, Subject: SubjectPreschoolObjects, Group: GroupPreschool, Language: "vi",
		Title: "Đồ Vật", Description: "Gọi tên những đồ vật quanh bé.",
		Difficulties: easyOnly, Questions: 10,
	},
	{
		Kind: KindPreschoolShapes, Subject: SubjectPreschoolShapes, Group: GroupPreschool, Language: "vi",
		Title: "Hình Dạng", Description: "Khám phá thế giới hình dạng.",
		Difficulties: easyOnly, Questions: 10,
	},
	{
		Kind: KindPreschoolCounting, Subject: SubjectPreschoolCounting, Group: GroupPreschool, Language: "vi",
		Title: "Đếm Số", Description: "Tập đếm số từ 1 đến 10.",
		Difficulties: easyOnly, Questions: 10,
	},
}

// Grade1 returns the grade-one levels in menu order.
func Grade1() []Level { return slices.Clone(grade1) }

// Preschool returns the preschool levels in menu order.
func Preschool() []Level { return slices.Clone(preschool) }

// All returns every level, grade one first.
func All() []Level {
	return append(Grade1(), preschool...)
}

// InGroup returns the levels of g.
func InGroup(g Group) []Level {
	if g == GroupPreschool {
		return Preschool()
	}
	return Grade1()
}

// Lookup finds a level by kind.
func Lookup(kind Kind) (Level, bool) {
	for _, l := range All() {
		if l.Kind == kind {
			return l, true
		}
	}
	return Level{}, false
}

// Subjects returns every subject in menu order without repeats.
func Subjects() []Subject {
	var out []Subject
	for _, l := range All() {
		if !slices.Contains(out, l.Subject) {
			out = append(out, l.Subject)
		}
	}
	return out
}

// PreschoolCategory maps a preschool picture level to its content file.
func PreschoolCategory(kind Kind) (content.Category, bool) {
	switch kind {
	case KindPreschoolColors:
		return content.CategoryPreschoolColors, true
	case KindPreschoolAnimals:
		return content.CategoryPreschoolAnimals, true
	case KindPreschoolObjects:
		return content.CategoryPreschoolObjects, true
	case KindPreschoolShapes:
		return content.CategoryPreschoolShapes, true
	}
	return "", false
}
