package content

import (
	"fmt"
	"strings"
)

// Difficulty is the tag content records and levels are filtered by.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every tag from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts any casing ("EASY", "easy").
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// UnmarshalText lets content files use the upper-case tags.
func (d *Difficulty) UnmarshalText(b []byte) error {
	parsed, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Label returns the display name in the given language.
func (d Difficulty) Label(lang string) string {
	if lang == "en" {
		switch d {
		case DifficultyEasy:
			return "Easy"
		case DifficultyMedium:
			return "Medium"
		case DifficultyHard:
			return "Hard"
		}
		return string(d)
	}
	switch d {
	case DifficultyEasy:
		return "Dễ"
	case DifficultyMedium:
		return "Trung bình"
	case DifficultyHard:
		return "Khó"
	}
	return string(d)
}

// Graded is implemented by records that carry a difficulty tag.
type Graded interface {
	DifficultyTag() Difficulty
}

// orEasy treats an untagged record as easy.
func orEasy(d Difficulty) Difficulty {
	if d == "" {
		return DifficultyEasy
	}
	return d
}

// VietnameseWord is a picture word with a missing rhyme, e.g. "Cơn m__" / "ưa".
type VietnameseWord struct {
	Image      string     `json:"image"`
	Sentence   string     `json:"sentence"`
	Missing    string     `json:"missing"`
	ToType     string     `json:"to_type"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

func (w VietnameseWord) DifficultyTag() Difficulty { return orEasy(w.Difficulty) }

// EnglishWord is a vocabulary word with a gapped spelling sentence.
type EnglishWord struct {
	Image      string     `json:"image"`
	Word       string     `json:"word"`
	Sentence   string     `json:"sentence"`
	Missing    string     `json:"missing"`
	Difficulty Difficulty `json:"difficulty"`
}

func (w EnglishWord) DifficultyTag() Difficulty { return orEasy(w.Difficulty) }

// ScrambleSentence is a sentence whose words get shuffled.
type ScrambleSentence struct {
	Sentence   string     `json:"sentence"`
	Difficulty Difficulty `json:"difficulty"`
}

func (s ScrambleSentence) DifficultyTag() Difficulty { return orEasy(s.Difficulty) }

// Words splits the sentence on whitespace.
func (s ScrambleSentence) Words() []string {
	return strings.Fields(s.Sentence)
}

// RhymePair asks for the option sharing Word's rhyme. Options include Rhyme.
type RhymePair struct {
	Word       string     `json:"word"`
	Rhyme      string     `json:"rhyme"`
	Options    []string   `json:"options"`
	Difficulty Difficulty `json:"difficulty"`
}

func (r RhymePair) DifficultyTag() Difficulty { return orEasy(r.Difficulty) }

// EnglishSentence is a listening sentence with one missing word.
type EnglishSentence struct {
	Image      string     `json:"image"`
	Sentence   string     `json:"sentence"`
	Missing    string     `json:"missing"`
	Difficulty Difficulty `json:"difficulty"`
}

func (s EnglishSentence) DifficultyTag() Difficulty { return orEasy(s.Difficulty) }

// VowelRule is one Telex typing rule, e.g. "aw" produces "ă".
type VowelRule struct {
	Result      string `json:"result"`
	Guide       string `json:"guide"`
	Description string `json:"description"`
}

// PreschoolItem covers animals, objects, shapes and colors (Hex set).
type PreschoolItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Hex   string `json:"hex,omitempty"`
}

// ByDifficulty returns the records tagged d, preserving order.
func ByDifficulty[T Graded](records []T, d Difficulty) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.DifficultyTag() == d {
			out = append(out, r)
		}
	}
	return out
}
