// Package content loads the word, sentence and picture lists the
// mini-games draw from. Files are JSON arrays validated against an
// embedded schema; the default pack is compiled into the binary.
package content

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

//go:embed data/*.json
var embedded embed.FS

// Category names one content file.
type Category string

const (
	CategoryVietnameseWords    Category = "vietnamese_words"
	CategoryVietnameseScramble Category = "vietnamese_scramble"
	CategoryVietnameseRhymes   Category = "vietnamese_rhymes"
	CategoryVietnameseVowels   Category = "vietnamese_vowels"
	CategoryEnglishWords       Category = "english_words"
	CategoryEnglishSentences   Category = "english_sentences"
	CategoryPreschoolAnimals   Category = "preschool_animals"
	CategoryPreschoolObjects   Category = "preschool_objects"
	CategoryPreschoolColors    Category = "preschool_colors"
	CategoryPreschoolShapes    Category = "preschool_shapes"
)

// Categories lists every category a pack may provide.
var Categories = []Category{
	CategoryVietnameseWords,
	CategoryVietnameseScramble,
	CategoryVietnameseRhymes,
	CategoryVietnameseVowels,
	CategoryEnglishWords,
	CategoryEnglishSentences,
	CategoryPreschoolAnimals,
	CategoryPreschoolObjects,
	CategoryPreschoolColors,
	CategoryPreschoolShapes,
}

func (c Category) filename() string {
	return string(c) + ".json"
}

// Loader reads and caches content files from a pack. Cached slices are
// shared between callers and must not be modified.
type Loader struct {
	fsys   fs.FS
	logger *log.Logger

	mu       sync.Mutex
	cache    map[Category]any
	manifest *Manifest
}

// NewLoader reads the pack rooted at fsys. A nil logger discards output.
func NewLoader(fsys fs.FS, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		fsys:   fsys,
		logger: logger,
		cache:  make(map[Category]any),
	}
}

// Embedded returns a loader over the pack compiled into the binary.
func Embedded(logger *log.Logger) *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return NewLoader(sub, logger)
}

// Open returns a loader for dir, or the embedded pack when dir is empty.
func Open(dir string, logger *log.Logger) (*Loader, error) {
	if dir == "" {
		return Embedded(logger), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: not a directory", dir)
	}
	return NewLoader(os.DirFS(dir), logger), nil
}

// load reads, validates and decodes one category, caching successes only.
func load[T any](ctx context.Context, l *Loader, cat Category) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[cat]; ok {
		return cached.([]T), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := l.manifestLocked(); err != nil {
		return nil, err
	}

	raw, err := fs.ReadFile(l.fsys, cat.filename())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cat, err)
	}
	if err := validateRecords(cat, raw); err != nil {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", cat, err)
	}

	l.cache[cat] = records
	l.logger.Debug("content loaded", "category", cat, "records", len(records))
	return records, nil
}

// loadOrEmpty degrades any failure to an empty list so a broken pack shows
// an empty state instead of crashing a mini-game.
func loadOrEmpty[T any](ctx context.Context, l *Loader, cat Category) []T {
	records, err := load[T](ctx, l, cat)
	if err != nil {
		l.logger.Warn("content unavailable", "category", cat, "error", err)
		return []T{}
	}
	return records
}

func (l *Loader) VietnameseWords(ctx context.Context) []VietnameseWord {
	return loadOrEmpty[VietnameseWord](ctx, l, CategoryVietnameseWords)
}

func (l *Loader) ScrambleSentences(ctx context.Context) []ScrambleSentence {
	return loadOrEmpty[ScrambleSentence](ctx, l, CategoryVietnameseScramble)
}

func (l *Loader) RhymePairs(ctx context.Context) []RhymePair {
	return loadOrEmpty[RhymePair](ctx, l, CategoryVietnameseRhymes)
}

func (l *Loader) VowelRules(ctx context.Context) []VowelRule {
	return loadOrEmpty[VowelRule](ctx, l, CategoryVietnameseVowels)
}

func (l *Loader) EnglishWords(ctx context.Context) []EnglishWord {
	return loadOrEmpty[EnglishWord](ctx, l, CategoryEnglishWords)
}

func (l *Loader) EnglishSentences(ctx context.Context) []EnglishSentence {
	return loadOrEmpty[EnglishSentence](ctx, l, CategoryEnglishSentences)
}

// Preschool returns the items of one of the four preschool categories.
func (l *Loader) Preschool(ctx context.Context, cat Category) []PreschoolItem {
	return loadOrEmpty[PreschoolItem](ctx, l, cat)
}

// Check loads every category strictly and reports all failures.
func (l *Loader) Check(ctx context.Context) error {
	var errs []error
	check := func(cat Category, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cat, err))
		}
	}
	for _, cat := range Categories {
		var err error
		switch cat {
		case CategoryVietnameseWords:
			_, err = load[VietnameseWord](ctx, l, cat)
		case CategoryVietnameseScramble:
			_, err = load[ScrambleSentence](ctx, l, cat)
		case CategoryVietnameseRhymes:
			_, err = load[RhymePair](ctx, l, cat)
		case CategoryVietnameseVowels:
			_, err = load[VowelRule](ctx, l, cat)
		case CategoryEnglishWords:
			_, err = load[EnglishWord](ctx, l, cat)
		case CategoryEnglishSentences:
			_, err = load[EnglishSentence](ctx, l, cat)
		default:
			_, err = load[PreschoolItem](ctx, l, cat)
		}
		check(cat, err)
	}
	return errors.Join(errs...)
}
