package challenge

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/bevuihoc/bevuihoc/internal/content"
)

const (
	preschoolOptions = 4
	countingMax      = 10
)

// PreschoolProvider asks the child to find one item among four from the
// same category. Answers and options are item IDs; Labels carries the
// picture, color swatch or name shown for each option.
type PreschoolProvider struct {
	rng   *rand.Rand
	items []content.PreschoolItem
	deck  *Deck[content.PreschoolItem]
	byID  map[string]content.PreschoolItem
}

func NewPreschool(rng *rand.Rand, items []content.PreschoolItem) *PreschoolProvider {
	byID := make(map[string]content.PreschoolItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return &PreschoolProvider{rng: rng, items: items, deck: NewDeck(rng, items), byID: byID}
}

func (p *PreschoolProvider) Next() (Challenge[string], error) {
	if len(p.byID) < preschoolOptions {
		return Challenge[string]{}, unavailable("preschool items", len(p.byID), preschoolOptions)
	}
	target, err := p.deck.Draw()
	if err != nil {
		return Challenge[string]{}, err
	}
	decoys, err := PickDistinct(p.rng, p.items, preschoolOptions-1, target.ID, func(it content.PreschoolItem) string { return it.ID })
	if err != nil {
		return Challenge[string]{}, err
	}
	picked := Shuffle(p.rng, append([]content.PreschoolItem{target}, decoys...))
	options := make([]string, len(picked))
	labels := make([]string, len(picked))
	for i, it := range picked {
		options[i] = it.ID
		labels[i] = ItemLabel(it)
	}
	prompt := "Bé hãy tìm " + target.Name
	return Challenge[string]{
		Prompt:  prompt,
		Speak:   prompt,
		Lang:    "vi",
		Answer:  target.ID,
		Options: options,
		Labels:  labels,
	}, nil
}

func (p *PreschoolProvider) IsCorrect(c Challenge[string], answer string) bool {
	return answer == c.Answer
}

// Item returns the record behind an option ID.
func (p *PreschoolProvider) Item(id string) (content.PreschoolItem, bool) {
	it, ok := p.byID[id]
	return it, ok
}

// ItemLabel is the picture of an item, its hex color, or its name.
func ItemLabel(it content.PreschoolItem) string {
	switch {
	case it.Image != "":
		return it.Image
	case it.Hex != "":
		return it.Hex
	default:
		return it.Name
	}
}

// CountingProvider shows between 1 and 10 copies of an object and asks
// how many there are.
type CountingProvider struct {
	rng *rand.Rand
}

func NewCounting(rng *rand.Rand) *CountingProvider {
	return &CountingProvider{rng: rng}
}

func (p *CountingProvider) Next() (Challenge[int], error) {
	emoji := countingEmojis[p.rng.Intn(len(countingEmojis))]
	n := 1 + p.rng.Intn(countingMax)

	options := []int{n}
	for _, v := range p.rng.Perm(countingMax) {
		if len(options) == preschoolOptions {
			break
		}
		if v+1 != n {
			options = append(options, v+1)
		}
	}
	prompt := fmt.Sprintf("Có mấy %s ở đây?", emoji)
	return Challenge[int]{
		Prompt:  prompt,
		Detail:  strings.TrimSpace(strings.Repeat(emoji+" ", n)),
		Image:   emoji,
		Speak:   prompt,
		Lang:    "vi",
		Answer:  n,
		Options: Shuffle(p.rng, options),
	}, nil
}

func (p *CountingProvider) IsCorrect(c Challenge[int], answer int) bool {
	return answer == c.Answer
}
