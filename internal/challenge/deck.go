package challenge

import (
	"fmt"
	"math/rand"
)

// Deck hands out items in a shuffled order, reshuffling the whole pool
// once every item has been drawn. No item repeats within a pass, and the
// first draw of a new pass never repeats the last draw of the previous one.
type Deck[T any] struct {
	rng   *rand.Rand
	items []T
	order []int
	pos   int
	last  int
}

// NewDeck shuffles items into a new deck. The slice is not copied.
func NewDeck[T any](rng *rand.Rand, items []T) *Deck[T] {
	d := &Deck[T]{rng: rng, items: items, last: -1}
	d.shuffle()
	return d
}

func (d *Deck[T]) shuffle() {
	d.order = d.rng.Perm(len(d.items))
	d.pos = 0
	if n := len(d.order); n > 1 && d.order[0] == d.last {
		j := 1 + d.rng.Intn(n-1)
		d.order[0], d.order[j] = d.order[j], d.order[0]
	}
}

// Draw returns the next item.
func (d *Deck[T]) Draw() (T, error) {
	var zero T
	if len(d.items) == 0 {
		return zero, fmt.Errorf("%w: empty deck", ErrContentUnavailable)
	}
	if d.pos >= len(d.order) {
		d.shuffle()
	}
	i := d.order[d.pos]
	d.pos++
	d.last = i
	return d.items[i], nil
}

// Len is the pool size.
func (d *Deck[T]) Len() int { return len(d.items) }

// Remaining counts the draws left before the next reshuffle.
func (d *Deck[T]) Remaining() int { return len(d.order) - d.pos }

// Items returns the whole pool in its original order.
func (d *Deck[T]) Items() []T { return d.items }

// UsedSet picks random indices of a fixed pool, remembering which were
// shown. Once every index has been used the set is cleared, so a repeat
// can only happen right after a full pass.
type UsedSet struct {
	rng  *rand.Rand
	n    int
	used map[int]bool
}

func NewUsedSet(rng *rand.Rand, n int) *UsedSet {
	return &UsedSet{rng: rng, n: n, used: make(map[int]bool, n)}
}

// Next returns an unused index.
func (u *UsedSet) Next() (int, error) {
	if u.n == 0 {
		return 0, fmt.Errorf("%w: empty pool", ErrContentUnavailable)
	}
	if len(u.used) >= u.n {
		clear(u.used)
	}
	free := make([]int, 0, u.n-len(u.used))
	for i := 0; i < u.n; i++ {
		if !u.used[i] {
			free = append(free, i)
		}
	}
	i := free[u.rng.Intn(len(free))]
	u.used[i] = true
	return i, nil
}

// Used counts indices shown in the current pass.
func (u *UsedSet) Used() int { return len(u.used) }
