package play

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/bevuihoc/bevuihoc/internal/minigame"
)

// roundEventMsg carries one round event into the update loop.
type roundEventMsg struct {
	Event minigame.Event
}

// roundSavedMsg is sent once the best score has been written.
type roundSavedMsg struct {
	Result   minigame.Result
	Improved bool
	Err      error
}

// inbox queues round events. Producers never block: events come from
// timer goroutines and from the update loop itself.
type inbox struct {
	mu     sync.Mutex
	items  []minigame.Event
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newInbox() *inbox {
	return &inbox{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (q *inbox) push(ev minigame.Event) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// pop returns the oldest queued event without waiting.
func (q *inbox) pop() (minigame.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	ev := q.items[0]
	q.items = q.items[1:]
	return ev, true
}

// wait returns a command that delivers the next event. Only one wait is
// outstanding at a time; each roundEventMsg schedules the next.
func (q *inbox) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			if ev, ok := q.pop(); ok {
				return roundEventMsg{Event: ev}
			}
			select {
			case <-q.signal:
			case <-q.done:
				return nil
			}
		}
	}
}

func (q *inbox) close() {
	q.once.Do(func() { close(q.done) })
}
