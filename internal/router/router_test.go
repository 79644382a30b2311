package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bevuihoc/bevuihoc/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	closed  bool
}

func (s *stubScreen) Close() { s.closed = true }

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestPopClosesScreen(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	play := &stubScreen{title: "play"}
	r.Push(play)

	r.Update(PopScreenMsg{})

	if !play.closed {
		t.Error("expected popped screen to be closed")
	}
}

func TestReplaceClosesOldScreen(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	play := &stubScreen{title: "play"}
	r.Push(play)

	r.Replace(&stubScreen{title: "summary"})

	if !play.closed {
		t.Error("expected replaced screen to be closed")
	}
}

func TestPopToRoot(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	levels := &stubScreen{title: "levels"}
	summary := &stubScreen{title: "summary"}
	r.Push(levels)
	r.Push(summary)

	r.Update(PopToRootMsg{})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active() != home {
		t.Errorf("expected home on top, got %q", r.Active().Title())
	}
	if !levels.closed || !summary.closed {
		t.Error("expected dropped screens to be closed")
	}
	if home.closed {
		t.Error("root screen must stay open")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	if cmd := r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("expected nil cmd from stub screen")
	}
	if got := r.View(80, 24); got != "home" {
		t.Errorf("expected view 'home', got %q", got)
	}
}

// countingScreen records how many messages it saw.
type countingScreen struct {
	stubScreen
	seen int
}

func (s *countingScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen++
	return s, nil
}

func TestBroadcastReachesEveryScreen(t *testing.T) {
	home := &countingScreen{stubScreen: stubScreen{title: "home"}}
	levels := &countingScreen{stubScreen: stubScreen{title: "levels"}}
	r := New(home)
	r.Push(levels)

	r.Broadcast(screen.ScoresChangedMsg{})

	if home.seen != 1 || levels.seen != 1 {
		t.Errorf("expected each screen to see one message, got home=%d levels=%d", home.seen, levels.seen)
	}
}
