package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/bevuihoc/bevuihoc/internal/router"
	"github.com/bevuihoc/bevuihoc/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestSpellsNameBeforeBanner(t *testing.T) {
	w, _ := newWelcome()
	if strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should wait for the banner")
	}

	sendTicks(w, 2)
	view := w.View(80, 24)
	if !strings.Contains(view, "B") || !strings.Contains(view, "É") {
		t.Errorf("expected the first letters, got %q", view)
	}

	sendTicks(w, bannerAt)
	if !strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should show with the banner")
	}
}

func TestSettled(t *testing.T) {
	w, calls := newWelcome()
	sendTicks(w, hintAt-1)
	if w.Settled() {
		t.Error("should not be settled before the hint")
	}
	if cmd := sendTicks(w, 1); cmd == nil {
		t.Error("ticks keep going while waiting for a key")
	}
	if !w.Settled() {
		t.Error("expected the intro to be settled")
	}
	if *calls != 0 {
		t.Errorf("home should not be built without a keypress, got %d calls", *calls)
	}
}

func TestAnyKeyReplacesWithHome(t *testing.T) {
	w, calls := newWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should leave the welcome screen")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replacement screen should not be nil")
	}
	if *calls != 1 {
		t.Errorf("home should be built once, got %d", *calls)
	}

	if _, again := w.Update(tea.KeyPressMsg{Code: 'b'}); again != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("home should be built once, got %d", *calls)
	}
}

func TestTicksStopAfterLeaving(t *testing.T) {
	w, _ := newWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop once the home screen is requested")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(30); !strings.Contains(got, bannerCompact) {
		t.Errorf("expected compact banner at width 30, got %q", got)
	}
}
