package scoreboard

import (
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bevuihoc/bevuihoc/internal/levels"
	"github.com/bevuihoc/bevuihoc/internal/logging"
	"github.com/bevuihoc/bevuihoc/internal/screen"
	"github.com/bevuihoc/bevuihoc/internal/store"
)

func TestScoreboard_ShowsEverySubject(t *testing.T) {
	s := New(screen.Env{}, map[string]int{string(levels.SubjectEnglish): 55})
	view := s.View(100, 40)
	for _, subj := range levels.Subjects() {
		if !strings.Contains(view, subj.Title()) {
			t.Errorf("missing subject %s", subj)
		}
	}
	if !strings.Contains(view, "55") {
		t.Error("expected English best score")
	}
}

func TestScoreboard_ResetFlow(t *testing.T) {
	st := store.OpenJSON(filepath.Join(t.TempDir(), "scores.json"), logging.Discard())
	if _, err := st.Record(t.Context(), "MATH", 30); err != nil {
		t.Fatal(err)
	}
	s := New(screen.Env{Scores: st}, map[string]int{"MATH": 30})

	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if !s.confirmReset || !s.HandlesEscape() {
		t.Fatal("expected reset prompt")
	}

	// Esc cancels.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.confirmReset {
		t.Fatal("expected prompt closed")
	}

	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected reset command")
	}
	done, ok := cmd().(resetDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("reset failed: %#v", done)
	}
	_, cmd = s.Update(done)
	if _, ok := cmd().(screen.ScoresChangedMsg); !ok {
		t.Error("expected a score refresh after reset")
	}

	scores, err := st.BestScores(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 0 {
		t.Errorf("scores not wiped: %v", scores)
	}
}
