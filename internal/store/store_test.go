package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bevuihoc/bevuihoc/internal/logging"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(filepath.Join(dir, "scores.db"), logging.Discard())
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		BackendSQLite: sq,
		BackendJSON:   OpenJSON(filepath.Join(dir, "scores.json"), logging.Discard()),
	}
}

func TestRecord_ImprovementsOnly(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			steps := []struct {
				score    int
				improved bool
				best     int
			}{
				{0, false, 0},
				{40, true, 40},
				{30, false, 40},
				{40, false, 40},
				{90, true, 90},
			}
			for i, st := range steps {
				improved, err := s.Record(ctx, "MATH", st.score)
				if err != nil {
					t.Fatalf("step %d: Record: %v", i, err)
				}
				if improved != st.improved {
					t.Errorf("step %d: improved = %v, want %v", i, improved, st.improved)
				}
				got, err := s.Best(ctx, "MATH")
				if err != nil {
					t.Fatalf("step %d: Best: %v", i, err)
				}
				if got != st.best {
					t.Errorf("step %d: best = %d, want %d", i, got, st.best)
				}
			}
		})
	}
}

func TestBestScores_PerSubject(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := s.BestScores(ctx)
			if err != nil {
				t.Fatalf("BestScores: %v", err)
			}
			if empty == nil || len(empty) != 0 {
				t.Fatalf("expected empty non-nil map, got %v", empty)
			}

			s.Record(ctx, "MATH", 50)
			s.Record(ctx, "ENGLISH", 70)
			s.Record(ctx, "MATH", 20)

			scores, err := s.BestScores(ctx)
			if err != nil {
				t.Fatalf("BestScores: %v", err)
			}
			want := map[string]int{"MATH": 50, "ENGLISH": 70}
			if len(scores) != len(want) {
				t.Fatalf("scores = %v, want %v", scores, want)
			}
			for k, v := range want {
				if scores[k] != v {
					t.Errorf("scores[%s] = %d, want %d", k, scores[k], v)
				}
			}
		})
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			s.Record(ctx, "TYPING", 300)
			if err := s.Reset(ctx); err != nil {
				t.Fatalf("Reset: %v", err)
			}
			scores, err := s.BestScores(ctx)
			if err != nil {
				t.Fatalf("BestScores: %v", err)
			}
			if len(scores) != 0 {
				t.Errorf("expected no scores after reset, got %v", scores)
			}
			// Resetting an empty store is fine.
			if err := s.Reset(ctx); err != nil {
				t.Errorf("second Reset: %v", err)
			}
		})
	}
}

func TestJSONFile_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	s := OpenJSON(path, logging.Discard())
	ctx := context.Background()

	s.Record(ctx, "VIETNAMESE", 40)
	s.Record(ctx, "CLICKING", 15)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("file is not a JSON object: %v\n%s", err, data)
	}
	if got["VIETNAMESE"] != 40 || got["CLICKING"] != 15 || len(got) != 2 {
		t.Errorf("file content = %v", got)
	}

	// A second store over the same file sees the saved scores.
	again := OpenJSON(path, logging.Discard())
	if best, _ := again.Best(ctx, "VIETNAMESE"); best != 40 {
		t.Errorf("reopened best = %d, want 40", best)
	}
}

func TestJSONFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := OpenJSON(path, logging.Discard())
	if _, err := s.BestScores(context.Background()); err == nil {
		t.Error("expected error for corrupt file")
	}
	if _, err := s.Record(context.Background(), "MATH", 10); err == nil {
		t.Error("expected Record to refuse overwriting a corrupt file")
	}
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	ctx := context.Background()

	s, err := OpenSQLite(path, logging.Discard())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Record(ctx, "PRESCHOOL_COLORS", 80); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path, logging.Discard())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if best, _ := s.Best(ctx, "PRESCHOOL_COLORS"); best != 80 {
		t.Errorf("best = %d, want 80", best)
	}
}

func TestSQLite_PragmasApplied(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"), logging.Discard())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSQLite_TableFollowsSchema(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"), logging.Discard())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	rows, err := s.DB().Query("SELECT name FROM pragma_table_info('high_scores')")
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()
	var got []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, name)
	}
	want := []string{"id", "subject", "score", "updated_at"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("columns = %v, want %v", got, want)
	}

	ctx := context.Background()
	if _, err := s.Record(ctx, "MATH", 40); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := s.Record(ctx, "MATH", 90); err != nil {
		t.Fatalf("Record: %v", err)
	}
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM high_scores WHERE subject = 'MATH'").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("rows for MATH = %d, want 1 (upsert on subject)", n)
	}
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendJSON, filepath.Join(dir, "nested", "s.json"), nil)
	if err != nil {
		t.Fatalf("Open json: %v", err)
	}
	if _, ok := s.(*JSONFile); !ok {
		t.Errorf("expected *JSONFile, got %T", s)
	}
	if _, err := s.Record(context.Background(), "MATH", 1); err != nil {
		t.Errorf("Record into nested dir: %v", err)
	}

	s, err = Open(BackendSQLite, filepath.Join(dir, "s.db"), nil)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLite); !ok {
		t.Errorf("expected *SQLite, got %T", s)
	}

	if _, err := Open("redis", filepath.Join(dir, "x"), nil); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestDefaultPath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv(EnvDB, "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultPath(BackendSQLite)
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if want := filepath.Join(dataHome, "bevuihoc", "scores.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}

	got, _ = DefaultPath(BackendJSON)
	if filepath.Base(got) != "scores.json" {
		t.Errorf("json path = %q", got)
	}

	custom := filepath.Join(t.TempDir(), "x", "mine.db")
	t.Setenv(EnvDB, custom)
	got, err = DefaultPath(BackendSQLite)
	if err != nil || got != custom {
		t.Errorf("DefaultPath with %s = %q, %v", EnvDB, got, err)
	}
}
