package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	migrate "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/charmbracelet/log"

	"github.com/bevuihoc/bevuihoc/ent/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const highScores = "high_scores"

// SQLite keeps best scores in a high_scores table whose columns come from
// the HighScore ent schema.
type SQLite struct {
	db     *sql.DB
	drv    *entsql.Driver
	logger *log.Logger
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens the database at dsn, applies pragmas and migrates the
// schema.
func OpenSQLite(dsn string, logger *log.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &SQLite{db: db, drv: entsql.OpenDB(dialect.SQLite, db), logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		s.drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	logger.Debug("score database opened", "path", dsn)
	return s, nil
}

// highScoresTable describes the table for the migrator: an auto-increment
// id followed by the schema fields.
func highScoresTable() *migrate.Table {
	id := &migrate.Column{Name: "id", Type: field.TypeInt, Increment: true}
	cols := []*migrate.Column{id}
	for _, f := range (schema.HighScore{}).Fields() {
		d := f.Descriptor()
		cols = append(cols, &migrate.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
		})
	}
	return &migrate.Table{Name: highScores, Columns: cols, PrimaryKey: []*migrate.Column{id}}
}

func (s *SQLite) migrate(ctx context.Context) error {
	m, err := migrate.NewMigrate(s.drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, highScoresTable())
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

func (s *SQLite) BestScores(ctx context.Context) (map[string]int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("subject", "score").
		From(entsql.Table(highScores)).
		Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]int)
	for rows.Next() {
		var (
			subject string
			score   int
		)
		if err := rows.Scan(&subject, &score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores[subject] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return scores, nil
}

func (s *SQLite) Best(ctx context.Context, subject string) (int, error) {
	return best(ctx, s.drv, subject)
}

func best(ctx context.Context, q dialect.ExecQuerier, subject string) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("score").
		From(entsql.Table(highScores)).
		Where(entsql.EQ("subject", subject)).
		Query()
	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("query best score: %w", err)
	}
	defer rows.Close()

	var score int
	if rows.Next() {
		if err := rows.Scan(&score); err != nil {
			return 0, fmt.Errorf("scan best score: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("query best score: %w", err)
	}
	return score, nil
}

// Record compares and writes inside one transaction.
func (s *SQLite) Record(ctx context.Context, subject string, score int) (bool, error) {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	current, err := best(ctx, tx, subject)
	if err != nil {
		return false, err
	}
	if score <= current {
		return false, nil
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(highScores).
		Columns("subject", "score", "updated_at").
		Values(subject, score, time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("subject"), entsql.ResolveWithNewValues()).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return false, fmt.Errorf("save score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("new best score", "subject", subject, "score", score, "previous", current)
	return true, nil
}

func (s *SQLite) Reset(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(highScores).Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	s.logger.Info("scores reset")
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.drv.Close()
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
