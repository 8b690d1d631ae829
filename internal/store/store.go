// Package store handles SQLite persistence for submitted scores.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/uwtype/uwtype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the score table and fans out change
// notifications to subscribers after each successful insert.
type Store struct {
	db       *sql.DB
	notifier notifier
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			email TEXT NOT NULL,
			program TEXT,
			faculty TEXT,
			wpm INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_wpm ON scores(wpm);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_faculty ON scores(faculty);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_user_id ON scores(user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertScore appends one score record and notifies subscribers. Records
// are never updated or deleted. An empty program or faculty is stored as
// NULL so the faculty ranking filter excludes it.
func (s *Store) InsertScore(ctx context.Context, rec model.ScoreRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (user_id, email, program, faculty, wpm, accuracy, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID,
		rec.Email,
		nullIfEmpty(rec.Program),
		nullIfEmpty(rec.Faculty),
		rec.WPM,
		rec.Accuracy,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.notifier.notify()
	return id, nil
}

// TopScores returns the top n records by WPM descending. Ties keep the
// store's natural order (lower row id first, the earlier submission).
func (s *Store) TopScores(ctx context.Context, n int) ([]model.ScoreRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, email, COALESCE(program, ''), COALESCE(faculty, ''), wpm, accuracy, created_at
		 FROM scores
		 ORDER BY wpm DESC, id ASC
		 LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanRecords(rows)
}

// FacultyScores returns every record carrying a faculty value. The
// faculty ranking averages all contributors, not just current leaders.
func (s *Store) FacultyScores(ctx context.Context) ([]model.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, email, COALESCE(program, ''), COALESCE(faculty, ''), wpm, accuracy, created_at
		 FROM scores
		 WHERE faculty IS NOT NULL
		 ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanRecords(rows)
}

// BestWPM returns the user's personal best, or 0 with no rows.
func (s *Store) BestWPM(ctx context.Context, userID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(wpm) FROM scores WHERE user_id = ?`, userID).Scan(&best)
	if err != nil {
		return 0, err
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

func scanRecords(rows *sql.Rows) ([]model.ScoreRecord, error) {
	var records []model.ScoreRecord
	for rows.Next() {
		var rec model.ScoreRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Email, &rec.Program, &rec.Faculty, &rec.WPM, &rec.Accuracy, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
