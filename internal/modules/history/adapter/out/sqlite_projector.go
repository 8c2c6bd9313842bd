package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteIndexProjector struct {
	db *sql.DB
}

func NewSQLiteIndexProjector(dbPath string) (historyout.IndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteIndexProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteIndexProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  identity TEXT NOT NULL,
  note TEXT,
  duration_minutes INTEGER NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT,
  outcome TEXT NOT NULL,
  focused_minutes INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) Upsert(ctx context.Context, entry domain.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	const stmt = `
INSERT INTO sessions (id, identity, note, duration_minutes, started_at, ended_at, outcome, focused_minutes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  identity=excluded.identity,
  note=excluded.note,
  duration_minutes=excluded.duration_minutes,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  outcome=excluded.outcome,
  focused_minutes=excluded.focused_minutes;
`
	endedAt := ""
	if !entry.EndedAt.IsZero() {
		endedAt = entry.EndedAt.Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx, stmt,
		entry.SessionID,
		entry.Identity,
		entry.Note,
		entry.Minutes,
		entry.StartedAt.Format(timeLayout),
		endedAt,
		entry.Outcome,
		entry.FocusedMinutes(),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) List(ctx context.Context) ([]domain.Entry, error) {
	const query = `
SELECT id, identity, note, duration_minutes, started_at, ended_at, outcome
FROM sessions
ORDER BY started_at DESC
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.Entry{}
	for rows.Next() {
		var (
			entry              domain.Entry
			note               sql.NullString
			startedAt, endedAt string
		)
		if err := rows.Scan(&entry.SessionID, &entry.Identity, &note, &entry.Minutes, &startedAt, &endedAt, &entry.Outcome); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		entry.Note = note.String
		if entry.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", startedAt, err)
		}
		if endedAt != "" {
			if entry.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
				return nil, fmt.Errorf("parse ended_at %q: %w", endedAt, err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return entries, nil
}

func (s *SQLiteIndexProjector) Stats(ctx context.Context) (domain.Stats, error) {
	const query = `
SELECT
  COUNT(*),
  COALESCE(SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN outcome = 'cancelled' THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN outcome = 'pending' THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(focused_minutes), 0)
FROM sessions
`
	stats := domain.Stats{}
	row := s.db.QueryRowContext(ctx, query)
	if err := row.Scan(&stats.Total, &stats.Completed, &stats.Cancelled, &stats.Pending, &stats.FocusedMinutes); err != nil {
		return domain.Stats{}, fmt.Errorf("session stats: %w", err)
	}
	return stats, nil
}
