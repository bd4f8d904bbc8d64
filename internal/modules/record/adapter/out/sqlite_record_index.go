package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/record/domain"
	recordout "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/port/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/sqlite"
)

type SQLiteRecordIndex struct {
	db *sql.DB
}

func NewSQLiteRecordIndex(ctx context.Context, db *sql.DB) (recordout.RecordIndex, error) {
	index := &SQLiteRecordIndex{db: db}
	if err := index.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *SQLiteRecordIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS records (
  date_key TEXT PRIMARY KEY,
  day TEXT NOT NULL,
  answered INTEGER NOT NULL,
  prompts INTEGER NOT NULL,
  path TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS records_day ON records(day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("reset records: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) Upsert(ctx context.Context, entry domain.IndexEntry) error {
	const stmt = `
INSERT INTO records (date_key, day, answered, prompts, path, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(date_key) DO UPDATE SET
  day=excluded.day,
  answered=excluded.answered,
  prompts=excluded.prompts,
  path=excluded.path,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.DateKey,
		domain.Day(entry.Day).Format(domain.DayLayout),
		entry.Answered,
		entry.Prompts,
		entry.Path,
		entry.UpdatedAt.Format(sqlite.TimeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (s *SQLiteRecordIndex) Days(ctx context.Context, from, to time.Time) (map[string]int, error) {
	lower := ""
	if !from.IsZero() {
		lower = domain.Day(from).Format(domain.DayLayout)
	}
	upper := domain.Day(to).Format(domain.DayLayout)
	rows, err := s.db.QueryContext(ctx,
		`SELECT day, SUM(answered) FROM records WHERE day >= ? AND day <= ? GROUP BY day`,
		lower, upper,
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			day   string
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("scan record day: %w", err)
		}
		out[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
