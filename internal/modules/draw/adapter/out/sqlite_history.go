package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/domain"
	drawout "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/port/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/sqlite"
)

type SQLiteHistory struct {
	db *sql.DB
}

func NewSQLiteHistory(ctx context.Context, db *sql.DB) (drawout.History, error) {
	history := &SQLiteHistory{db: db}
	if err := history.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *SQLiteHistory) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS picks (
  id TEXT PRIMARY KEY,
  picked_at TEXT NOT NULL,
  label TEXT NOT NULL,
  line_index INTEGER NOT NULL,
  date_key TEXT NOT NULL,
  record_path TEXT NOT NULL,
  answered INTEGER NOT NULL,
  is_new INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create picks table: %w", err)
	}
	return nil
}

func (s *SQLiteHistory) Append(ctx context.Context, pick domain.Pick) error {
	const stmt = `
INSERT INTO picks (id, picked_at, label, line_index, date_key, record_path, answered, is_new)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		pick.ID,
		pick.PickedAt.UTC().Format(sqlite.TimeLayout),
		pick.Label,
		pick.LineIndex,
		pick.DateKey,
		pick.RecordPath,
		pick.Answered,
		pick.IsNew,
	)
	if err != nil {
		return fmt.Errorf("insert pick: %w", err)
	}
	return nil
}

// Recent lists picks newest first. Ids are ULIDs, so they break ties between
// picks made within the same second.
func (s *SQLiteHistory) Recent(ctx context.Context, limit int) ([]domain.Pick, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, picked_at, label, line_index, date_key, record_path, answered, is_new
FROM picks
ORDER BY picked_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	out := []domain.Pick{}
	for rows.Next() {
		var (
			pick     domain.Pick
			pickedAt string
		)
		if err := rows.Scan(&pick.ID, &pickedAt, &pick.Label, &pick.LineIndex, &pick.DateKey, &pick.RecordPath, &pick.Answered, &pick.IsNew); err != nil {
			return nil, fmt.Errorf("scan pick: %w", err)
		}
		pick.PickedAt, err = time.Parse(sqlite.TimeLayout, pickedAt)
		if err != nil {
			return nil, fmt.Errorf("parse picked_at %q: %w", pickedAt, err)
		}
		out = append(out, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate picks: %w", err)
	}
	return out, nil
}
