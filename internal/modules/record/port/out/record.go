package out

import (
	"context"
	"time"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/record/domain"
)

// RecordStore addresses daily record notes by date key inside the record folder.
type RecordStore interface {
	Path(dateKey string) string
	// Load reports false, with no error, when the note does not exist.
	Load(ctx context.Context, dateKey string) (domain.Document, bool, error)
	Save(ctx context.Context, doc domain.Document) error
	EnsureFolder(ctx context.Context) error
	List(ctx context.Context) ([]domain.Document, error)
}

type RecordIndex interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, entry domain.IndexEntry) error
	// Days sums answered counts per day (domain.DayLayout) in [from, to].
	Days(ctx context.Context, from, to time.Time) (map[string]int, error)
}
