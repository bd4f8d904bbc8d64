package out

import (
	"context"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/domain"
)

// ChecklistStore reads and rewrites the prompt checklist note. Load fails with
// ErrNotFound, ErrNotAFile or ErrEmptyChecklist before any write is attempted.
type ChecklistStore interface {
	Load(ctx context.Context) (domain.Document, error)
	Save(ctx context.Context, doc domain.Document) error
}
