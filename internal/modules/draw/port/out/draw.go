package out

import (
	"context"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/domain"
)

// RunLock excludes draws running in other processes against the same vault.
type RunLock interface {
	Acquire(ctx context.Context) (release func() error, err error)
}

type History interface {
	Append(ctx context.Context, pick domain.Pick) error
	Recent(ctx context.Context, limit int) ([]domain.Pick, error)
}

type NoteOpener interface {
	Open(ctx context.Context, target string) error
}
