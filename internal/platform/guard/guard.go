package guard

import (
	"context"

	"golang.org/x/sync/semaphore"

	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
)

// Manager wraps a critical section that must never interleave with itself.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// Guard admits one holder at a time. Concurrent callers are rejected with
// ErrRunInProgress instead of queued.
type Guard struct {
	sem *semaphore.Weighted
}

func New() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

func (g *Guard) Within(ctx context.Context, fn func(context.Context) error) error {
	if !g.sem.TryAcquire(1) {
		return apperrors.ErrRunInProgress
	}
	defer g.sem.Release(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
