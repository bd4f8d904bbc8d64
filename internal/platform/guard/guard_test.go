package guard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/guard"
)

func TestGuardRejectsReentry(t *testing.T) {
	t.Parallel()
	g := guard.New()
	err := g.Within(context.Background(), func(ctx context.Context) error {
		return g.Within(ctx, func(context.Context) error {
			t.Fatal("nested run must not start")
			return nil
		})
	})
	assert.True(t, errors.Is(err, apperrors.ErrRunInProgress), "got %v", err)
}

func TestGuardReleasesOnFailureAndPanic(t *testing.T) {
	t.Parallel()
	g := guard.New()
	boom := errors.New("boom")
	assert.ErrorIs(t, g.Within(context.Background(), func(context.Context) error { return boom }), boom)

	assert.Panics(t, func() {
		_ = g.Within(context.Background(), func(context.Context) error { panic("bad") })
	})

	ran := false
	require.NoError(t, g.Within(context.Background(), func(context.Context) error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestGuardHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := guard.New().Within(ctx, func(context.Context) error {
		t.Fatal("must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
