package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drawout "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/adapter/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/clock"
	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
)

var now = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

func TestFileRunLockExcludesSecondHolder(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".prompt-heatmap", "run.lock")
	lock := drawout.NewFileRunLock(path, clock.Fixed(now), time.Minute)

	release, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	_, err = lock.Acquire(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrRunInProgress), "got %v", err)

	require.NoError(t, release())
	require.NoError(t, release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	release, err = lock.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, release())
}

func TestFileRunLockReclaimsStaleLock(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "run.lock")
	require.NoError(t, os.WriteFile(path, []byte(`{"pid":1,"started_at":"2026-10-17T07:00:00Z"}`), 0o644))

	lock := drawout.NewFileRunLock(path, clock.Fixed(now), 10*time.Minute)
	release, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"started_at":"2026-10-17T08:00:00Z"`)
	require.NoError(t, release())
}

func TestFileRunLockHonoursFreshLock(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "run.lock")
	require.NoError(t, os.WriteFile(path, []byte(`{"pid":42,"started_at":"2026-10-17T07:55:00Z"}`), 0o644))

	lock := drawout.NewFileRunLock(path, clock.Fixed(now), 10*time.Minute)
	_, err := lock.Acquire(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRunInProgress))
	assert.Contains(t, err.Error(), "pid 42")
}

func TestFileRunLockReleaseLeavesForeignLock(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "run.lock")
	lock := drawout.NewFileRunLock(path, clock.Fixed(now), time.Minute)

	release, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `"token":"[0-9A-Z]{26}"`, string(payload))

	// Another run reclaimed the lock after ours went stale.
	foreign := []byte(`{"token":"01JAFOREIGNRUN0000000000000","pid":7,"started_at":"2026-10-17T08:00:00Z"}`)
	require.NoError(t, os.WriteFile(path, foreign, 0o644))

	require.NoError(t, release())
	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, foreign, current)
}

func TestFileRunLockAcquisitionsUseDistinctTokens(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "run.lock")
	lock := drawout.NewFileRunLock(path, clock.Fixed(now), time.Minute)

	release, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, release())

	release, err = lock.Acquire(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	require.NoError(t, release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
