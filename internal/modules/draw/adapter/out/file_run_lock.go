package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/domain"
	drawout "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/port/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/clock"
	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/id"
)

// DefaultStaleAfter bounds how long a lock left behind by a crashed run blocks
// new draws.
const DefaultStaleAfter = 10 * time.Minute

type FileRunLock struct {
	path       string
	clock      clock.Clock
	ids        id.Generator
	staleAfter time.Duration
}

func NewFileRunLock(path string, clk clock.Clock, staleAfter time.Duration) drawout.RunLock {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &FileRunLock{path: path, clock: clk, ids: id.NewULID(), staleAfter: staleAfter}
}

func (l *FileRunLock) Acquire(ctx context.Context) (func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w: %v", apperrors.ErrIO, err)
	}
	token := l.ids.New()
	for attempt := 0; ; attempt++ {
		err := l.create(token)
		if err == nil {
			return func() error { return l.release(token) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("create run lock: %w: %v", apperrors.ErrIO, err)
		}
		holder, payload, stale := l.inspect()
		if !stale || attempt > 0 {
			return nil, fmt.Errorf("%w: held by pid %d since %s", apperrors.ErrRunInProgress, holder.PID, holder.StartedAt.Format(time.RFC3339))
		}
		if err := l.removeIf(payload); err != nil {
			return nil, fmt.Errorf("remove stale run lock: %w: %v", apperrors.ErrIO, err)
		}
	}
}

func (l *FileRunLock) create(token string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(domain.LockInfo{Token: token, PID: os.Getpid(), StartedAt: l.clock.Now()})
	if err == nil {
		_, err = f.Write(payload)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(l.path)
		return fmt.Errorf("write run lock: %w", err)
	}
	return nil
}

// inspect reads the current holder and the raw lock contents. A lock is
// stale once its holder started longer than staleAfter ago; an unreadable
// lock falls back to its mtime.
func (l *FileRunLock) inspect() (domain.LockInfo, []byte, bool) {
	holder := domain.LockInfo{}
	payload, err := os.ReadFile(l.path)
	if err == nil && json.Unmarshal(payload, &holder) == nil && !holder.StartedAt.IsZero() {
		return holder, payload, l.clock.Now().Sub(holder.StartedAt) > l.staleAfter
	}
	info, statErr := os.Stat(l.path)
	if statErr != nil {
		return holder, payload, errors.Is(statErr, fs.ErrNotExist)
	}
	holder.StartedAt = info.ModTime()
	return holder, payload, l.clock.Now().Sub(info.ModTime()) > l.staleAfter
}

// removeIf deletes the lock only while it still holds the inspected
// contents, so a lock another process just took over is left alone.
func (l *FileRunLock) removeIf(payload []byte) error {
	current, err := os.ReadFile(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	case !bytes.Equal(current, payload):
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// release removes the lock if it still carries token.
func (l *FileRunLock) release(token string) error {
	holder := domain.LockInfo{}
	payload, err := os.ReadFile(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read run lock: %w", err)
	}
	if json.Unmarshal(payload, &holder) != nil || holder.Token != token {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove run lock: %w", err)
	}
	return nil
}
