package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checklistout "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/adapter/out"
	checklistin "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/port/in"
	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/service"
	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/usecase"
	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/vault"
)

func writeNote(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

func newInteractor(root string) checklistin.Usecase {
	store := checklistout.NewVaultChecklistStore(vault.New(root), "Prompts//Prompts.md")
	return usecase.NewInteractor(service.NewChecklistService(store, nil))
}

func TestStatusCountsCheckboxes(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeNote(t, root, "Prompts/Prompts.md", "# Prompts\n- [ ] rain\n- [x] fog\n- [ ]\n[X] snow\n")

	out, err := newInteractor(root).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Prompts/Prompts.md", out.Path)
	assert.Equal(t, 6, out.Lines)
	assert.Equal(t, 2, out.Pending)
	assert.Equal(t, 2, out.Done)
	assert.Equal(t, 1, out.Eligible)
}

func TestPendingListsOneBasedLines(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeNote(t, root, "Prompts/Prompts.md", "# Prompts\n\n- [ ] rain\n- [x] fog\n  - [ ] silence\n")

	out, err := newInteractor(root).Pending(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, 3, out.Entries[0].Line)
	assert.Equal(t, "rain", out.Entries[0].Label)
	assert.Equal(t, 5, out.Entries[1].Line)
	assert.Equal(t, "silence", out.Entries[1].Label)
}

func TestStatusReportsChecklistProblems(t *testing.T) {
	t.Parallel()

	missing := t.TempDir()
	_, err := newInteractor(missing).Status(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "got %v", err)

	folder := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(folder, "Prompts", "Prompts.md"), 0o755))
	_, err = newInteractor(folder).Status(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrNotAFile), "got %v", err)

	blank := t.TempDir()
	writeNote(t, blank, "Prompts/Prompts.md", "  \n\n")
	_, err = newInteractor(blank).Pending(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrEmptyChecklist), "got %v", err)
}
