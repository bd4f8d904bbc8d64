package out

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/domain"
	checklistout "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/port/out"
	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/vault"
)

type VaultChecklistStore struct {
	fs   *vault.FS
	path string
}

func NewVaultChecklistStore(fs *vault.FS, path string) checklistout.ChecklistStore {
	return &VaultChecklistStore{fs: fs, path: vault.NormalizePath(path)}
}

func (s *VaultChecklistStore) Load(ctx context.Context) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	text, err := s.fs.ReadText(s.path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("prompt checklist: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.Document{}, fmt.Errorf("%s: %w", s.path, apperrors.ErrEmptyChecklist)
	}
	return domain.Document{Path: s.path, Text: text}, nil
}

func (s *VaultChecklistStore) Save(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.path
	if doc.Path != "" {
		path = doc.Path
	}
	return s.fs.WriteText(path, doc.Text)
}
