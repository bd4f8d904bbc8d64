package out

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/record/domain"
	recordout "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/port/out"
	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/slug"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/vault"
)

type VaultRecordStore struct {
	fs     *vault.FS
	folder string
}

func NewVaultRecordStore(fs *vault.FS, folder string) recordout.RecordStore {
	return &VaultRecordStore{fs: fs, folder: vault.NormalizePath(folder)}
}

func (s *VaultRecordStore) Path(dateKey string) string {
	return path.Join(s.folder, slug.FileName(dateKey)+domain.Extension)
}

func (s *VaultRecordStore) Load(ctx context.Context, dateKey string) (domain.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, false, err
	}
	doc := domain.Document{Path: s.Path(dateKey), DateKey: dateKey}
	text, err := s.fs.ReadText(doc.Path)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return doc, false, nil
		}
		return domain.Document{}, false, fmt.Errorf("record note: %w", err)
	}
	doc.Text = text
	return doc, true, nil
}

func (s *VaultRecordStore) Save(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.Path == "" {
		doc.Path = s.Path(doc.DateKey)
	}
	return s.fs.WriteText(doc.Path, doc.Text)
}

func (s *VaultRecordStore) EnsureFolder(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fs.EnsureFolder(s.folder)
}

func (s *VaultRecordStore) List(ctx context.Context) ([]domain.Document, error) {
	paths, err := s.fs.List(s.folder, domain.Extension)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := s.fs.ReadText(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, domain.Document{
			Path:    p,
			DateKey: strings.TrimSuffix(path.Base(p), domain.Extension),
			Text:    text,
		})
	}
	return docs, nil
}
