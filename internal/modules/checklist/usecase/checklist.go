package usecase

import (
	"context"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/dto"
	checklistin "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/port/in"
	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/service"
)

type Interactor struct {
	svc *service.ChecklistService
}

func NewInteractor(svc *service.ChecklistService) checklistin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	doc, stats, err := i.svc.Status(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return dto.StatusOutput{
		Path:     doc.Path,
		Lines:    stats.Lines,
		Pending:  stats.Pending,
		Done:     stats.Done,
		Eligible: stats.Eligible,
	}, nil
}

func (i *Interactor) Pending(ctx context.Context) (dto.PendingOutput, error) {
	doc, entries, err := i.svc.Pending(ctx)
	if err != nil {
		return dto.PendingOutput{}, err
	}
	out := dto.PendingOutput{Path: doc.Path, Entries: make([]dto.EntryOutput, 0, len(entries))}
	for _, entry := range entries {
		out.Entries = append(out.Entries, dto.EntryOutput{Line: entry.LineIndex + 1, Label: entry.Label})
	}
	return out, nil
}
