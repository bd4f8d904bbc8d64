package usecase

import (
	"context"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/record/dto"
	recordin "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/port/in"
	"github.com/Aquid0/Prompt-Heatmap/internal/modules/record/service"
)

type Interactor struct {
	svc *service.RecordService
}

func NewInteractor(svc *service.RecordService) recordin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Show(ctx context.Context, input dto.ShowInput) (dto.RecordOutput, error) {
	doc, rec, err := i.svc.Show(ctx, input.DateKey)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return dto.RecordOutput{
		DateKey:  doc.DateKey,
		Path:     doc.Path,
		Answered: rec.Answered,
		Labels:   rec.Labels,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	result, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Indexed: result.Indexed, Skipped: result.Skipped}, nil
}

func (i *Interactor) Heatmap(ctx context.Context, input dto.HeatmapInput) (dto.HeatmapOutput, error) {
	h, err := i.svc.Heatmap(ctx, input.End, input.Weeks)
	if err != nil {
		return dto.HeatmapOutput{}, err
	}
	out := dto.HeatmapOutput{
		Start:      h.Start,
		End:        h.End,
		Weeks:      make([][7]dto.HeatmapCell, len(h.Weeks)),
		Max:        h.Max,
		Total:      h.Total,
		ActiveDays: h.ActiveDays,
		Streak:     h.Streak,
	}
	for w, week := range h.Weeks {
		for d, cell := range week {
			out.Weeks[w][d] = dto.HeatmapCell{Date: cell.Day, Count: cell.Count, Level: cell.Level, InRange: cell.InRange}
		}
	}
	return out, nil
}
