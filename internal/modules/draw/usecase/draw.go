package usecase

import (
	"context"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/domain"
	"github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/dto"
	drawin "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/port/in"
	"github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/service"
)

type Interactor struct {
	svc *service.DrawService
}

func NewInteractor(svc *service.DrawService) drawin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	pick, err := i.svc.Run(ctx)
	if err != nil {
		return dto.RunOutput{}, err
	}
	out := dto.RunOutput{
		PickID:     pick.ID,
		Label:      pick.Label,
		Line:       pick.LineIndex + 1,
		DateKey:    pick.DateKey,
		RecordPath: pick.RecordPath,
		Answered:   pick.Answered,
		IsNew:      pick.IsNew,
		Message:    pick.Message(),
	}
	if input.Open {
		// The draw already succeeded; an opener failure is reported, not undone.
		if err := i.svc.Open(ctx, pick); err != nil {
			return out, err
		}
		out.Opened = true
	}
	return out, nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.PickOutput, error) {
	picks, err := i.svc.History(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PickOutput, 0, len(picks))
	for _, p := range picks {
		out = append(out, toOutput(p))
	}
	return out, nil
}

func toOutput(p domain.Pick) dto.PickOutput {
	return dto.PickOutput{
		ID:         p.ID,
		Label:      p.Label,
		DateKey:    p.DateKey,
		RecordPath: p.RecordPath,
		Answered:   p.Answered,
		IsNew:      p.IsNew,
		PickedAt:   p.PickedAt,
	}
}
