package in

import (
	"context"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/dto"
)

type Usecase interface {
	Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.PickOutput, error)
}
