package in

import (
	"context"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/record/dto"
)

type Usecase interface {
	Show(ctx context.Context, input dto.ShowInput) (dto.RecordOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	Heatmap(ctx context.Context, input dto.HeatmapInput) (dto.HeatmapOutput, error)
}
