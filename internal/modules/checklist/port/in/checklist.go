package in

import (
	"context"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/dto"
)

type Usecase interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	Pending(ctx context.Context) (dto.PendingOutput, error)
}
