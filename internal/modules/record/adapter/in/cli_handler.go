package in

import (
	"context"
	"time"

	recorddto "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/dto"
	recordin "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/port/in"
)

type CLIHandler struct {
	usecase recordin.Usecase
}

func NewCLIHandler(usecase recordin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, dateKey string) (recorddto.RecordOutput, error) {
	return h.usecase.Show(ctx, recorddto.ShowInput{DateKey: dateKey})
}

func (h CLIHandler) Reindex(ctx context.Context) (recorddto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Heatmap(ctx context.Context, end time.Time, weeks int) (recorddto.HeatmapOutput, error) {
	return h.usecase.Heatmap(ctx, recorddto.HeatmapInput{End: end, Weeks: weeks})
}
