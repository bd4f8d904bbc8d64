package in

import (
	"context"

	drawdto "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/dto"
	drawin "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/port/in"
)

type CLIHandler struct {
	usecase drawin.Usecase
}

func NewCLIHandler(usecase drawin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Run(ctx context.Context, open bool) (drawdto.RunOutput, error) {
	return h.usecase.Run(ctx, drawdto.RunInput{Open: open})
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]drawdto.PickOutput, error) {
	return h.usecase.History(ctx, drawdto.HistoryInput{Limit: limit})
}
