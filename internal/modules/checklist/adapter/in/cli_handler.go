package in

import (
	"context"

	checklistdto "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/dto"
	checklistin "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/port/in"
)

type CLIHandler struct {
	usecase checklistin.Usecase
}

func NewCLIHandler(usecase checklistin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (checklistdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Pending(ctx context.Context) (checklistdto.PendingOutput, error) {
	return h.usecase.Pending(ctx)
}
