package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/domain"
	checklistout "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/port/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/logging"
)

type ChecklistService struct {
	store  checklistout.ChecklistStore
	logger *zap.Logger
}

func NewChecklistService(store checklistout.ChecklistStore, logger *zap.Logger) *ChecklistService {
	return &ChecklistService{store: store, logger: logging.OrNop(logger).Named("checklist")}
}

func (s *ChecklistService) Status(ctx context.Context) (domain.Document, domain.Stats, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return domain.Document{}, domain.Stats{}, err
	}
	stats := domain.Summarize(doc.Text)
	s.logger.Debug("checklist summarized",
		zap.String("path", doc.Path),
		zap.Int("pending", stats.Pending),
		zap.Int("eligible", stats.Eligible),
	)
	return doc, stats, nil
}

func (s *ChecklistService) Pending(ctx context.Context) (domain.Document, []domain.Entry, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return domain.Document{}, nil, err
	}
	return doc, domain.Eligible(doc.Text), nil
}
