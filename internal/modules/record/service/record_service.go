package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/record/domain"
	recordout "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/port/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/clock"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/datekey"
	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/logging"
)

type RecordService struct {
	clock      clock.Clock
	store      recordout.RecordStore
	index      recordout.RecordIndex
	format     datekey.Format
	counterKey string
	logger     *zap.Logger
}

type ReindexResult struct {
	Indexed int
	Skipped int
}

func NewRecordService(
	clock clock.Clock,
	store recordout.RecordStore,
	index recordout.RecordIndex,
	format datekey.Format,
	counterKey string,
	logger *zap.Logger,
) *RecordService {
	return &RecordService{
		clock:      clock,
		store:      store,
		index:      index,
		format:     format,
		counterKey: counterKey,
		logger:     logging.OrNop(logger).Named("record"),
	}
}

// Show reads the record stored under dateKey, or today's record when dateKey is empty.
func (s *RecordService) Show(ctx context.Context, dateKey string) (domain.Document, domain.Record, error) {
	if dateKey == "" {
		dateKey = s.format.Render(s.clock.Now())
	}
	doc, ok, err := s.store.Load(ctx, dateKey)
	if err != nil {
		return domain.Document{}, domain.Record{}, err
	}
	if !ok {
		return domain.Document{}, domain.Record{}, fmt.Errorf("record %s: %w", doc.Path, apperrors.ErrNotFound)
	}
	rec, err := domain.Parse(doc.Text, s.counterKey)
	if err != nil {
		return domain.Document{}, domain.Record{}, fmt.Errorf("record %s: %w", doc.Path, err)
	}
	return doc, rec, nil
}

// Reindex rebuilds the index from the record folder. Notes whose name is not
// a date key, or whose header is malformed, are skipped with a warning.
func (s *RecordService) Reindex(ctx context.Context) (ReindexResult, error) {
	if s.index == nil {
		return ReindexResult{}, fmt.Errorf("record index is not configured")
	}
	docs, err := s.store.List(ctx)
	if err != nil {
		return ReindexResult{}, err
	}
	if err := s.index.Reset(ctx); err != nil {
		return ReindexResult{}, err
	}
	now := s.clock.Now()
	result := ReindexResult{}
	for _, doc := range docs {
		day, err := s.format.Parse(doc.DateKey)
		if err != nil {
			s.logger.Warn("skipping note without a date key name", zap.String("path", doc.Path), zap.Error(err))
			result.Skipped++
			continue
		}
		rec, err := domain.Parse(doc.Text, s.counterKey)
		if err != nil {
			if !errors.Is(err, apperrors.ErrMalformedRecord) {
				return result, err
			}
			s.logger.Warn("skipping malformed record", zap.String("path", doc.Path), zap.Error(err))
			result.Skipped++
			continue
		}
		entry := domain.IndexEntry{
			DateKey:   doc.DateKey,
			Day:       day,
			Answered:  rec.Answered,
			Prompts:   len(rec.Labels),
			Path:      doc.Path,
			UpdatedAt: now,
		}
		if err := s.index.Upsert(ctx, entry); err != nil {
			return result, err
		}
		result.Indexed++
	}
	s.logger.Debug("record index rebuilt", zap.Int("indexed", result.Indexed), zap.Int("skipped", result.Skipped))
	return result, nil
}

// Heatmap reads answered counts from the index. A zero end means today.
func (s *RecordService) Heatmap(ctx context.Context, end time.Time, weeks int) (domain.Heatmap, error) {
	if s.index == nil {
		return domain.Heatmap{}, fmt.Errorf("record index is not configured")
	}
	if end.IsZero() {
		end = s.clock.Now()
	}
	if weeks < 1 {
		weeks = domain.DefaultWeeks
	}
	counts, err := s.index.Days(ctx, time.Time{}, end)
	if err != nil {
		return domain.Heatmap{}, err
	}
	return domain.BuildHeatmap(end, weeks, counts), nil
}
