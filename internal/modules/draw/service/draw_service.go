package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	checklistdomain "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/domain"
	checklistout "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/port/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/domain"
	drawout "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/port/out"
	recorddomain "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/domain"
	recordout "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/port/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/clock"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/datekey"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/guard"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/id"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/logging"
)

// Dependencies collects the collaborators of a draw. Index, History, Opener
// and Lock are optional.
type Dependencies struct {
	Clock      clock.Clock
	IDs        id.Generator
	Rand       checklistdomain.Rand
	Format     datekey.Format
	CounterKey string
	Guard      guard.Manager
	Lock       drawout.RunLock
	Checklist  checklistout.ChecklistStore
	Records    recordout.RecordStore
	Index      recordout.RecordIndex
	History    drawout.History
	Opener     drawout.NoteOpener
	Logger     *zap.Logger
}

type DrawService struct {
	deps   Dependencies
	logger *zap.Logger
}

func NewDrawService(deps Dependencies) *DrawService {
	if deps.Guard == nil {
		deps.Guard = guard.New()
	}
	if deps.Rand == nil {
		deps.Rand = checklistdomain.DefaultRand
	}
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.IDs == nil {
		deps.IDs = id.NewULID()
	}
	return &DrawService{deps: deps, logger: logging.OrNop(deps.Logger).Named("draw")}
}

// Run performs one draw. At most one run is in flight per process and, through
// the run lock, per vault; a second caller gets ErrRunInProgress.
func (s *DrawService) Run(ctx context.Context) (domain.Pick, error) {
	var pick domain.Pick
	err := s.deps.Guard.Within(ctx, func(ctx context.Context) error {
		if s.deps.Lock != nil {
			release, err := s.deps.Lock.Acquire(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := release(); err != nil {
					s.logger.Warn("release run lock", zap.Error(err))
				}
			}()
		}
		var err error
		pick, err = s.draw(ctx)
		return err
	})
	if err != nil {
		return domain.Pick{}, err
	}
	return pick, nil
}

// draw computes both next documents before writing either, so a failure in
// selection or merging leaves the vault untouched.
func (s *DrawService) draw(ctx context.Context) (domain.Pick, error) {
	if err := s.deps.Records.EnsureFolder(ctx); err != nil {
		return domain.Pick{}, fmt.Errorf("record folder: %w", err)
	}
	checklist, err := s.deps.Checklist.Load(ctx)
	if err != nil {
		return domain.Pick{}, err
	}
	selection, err := checklistdomain.Pick(checklist.Text, s.deps.Rand)
	if err != nil {
		return domain.Pick{}, err
	}
	s.logger.Debug("prompt drawn", zap.Int("line", selection.Entry.LineIndex), zap.String("label", selection.Entry.Label))

	now := s.deps.Clock.Now()
	dateKey := s.deps.Format.Render(now)
	record, exists, err := s.deps.Records.Load(ctx, dateKey)
	if err != nil {
		return domain.Pick{}, err
	}
	var existing *string
	if exists {
		existing = &record.Text
	}
	merge, err := recorddomain.Apply(existing, selection.Entry.Label, s.deps.CounterKey)
	if err != nil {
		return domain.Pick{}, fmt.Errorf("record %s: %w", record.Path, err)
	}
	s.logger.Debug("record merged", zap.String("path", record.Path), zap.Bool("new", merge.IsNew), zap.Int("answered", merge.Answered))

	updated := checklist
	updated.Text = selection.UpdatedText
	if err := s.deps.Checklist.Save(ctx, updated); err != nil {
		return domain.Pick{}, err
	}
	record.Text = merge.Text
	if err := s.deps.Records.Save(ctx, record); err != nil {
		if rbErr := s.deps.Checklist.Save(context.WithoutCancel(ctx), checklist); rbErr != nil {
			s.logger.Error("restore checklist after failed record write",
				zap.String("path", checklist.Path), zap.Error(rbErr))
		}
		return domain.Pick{}, err
	}

	pick := domain.Pick{
		ID:         s.deps.IDs.New(),
		Label:      selection.Entry.Label,
		LineIndex:  selection.Entry.LineIndex,
		DateKey:    dateKey,
		RecordPath: record.Path,
		Answered:   merge.Answered,
		IsNew:      merge.IsNew,
		PickedAt:   now,
	}
	s.project(ctx, pick, merge.Text)
	return pick, nil
}

// project mirrors a completed draw into the sqlite index and history.
// Failures only warn.
func (s *DrawService) project(ctx context.Context, pick domain.Pick, recordText string) {
	if s.deps.Index != nil {
		prompts := 0
		if rec, err := recorddomain.Parse(recordText, s.deps.CounterKey); err == nil {
			prompts = len(rec.Labels)
		}
		entry := recorddomain.IndexEntry{
			DateKey:   pick.DateKey,
			Day:       pick.PickedAt,
			Answered:  pick.Answered,
			Prompts:   prompts,
			Path:      pick.RecordPath,
			UpdatedAt: pick.PickedAt,
		}
		if err := s.deps.Index.Upsert(ctx, entry); err != nil {
			s.logger.Warn("update record index", zap.String("date_key", pick.DateKey), zap.Error(err))
		}
	}
	if s.deps.History != nil {
		if err := s.deps.History.Append(ctx, pick); err != nil {
			s.logger.Warn("append pick history", zap.String("pick_id", pick.ID), zap.Error(err))
		}
	}
}

// Open hands the record note to the operating system.
func (s *DrawService) Open(ctx context.Context, pick domain.Pick) error {
	if s.deps.Opener == nil {
		return fmt.Errorf("note opener is not configured")
	}
	return s.deps.Opener.Open(ctx, pick.RecordPath)
}

func (s *DrawService) History(ctx context.Context, limit int) ([]domain.Pick, error) {
	if s.deps.History == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return s.deps.History.Recent(ctx, limit)
}
