package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	checklistinadapter "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/adapter/in"
	checklistoutadapter "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/adapter/out"
	checklistdomain "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/domain"
	checklistservice "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/service"
	checklistusecase "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/usecase"
	drawinadapter "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/adapter/in"
	drawoutadapter "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/adapter/out"
	drawservice "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/service"
	drawusecase "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/usecase"
	recordinadapter "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/adapter/in"
	recordoutadapter "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/adapter/out"
	recordservice "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/service"
	recordusecase "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/usecase"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/clock"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/config"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/guard"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/id"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/logging"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/sqlite"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/vault"
	uiapp "github.com/Aquid0/Prompt-Heatmap/internal/ui/app"
)

type App struct {
	Config       config.Config
	Logger       *zap.Logger
	ChecklistCLI checklistinadapter.CLIHandler
	RecordCLI    recordinadapter.CLIHandler
	DrawCLI      drawinadapter.CLIHandler

	db *sql.DB
}

// Options override the system collaborators; tests pin the clock and randomness.
type Options struct {
	Clock  clock.Clock
	Rand   checklistdomain.Rand
	Logger *zap.Logger
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		var err error
		logger, err = logging.New(cfg.Log, nil)
		if err != nil {
			return nil, err
		}
	}

	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	recordIndex, err := recordoutadapter.NewSQLiteRecordIndex(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new record index: %w", err)
	}
	history, err := drawoutadapter.NewSQLiteHistory(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new pick history: %w", err)
	}

	fs := vault.New(cfg.VaultPath)
	format := cfg.DateKey()
	checklistStore := checklistoutadapter.NewVaultChecklistStore(fs, cfg.ChecklistPath)
	recordStore := recordoutadapter.NewVaultRecordStore(fs, cfg.RecordFolderPath)

	checklistUC := checklistusecase.NewInteractor(checklistservice.NewChecklistService(checklistStore, logger))
	recordUC := recordusecase.NewInteractor(recordservice.NewRecordService(
		clk, recordStore, recordIndex, format, cfg.AnsweredCounterField, logger,
	))
	drawUC := drawusecase.NewInteractor(drawservice.NewDrawService(drawservice.Dependencies{
		Clock:      clk,
		IDs:        id.NewULID(),
		Rand:       opts.Rand,
		Format:     format,
		CounterKey: cfg.AnsweredCounterField,
		Guard:      guard.New(),
		Lock:       drawoutadapter.NewFileRunLock(cfg.LockPath, clk, drawoutadapter.DefaultStaleAfter),
		Checklist:  checklistStore,
		Records:    recordStore,
		Index:      recordIndex,
		History:    history,
		Opener:     drawoutadapter.NewOSNoteOpener(fs),
		Logger:     logger,
	}))

	logger.Debug("app ready",
		zap.String("vault", cfg.VaultPath),
		zap.String("checklist", cfg.ChecklistPath),
		zap.String("records", cfg.RecordFolderPath),
		zap.String("date_key_format", format.String()),
	)
	return &App{
		Config:       cfg,
		Logger:       logger,
		ChecklistCLI: checklistinadapter.NewCLIHandler(checklistUC),
		RecordCLI:    recordinadapter.NewCLIHandler(recordUC),
		DrawCLI:      drawinadapter.NewCLIHandler(drawUC),
		db:           db,
	}, nil
}

func (a *App) Close() error {
	_ = logging.Sync(a.Logger)
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(ctx, app.Config.VaultPath, app.DrawCLI, app.ChecklistCLI, app.RecordCLI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
