package heatmap

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	recorddto "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/dto"
	"github.com/Aquid0/Prompt-Heatmap/internal/ui/theme"
)

// Port is the minimal interface this view needs from the record use-case.
type Port interface {
	Heatmap(ctx context.Context, end time.Time, weeks int) (recorddto.HeatmapOutput, error)
	Reindex(ctx context.Context) (recorddto.ReindexOutput, error)
}

// LoadedMsg carries a freshly computed heatmap.
type LoadedMsg struct {
	Out recorddto.HeatmapOutput
	Err error
}

// ReindexedMsg reports a rebuilt record index.
type ReindexedMsg struct {
	Out recorddto.ReindexOutput
	Err error
}

type Model struct {
	ctx    context.Context
	port   Port
	weeks  int
	out    recorddto.HeatmapOutput
	err    error
	loaded bool
	width  int
	height int
}

func New(ctx context.Context, port Port, weeks int) Model {
	return Model{ctx: ctx, port: port, weeks: weeks}
}

func (m Model) Init() tea.Cmd { return m.Load() }

// Load recomputes the heatmap ending today.
func (m Model) Load() tea.Cmd {
	port, weeks, ctx := m.port, m.weeks, m.ctx
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{}
		}
		out, err := port.Heatmap(ctx, time.Time{}, weeks)
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Reindex() tea.Cmd {
	port, ctx := m.port, m.ctx
	return func() tea.Msg {
		if port == nil {
			return ReindexedMsg{}
		}
		out, err := port.Reindex(ctx)
		return ReindexedMsg{Out: out, Err: err}
	}
}

// SetWeeks changes the grid width and reloads.
func (m *Model) SetWeeks(weeks int) tea.Cmd {
	if weeks > 0 {
		m.weeks = weeks
	}
	return m.Load()
}

// FitWeeks is how many week columns fit the current width.
func (m Model) FitWeeks() int {
	if m.width <= 0 {
		return m.weeks
	}
	fit := (m.width - len(gutter) - 4) / cellWidth
	if fit < 1 {
		return 1
	}
	return fit
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.out = msg.Out
		}
	case ReindexedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		return m, m.Load()
	}
	return m, nil
}

func (m Model) View() string {
	title := theme.Title.Render("Answered prompts")
	var body string
	switch {
	case m.err != nil:
		body = theme.Bad.Render("Error: " + m.err.Error())
	case !m.loaded:
		body = theme.Muted.Render("loading…")
	default:
		body = Render(m.out, true)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}
