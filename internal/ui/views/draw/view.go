package draw

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	checklistdto "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/dto"
	drawdto "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/dto"
	recorddto "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/dto"
	"github.com/Aquid0/Prompt-Heatmap/internal/ui/theme"
)

// Port is what the Draw tab needs across the draw, checklist and record use-cases.
type Port interface {
	Run(ctx context.Context, open bool) (drawdto.RunOutput, error)
	History(ctx context.Context, limit int) ([]drawdto.PickOutput, error)
	Status(ctx context.Context) (checklistdto.StatusOutput, error)
	Show(ctx context.Context, dateKey string) (recorddto.RecordOutput, error)
}

// DrawnMsg is sent when a draw finished or failed.
type DrawnMsg struct {
	Out drawdto.RunOutput
	Err error
}

// RefreshedMsg carries the side panels: checklist counts, today's record and
// recent picks. A missing record for today is not an error.
type RefreshedMsg struct {
	Status    checklistdto.StatusOutput
	StatusErr error
	Today     recorddto.RecordOutput
	TodayErr  error
	History   []drawdto.PickOutput
}

const historyLimit = 8

type Model struct {
	ctx      context.Context
	port     Port
	spinner  spinner.Model
	viewport viewport.Model
	drawing  bool
	last     *drawdto.RunOutput
	lastErr  error
	panels   RefreshedMsg
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New(ctx context.Context, port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{ctx: ctx, port: port, spinner: sp, viewport: viewport.New(0, 0), renderer: newRenderer(0)}
}

func newRenderer(wrap int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(wrap))
	if err != nil {
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Drawing() bool { return m.drawing }

// Draw starts one run. It is a no-op while a run is already in flight.
func (m *Model) Draw(open bool) tea.Cmd {
	if m.drawing || m.port == nil {
		return nil
	}
	m.drawing = true
	port, ctx := m.port, m.ctx
	run := func() tea.Msg {
		out, err := port.Run(ctx, open)
		return DrawnMsg{Out: out, Err: err}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m Model) Refresh() tea.Cmd {
	port, ctx := m.port, m.ctx
	return func() tea.Msg {
		if port == nil {
			return RefreshedMsg{}
		}
		msg := RefreshedMsg{}
		msg.Status, msg.StatusErr = port.Status(ctx)
		msg.Today, msg.TodayErr = port.Show(ctx, "")
		msg.History, _ = port.History(ctx, historyLimit)
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-6, 10)
		m.viewport.Height = max(msg.Height-12, 3)
		m.renderer = newRenderer(m.viewport.Width - 2)
		m.viewport.SetContent(m.recordContent())
	case DrawnMsg:
		m.drawing = false
		m.lastErr = msg.Err
		if msg.Out.PickID != "" {
			out := msg.Out
			m.last = &out
		}
		cmds = append(cmds, m.Refresh())
	case RefreshedMsg:
		m.panels = msg
		m.viewport.SetContent(m.recordContent())
		m.viewport.GotoBottom()
	case spinner.TickMsg:
		if m.drawing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	sections := []string{theme.Title.Render("Today's prompt"), m.renderLast(), "", m.renderStatus(), ""}
	sections = append(sections, theme.Title.Render("Today's record"), theme.Pane.Render(m.viewport.View()))
	if hist := m.renderHistory(); hist != "" {
		sections = append(sections, "", theme.Title.Render("Recent picks"), hist)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderLast() string {
	if m.drawing {
		return m.spinner.View() + " drawing…"
	}
	var lines []string
	if m.last != nil {
		lines = append(lines, theme.Hot.Render(m.last.Label), theme.Muted.Render(m.last.Message))
	}
	if m.lastErr != nil {
		lines = append(lines, theme.Bad.Render("Error: "+m.lastErr.Error()))
	}
	if len(lines) == 0 {
		return theme.Muted.Render("press d to draw a prompt")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.panels.StatusErr != nil {
		return theme.Bad.Render("checklist: " + m.panels.StatusErr.Error())
	}
	s := m.panels.Status
	if s.Path == "" {
		return ""
	}
	return theme.Muted.Render(fmt.Sprintf("%s · %d left to draw · %d done", s.Path, s.Eligible, s.Done))
}

// recordContent lists today's answered prompts as markdown, rendered with
// glamour when a renderer is available.
func (m Model) recordContent() string {
	if m.panels.TodayErr != nil {
		return theme.Muted.Render("no record for today yet")
	}
	today := m.panels.Today
	if today.Path == "" {
		return ""
	}
	var md strings.Builder
	fmt.Fprintf(&md, "**%s** · %d answered\n\n", today.Path, today.Answered)
	for i, label := range today.Labels {
		fmt.Fprintf(&md, "%d. %s\n", i+1, label)
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md.String()); err == nil {
			return rendered
		}
	}
	return md.String()
}

func (m Model) renderHistory() string {
	if len(m.panels.History) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.panels.History))
	for _, p := range m.panels.History {
		marker := " "
		if p.IsNew {
			marker = "+"
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
			marker, theme.Muted.Render(p.PickedAt.Local().Format("2006-01-02 15:04")), p.DateKey, p.Label))
	}
	return strings.Join(lines, "\n")
}
