package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	checklistdto "github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/dto"
	drawdto "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/dto"
	recorddto "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/dto"
	"github.com/Aquid0/Prompt-Heatmap/internal/ui/components"
	"github.com/Aquid0/Prompt-Heatmap/internal/ui/theme"
	drawview "github.com/Aquid0/Prompt-Heatmap/internal/ui/views/draw"
	heatmapview "github.com/Aquid0/Prompt-Heatmap/internal/ui/views/heatmap"
)

// Each port is the minimal interface this orchestration layer needs; the
// sub-views narrow them further.

type drawPort interface {
	Run(ctx context.Context, open bool) (drawdto.RunOutput, error)
	History(ctx context.Context, limit int) ([]drawdto.PickOutput, error)
}

type checklistPort interface {
	Status(ctx context.Context) (checklistdto.StatusOutput, error)
	Pending(ctx context.Context) (checklistdto.PendingOutput, error)
}

type recordPort interface {
	Show(ctx context.Context, dateKey string) (recorddto.RecordOutput, error)
	Reindex(ctx context.Context) (recorddto.ReindexOutput, error)
	Heatmap(ctx context.Context, end time.Time, weeks int) (recorddto.HeatmapOutput, error)
}

type tabID int

const (
	tabDraw tabID = iota
	tabHeatmap
	tabCount
)

var tabLabels = [tabCount]string{"Draw", "Heatmap"}

const defaultWeeks = 26

type pendingLoadedMsg struct {
	out checklistdto.PendingOutput
	err error
}

type keyMap struct {
	Tab     key.Binding
	Draw    key.Binding
	Open    key.Binding
	Reindex key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next tab")),
		Draw:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draw a prompt")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "draw and open note")),
		Reindex: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebuild index")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Draw, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Draw, k.Open},
		{k.Reindex},
		{k.Help, k.Palette, k.Quit},
	}
}

// Model is the root Bubble Tea model. It routes keys and async results to the
// Draw and Heatmap tabs and owns the help overlay and command palette.
type Model struct {
	ctx       context.Context
	vaultPath string
	checklist checklistPort

	drawView    drawview.Model
	heatmapView heatmapview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(ctx context.Context, vaultPath string, draw drawPort, checklist checklistPort, record recordPort) Model {
	var heatPort heatmapview.Port
	if record != nil {
		heatPort = record
	}
	return Model{
		ctx:         ctx,
		vaultPath:   vaultPath,
		checklist:   checklist,
		drawView:    drawview.New(ctx, drawPortBridge{draw: draw, checklist: checklist, record: record}),
		heatmapView: heatmapview.New(ctx, heatPort, defaultWeeks),
		activeTab:   tabDraw,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.drawView.Init(), m.heatmapView.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		return m, m.propagateSize()

	// Async results go to their owning view whichever tab is showing.
	case drawview.DrawnMsg:
		if msg.Err != nil {
			m.status = "draw failed: " + msg.Err.Error()
		} else {
			m.status = msg.Out.Message
			if msg.Out.Opened {
				m.status += " (opened)"
			}
		}
		var cmd tea.Cmd
		m.drawView, cmd = m.drawView.Update(msg)
		return m, tea.Batch(cmd, m.heatmapView.Load())

	case drawview.RefreshedMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.drawView, cmd = m.drawView.Update(msg)
		return m, cmd

	case heatmapview.LoadedMsg:
		var cmd tea.Cmd
		m.heatmapView, cmd = m.heatmapView.Update(msg)
		return m, cmd

	case heatmapview.ReindexedMsg:
		if msg.Err != nil {
			m.status = "reindex failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("indexed %d notes, skipped %d", msg.Out.Indexed, msg.Out.Skipped)
		}
		var cmd tea.Cmd
		m.heatmapView, cmd = m.heatmapView.Update(msg)
		return m, cmd

	case pendingLoadedMsg:
		if msg.err != nil {
			m.status = "checklist: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("%d prompts left in %s", len(msg.out.Entries), msg.out.Path)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = true
		case ":":
			return m, m.palette.Open()
		case "d", "o":
			return m.startDraw(msg.String() == "o")
		case "r":
			m.status = "rebuilding index…"
			return m, m.heatmapView.Reindex()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDraw:
		m.drawView, tabCmd = m.drawView.Update(msg)
	case tabHeatmap:
		m.heatmapView, tabCmd = m.heatmapView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) startDraw(open bool) (tea.Model, tea.Cmd) {
	if m.drawView.Drawing() {
		m.status = "a draw is already running"
		return m, nil
	}
	m.activeTab = tabDraw
	m.status = "drawing…"
	return m, m.drawView.Draw(open)
}

// propagateSize forwards the content area to both tabs so a hidden tab is
// laid out when it is first shown.
func (m *Model) propagateSize() tea.Cmd {
	contentH := max(m.height-4, 1)
	size := tea.WindowSizeMsg{Width: m.width, Height: contentH}
	var drawCmd, heatCmd tea.Cmd
	m.drawView, drawCmd = m.drawView.Update(size)
	m.heatmapView, heatCmd = m.heatmapView.Update(size)
	return tea.Batch(drawCmd, heatCmd)
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabHeatmap:
		content = m.heatmapView.View()
	default:
		content = m.drawView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "prompt-heatmap  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render(m.vaultPath + "  ?:help  d:draw  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "draw":
		return m.startDraw(false)

	case "draw:open":
		return m.startDraw(true)

	case "heatmap:weeks":
		if len(parts) < 2 {
			m.status = "usage: heatmap:weeks <n|fit>"
			return m, nil
		}
		weeks := m.heatmapView.FitWeeks()
		if parts[1] != "fit" {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n < 1 {
				m.status = "invalid week count"
				return m, nil
			}
			weeks = n
		}
		m.activeTab = tabHeatmap
		m.status = fmt.Sprintf("showing %d weeks", weeks)
		return m, m.heatmapView.SetWeeks(weeks)

	case "record:reindex":
		m.activeTab = tabHeatmap
		m.status = "rebuilding index…"
		return m, m.heatmapView.Reindex()

	case "prompts:pending":
		return m, m.loadPendingCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) loadPendingCmd() tea.Cmd {
	port, ctx := m.checklist, m.ctx
	return func() tea.Msg {
		if port == nil {
			return pendingLoadedMsg{err: fmt.Errorf("checklist is not configured")}
		}
		out, err := port.Pending(ctx)
		return pendingLoadedMsg{out: out, err: err}
	}
}

// drawPortBridge joins the three use-cases into the Draw tab's port.
type drawPortBridge struct {
	draw      drawPort
	checklist checklistPort
	record    recordPort
}

func (b drawPortBridge) Run(ctx context.Context, open bool) (drawdto.RunOutput, error) {
	if b.draw == nil {
		return drawdto.RunOutput{}, fmt.Errorf("draw is not configured")
	}
	return b.draw.Run(ctx, open)
}

func (b drawPortBridge) History(ctx context.Context, limit int) ([]drawdto.PickOutput, error) {
	if b.draw == nil {
		return nil, nil
	}
	return b.draw.History(ctx, limit)
}

func (b drawPortBridge) Status(ctx context.Context) (checklistdto.StatusOutput, error) {
	if b.checklist == nil {
		return checklistdto.StatusOutput{}, nil
	}
	return b.checklist.Status(ctx)
}

func (b drawPortBridge) Show(ctx context.Context, dateKey string) (recorddto.RecordOutput, error) {
	if b.record == nil {
		return recorddto.RecordOutput{}, nil
	}
	return b.record.Show(ctx, dateKey)
}
