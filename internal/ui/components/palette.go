package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aquid0/Prompt-Heatmap/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is sent when the palette is dismissed with esc.
type PaletteCancelMsg struct{}

const maxHints = 5

var (
	frame = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1)
	hint = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// commands mirrors app.Model.executePalette. Text after the first space is
// an argument placeholder.
var commands = []string{
	"draw",
	"draw:open",
	"heatmap:weeks <n|fit>",
	"record:reindex",
	"prompts:pending",
}

// Matches returns up to limit commands starting with the typed prefix.
func Matches(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, c := range commands {
		if !strings.HasPrefix(c, prefix) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Palette is a one-line command prompt. tab completes the first match and
// up recalls the last submitted command.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	last    string
}

func NewPalette() Palette {
	in := textinput.New()
	in.Prompt = ": "
	in.Placeholder = "command…"
	in.CharLimit = 128
	return Palette{input: in}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) SetWidth(w int) { p.width = w }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			line := strings.TrimSpace(p.input.Value())
			p.close()
			if line != "" {
				p.last = line
			}
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case tea.KeyTab:
			if m := Matches(p.input.Value(), 1); len(m) == 1 {
				name, _, hasArgs := strings.Cut(m[0], " ")
				if hasArgs {
					name += " "
				}
				p.input.SetValue(name)
				p.input.CursorEnd()
			}
			return p, nil
		case tea.KeyUp:
			if p.last != "" {
				p.input.SetValue(p.last)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{theme.Title.Render("Command"), p.input.View()}
	if matches := Matches(p.input.Value(), maxHints); len(matches) > 0 {
		lines = append(lines, "")
		for _, m := range matches {
			lines = append(lines, hint.Render("  "+m))
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return frame.Width(w - 2).Render(strings.Join(lines, "\n"))
}
