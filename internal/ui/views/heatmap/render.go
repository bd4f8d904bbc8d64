package heatmap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	recorddto "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/dto"
	"github.com/Aquid0/Prompt-Heatmap/internal/ui/theme"
)

var (
	glyphs   = [...]string{"·", "░", "▒", "▓", "█"}
	weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

const (
	gutter    = "    "
	cellWidth = 2
)

// Render draws the grid with weekdays as rows and weeks as columns. With
// styled false the output is plain text, as printed by the CLI.
func Render(out recorddto.HeatmapOutput, styled bool) string {
	if len(out.Weeks) == 0 {
		return "no data\n"
	}
	var sb strings.Builder
	sb.WriteString(gutter + monthRow(out) + "\n")
	for d := 0; d < 7; d++ {
		label := weekdays[d]
		if styled {
			label = theme.Muted.Render(label)
		}
		sb.WriteString(label + " ")
		for _, week := range out.Weeks {
			cell := week[d]
			sb.WriteString(glyph(cell, styled) + " ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(Summary(out) + "\n")
	legend := make([]string, 0, len(glyphs))
	for level := range glyphs {
		legend = append(legend, glyph(recorddto.HeatmapCell{Level: level, InRange: true}, styled))
	}
	sb.WriteString("less " + strings.Join(legend, " ") + " more\n")
	return sb.String()
}

func Summary(out recorddto.HeatmapOutput) string {
	return fmt.Sprintf("%d prompts on %d days · best day %d · streak %d %s · %s to %s",
		out.Total, out.ActiveDays, out.Max, out.Streak, plural(out.Streak, "day", "days"),
		out.Start.Format("2 Jan 2006"), out.End.Format("2 Jan 2006"))
}

func glyph(cell recorddto.HeatmapCell, styled bool) string {
	if !cell.InRange {
		return " "
	}
	level := cell.Level
	if level < 0 || level >= len(glyphs) {
		level = 0
	}
	if !styled {
		return glyphs[level]
	}
	return lipgloss.NewStyle().Foreground(theme.Levels[level]).Render(glyphs[level])
}

// monthRow labels the first column of every month, skipping labels that
// would overlap the previous one.
func monthRow(out recorddto.HeatmapOutput) string {
	row := []rune(strings.Repeat(" ", len(out.Weeks)*cellWidth+2))
	next := 0
	prev := -1
	for w, week := range out.Weeks {
		month := int(week[0].Date.Month())
		if month == prev {
			continue
		}
		prev = month
		pos := w * cellWidth
		if pos < next {
			continue
		}
		name := []rune(week[0].Date.Format("Jan"))
		if pos+len(name) > len(row) {
			break
		}
		copy(row[pos:], name)
		next = pos + len(name) + 1
	}
	return strings.TrimRight(string(row), " ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
