package domain

import "time"

const (
	DayLayout    = "2006-01-02"
	MaxLevel     = 4
	DefaultWeeks = 26
)

type Cell struct {
	Day     time.Time
	Count   int
	Level   int
	InRange bool
}

// Heatmap is a grid of week columns, Monday first, ending with the week that
// contains End. Cells after End are out of range.
type Heatmap struct {
	Start      time.Time
	End        time.Time
	Weeks      [][7]Cell
	Max        int
	Total      int
	ActiveDays int
	Streak     int
}

// Day truncates t to its calendar date, expressed as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GridStart is the Monday of the first column of a weeks-wide grid ending on end.
func GridStart(end time.Time, weeks int) time.Time {
	if weeks < 1 {
		weeks = 1
	}
	end = Day(end)
	monday := end.AddDate(0, 0, -weekdayOffset(end))
	return monday.AddDate(0, 0, -7*(weeks-1))
}

// BuildHeatmap lays counts (keyed by DayLayout dates) out over the grid.
func BuildHeatmap(end time.Time, weeks int, counts map[string]int) Heatmap {
	if weeks < 1 {
		weeks = 1
	}
	end = Day(end)
	h := Heatmap{Start: GridStart(end, weeks), End: end, Weeks: make([][7]Cell, weeks)}
	for w := range h.Weeks {
		for d := 0; d < 7; d++ {
			day := h.Start.AddDate(0, 0, 7*w+d)
			cell := Cell{Day: day, InRange: !day.After(end)}
			if cell.InRange {
				cell.Count = counts[day.Format(DayLayout)]
				if cell.Count > h.Max {
					h.Max = cell.Count
				}
				if cell.Count > 0 {
					h.Total += cell.Count
					h.ActiveDays++
				}
			}
			h.Weeks[w][d] = cell
		}
	}
	for w := range h.Weeks {
		for d := range h.Weeks[w] {
			h.Weeks[w][d].Level = Level(h.Weeks[w][d].Count, h.Max)
		}
	}
	h.Streak = Streak(end, counts)
	return h
}

// Level buckets count into 0..MaxLevel relative to max.
func Level(count, max int) int {
	if count <= 0 || max <= 0 {
		return 0
	}
	level := (count*MaxLevel + max - 1) / max
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Streak counts consecutive answered days ending on end, or on the day
// before when nothing has been answered on end yet.
func Streak(end time.Time, counts map[string]int) int {
	day := Day(end)
	if counts[day.Format(DayLayout)] == 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for counts[day.Format(DayLayout)] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func weekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
