package dto

import "time"

type ShowInput struct {
	DateKey string
}

type RecordOutput struct {
	DateKey  string
	Path     string
	Answered int
	Labels   []string
}

type ReindexOutput struct {
	Indexed int
	Skipped int
}

type HeatmapInput struct {
	End   time.Time
	Weeks int
}

type HeatmapCell struct {
	Date    time.Time
	Count   int
	Level   int
	InRange bool
}

type HeatmapOutput struct {
	Start      time.Time
	End        time.Time
	Weeks      [][7]HeatmapCell
	Max        int
	Total      int
	ActiveDays int
	Streak     int
}
