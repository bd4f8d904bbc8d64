package dto

import "time"

type RunInput struct {
	Open bool
}

type RunOutput struct {
	PickID     string
	Label      string
	Line       int
	DateKey    string
	RecordPath string
	Answered   int
	IsNew      bool
	Opened     bool
	Message    string
}

type HistoryInput struct {
	Limit int
}

type PickOutput struct {
	ID         string
	Label      string
	DateKey    string
	RecordPath string
	Answered   int
	IsNew      bool
	PickedAt   time.Time
}
