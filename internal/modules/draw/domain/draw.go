package domain

import (
	"path"
	"time"
)

// Pick is the outcome of one draw: the prompt taken from the checklist and
// the daily record it was filed into.
type Pick struct {
	ID         string
	Label      string
	LineIndex  int
	DateKey    string
	RecordPath string
	Answered   int
	IsNew      bool
	PickedAt   time.Time
}

// Message is the notice shown once a draw completes.
func (p Pick) Message() string {
	if p.IsNew {
		return "Created new prompt note: " + path.Base(p.RecordPath)
	}
	return "Prompt note already exists for today! Adding new prompt..."
}

// LockInfo is written into the run lock file by its holder.
// Token identifies one acquisition so a holder only ever removes its own lock.
type LockInfo struct {
	Token     string    `json:"token,omitempty"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}
