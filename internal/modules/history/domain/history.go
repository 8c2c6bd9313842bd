package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomePending   = "pending"
)

// Entry is one session as it appears in the history index. Pending entries
// exist when a start note was written but no outcome has been recorded yet.
type Entry struct {
	SessionID string
	Identity  string
	Note      string
	Minutes   int
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   string
}

type Stats struct {
	Total          int
	Completed      int
	Cancelled      int
	Pending        int
	FocusedMinutes int
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(e.Identity) == "" {
		return fmt.Errorf("identity is required")
	}
	switch e.Outcome {
	case OutcomeCompleted, OutcomeCancelled, OutcomePending:
	default:
		return fmt.Errorf("unknown outcome %q", e.Outcome)
	}
	return nil
}

// FocusedMinutes is the time actually spent: the full duration for a
// completed session, the elapsed part for a cancelled one.
func (e Entry) FocusedMinutes() int {
	switch e.Outcome {
	case OutcomeCompleted:
		return e.Minutes
	case OutcomeCancelled:
		if e.EndedAt.IsZero() || e.EndedAt.Before(e.StartedAt) {
			return 0
		}
		minutes := int(e.EndedAt.Sub(e.StartedAt).Minutes())
		if minutes > e.Minutes {
			return e.Minutes
		}
		return minutes
	default:
		return 0
	}
}
