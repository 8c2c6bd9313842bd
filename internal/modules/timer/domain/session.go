package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/slug"
)

const SchemaVersion = 1

// MaxDurationMinutes caps a single session at 24 hours.
const MaxDurationMinutes = 24 * 60

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// SessionRecord is the single live session. One exists in the state store
// iff a session is running; terminal states are recorded only in the log.
type SessionRecord struct {
	SessionID   string    `json:"session_id"`
	DurationMin int       `json:"duration_minutes"`
	StartedAt   time.Time `json:"started_at"`
	Note        string    `json:"note,omitempty"`
	Identity    string    `json:"identity"`
	Status      Status    `json:"status"`
}

// Outcome is a terminal transition. Completion pins EndedAt to the exact
// scheduled end so logged durations stay precise; cancellation carries the
// actual cancellation time.
type Outcome struct {
	Status  Status
	EndedAt time.Time
}

func NewSessionRecord(sessionID string, minutes int, note string, startedAt time.Time) (SessionRecord, error) {
	if minutes <= 0 || minutes > MaxDurationMinutes {
		return SessionRecord{}, fmt.Errorf("%w: %d minutes (must be 1-%d)", apperrors.ErrInvalidDuration, minutes, MaxDurationMinutes)
	}
	record := SessionRecord{
		SessionID:   sessionID,
		DurationMin: minutes,
		StartedAt:   startedAt,
		Note:        strings.TrimSpace(note),
		Status:      StatusRunning,
	}
	record.Identity = record.DefaultIdentity()
	return record, nil
}

// DefaultIdentity keys the session's log note: the sanitized note when one
// was given, otherwise the start timestamp in a sortable form.
func (r SessionRecord) DefaultIdentity() string {
	if s := slug.Make(r.Note); s != "" {
		return s
	}
	return r.StartedAt.UTC().Format("20060102T150405Z")
}

func (r SessionRecord) Duration() time.Duration {
	return time.Duration(r.DurationMin) * time.Minute
}

func (r SessionRecord) EndsAt() time.Time {
	return r.StartedAt.Add(r.Duration())
}

func (r SessionRecord) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(r.StartedAt)
	if elapsed < 0 {
		return 0
	}
	if elapsed > r.Duration() {
		return r.Duration()
	}
	return elapsed
}

func (r SessionRecord) Remaining(now time.Time) time.Duration {
	remaining := r.EndsAt().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (r SessionRecord) Expired(now time.Time) bool {
	return !now.Before(r.EndsAt())
}

func (r SessionRecord) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if r.DurationMin <= 0 || r.DurationMin > MaxDurationMinutes {
		return fmt.Errorf("%w: %d minutes", apperrors.ErrInvalidDuration, r.DurationMin)
	}
	if r.StartedAt.IsZero() {
		return fmt.Errorf("started_at is required")
	}
	if strings.TrimSpace(r.Identity) == "" {
		return fmt.Errorf("identity is required")
	}
	if r.Status != StatusRunning {
		return fmt.Errorf("live session status must be %q, got %q", StatusRunning, r.Status)
	}
	return nil
}

// Complete produces the terminal outcome for an elapsed session. The end
// time is started_at + duration, not wall clock now.
func (r SessionRecord) Complete() Outcome {
	return Outcome{Status: StatusCompleted, EndedAt: r.EndsAt()}
}

func (r SessionRecord) Cancel(now time.Time) Outcome {
	return Outcome{Status: StatusCancelled, EndedAt: now}
}

func (o Outcome) Terminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}
