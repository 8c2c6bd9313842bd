package out

import (
	"context"

	"pomo/internal/modules/timer/domain"
)

// StateStore holds the at-most-one live session. Load returns
// apperrors.ErrNoActiveSession when nothing is stored and
// apperrors.ErrCorruptState when stored data cannot be parsed into a valid
// running record. Save must replace atomically; Clear is idempotent.
type StateStore interface {
	Load(ctx context.Context) (domain.SessionRecord, error)
	Save(ctx context.Context, record domain.SessionRecord) error
	Clear(ctx context.Context) error
}

// LogStore owns the append-only per-session history. RecordStart returns
// the resolved identity (unique within the log) and the note path.
// RecordOutcome is idempotent once an entry is terminal and returns
// apperrors.ErrLogNotFound when no entry matches.
type LogStore interface {
	RecordStart(ctx context.Context, record domain.SessionRecord) (identity string, path string, err error)
	RecordOutcome(ctx context.Context, identity string, outcome domain.Outcome) error
}

// Archiver projects a finished session into the history index.
type Archiver interface {
	Archive(ctx context.Context, record domain.SessionRecord, outcome domain.Outcome) error
}

// Notifier fans a terminal transition out to external observers.
type Notifier interface {
	SessionEnded(ctx context.Context, record domain.SessionRecord, outcome domain.Outcome) error
}
