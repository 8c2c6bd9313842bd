package out

import (
	"context"

	historydto "pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
)

// HistoryArchiveAdapter bridges the timer's archiver port to the history
// module's usecase.
type HistoryArchiveAdapter struct {
	history historyin.Usecase
}

func NewHistoryArchiveAdapter(history historyin.Usecase) timerout.Archiver {
	return &HistoryArchiveAdapter{history: history}
}

func (a *HistoryArchiveAdapter) Archive(ctx context.Context, record domain.SessionRecord, outcome domain.Outcome) error {
	return a.history.Record(ctx, historydto.RecordInput{
		SessionID: record.SessionID,
		Identity:  record.Identity,
		Note:      record.Note,
		Minutes:   record.DurationMin,
		StartedAt: record.StartedAt,
		EndedAt:   outcome.EndedAt,
		Outcome:   string(outcome.Status),
	})
}
