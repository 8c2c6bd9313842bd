package usecase

import (
	"context"

	"pomo/internal/modules/history/domain"
	"pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
	"pomo/internal/modules/history/service"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) error {
	return i.svc.Record(ctx, domain.Entry{
		SessionID: input.SessionID,
		Identity:  input.Identity,
		Note:      input.Note,
		Minutes:   input.Minutes,
		StartedAt: input.StartedAt,
		EndedAt:   input.EndedAt,
		Outcome:   input.Outcome,
	})
}

func (i *Interactor) List(ctx context.Context) ([]dto.EntryOutput, error) {
	entries, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.EntryOutput{
			SessionID: entry.SessionID,
			Identity:  entry.Identity,
			Note:      entry.Note,
			Minutes:   entry.Minutes,
			StartedAt: entry.StartedAt,
			EndedAt:   entry.EndedAt,
			Outcome:   entry.Outcome,
		})
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Total:          stats.Total,
		Completed:      stats.Completed,
		Cancelled:      stats.Cancelled,
		Pending:        stats.Pending,
		FocusedMinutes: stats.FocusedMinutes,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	indexed, skipped, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Indexed: indexed, Skipped: skipped}, nil
}
