package service

import (
	"context"
	"fmt"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"
	"pomo/internal/platform/tx"
)

type HistoryService struct {
	scanner   historyout.LogScanner
	projector historyout.IndexProjector
	txm       tx.Manager
}

func NewHistoryService(scanner historyout.LogScanner, projector historyout.IndexProjector, txm tx.Manager) *HistoryService {
	return &HistoryService{scanner: scanner, projector: projector, txm: txm}
}

func (s *HistoryService) Record(ctx context.Context, entry domain.Entry) error {
	return s.projector.Upsert(ctx, entry)
}

func (s *HistoryService) List(ctx context.Context) ([]domain.Entry, error) {
	return s.projector.List(ctx)
}

func (s *HistoryService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.projector.Stats(ctx)
}

// Reindex rebuilds the index from the session notes on disk, inside one
// transactional boundary so readers never see a half-rebuilt index.
func (s *HistoryService) Reindex(ctx context.Context) (indexed, skipped int, err error) {
	entries, skipped, err := s.scanner.Scan(ctx)
	if err != nil {
		return 0, 0, err
	}
	err = s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.projector.Reset(ctx); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := s.projector.Upsert(ctx, entry); err != nil {
				return fmt.Errorf("index %s: %w", entry.Identity, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, skipped, err
	}
	return len(entries), skipped, nil
}
