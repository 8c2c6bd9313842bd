package out

import (
	"context"

	"pomo/internal/modules/history/domain"
)

// LogScanner reads session notes back from the log directory. Unparseable
// notes are skipped and counted rather than failing the whole scan.
type LogScanner interface {
	Scan(ctx context.Context) (entries []domain.Entry, skipped int, err error)
}

// IndexProjector maintains the queryable index over finished sessions.
type IndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, entry domain.Entry) error
	List(ctx context.Context) ([]domain.Entry, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
