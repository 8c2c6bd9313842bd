package in

import (
	"context"

	"pomo/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) error
	List(ctx context.Context) ([]dto.EntryOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
