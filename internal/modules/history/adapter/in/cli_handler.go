package in

import (
	"context"

	historydto "pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]historydto.EntryOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) (historydto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (historydto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
