package in

import (
	"context"

	timerdto "pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, minutes int, note string, force bool) (timerdto.StartOutput, error) {
	return h.usecase.Start(ctx, timerdto.StartInput{Minutes: minutes, Note: note, Force: force})
}

func (h CLIHandler) Status(ctx context.Context) (timerdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (timerdto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}
