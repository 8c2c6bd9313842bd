package in

import (
	"context"

	plugindto "pomo/internal/modules/plugin/dto"
	pluginin "pomo/internal/modules/plugin/port/in"
)

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]plugindto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Check(ctx context.Context, pluginName string) (plugindto.CheckOutput, error) {
	return h.usecase.Check(ctx, pluginName)
}
