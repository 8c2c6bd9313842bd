package in

import (
	"context"

	"pomo/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Check(ctx context.Context, pluginName string) (dto.CheckOutput, error)
	Notify(ctx context.Context, input dto.NotifyInput) (dto.NotifyOutput, error)
}
