package usecase

import (
	"context"

	"pomo/internal/modules/plugin/domain"
	"pomo/internal/modules/plugin/dto"
	pluginin "pomo/internal/modules/plugin/port/in"
	"pomo/internal/modules/plugin/service"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, manifest := range manifests {
		capabilities := make([]string, 0, len(manifest.Capabilities))
		for _, capability := range manifest.Capabilities {
			capabilities = append(capabilities, string(capability))
		}
		out = append(out, dto.PluginInfo{
			Name:         manifest.Name,
			Version:      manifest.Version,
			Enabled:      manifest.Enabled,
			Binary:       manifest.Binary,
			Capabilities: capabilities,
		})
	}
	return out, nil
}

func (i *Interactor) Check(ctx context.Context, pluginName string) (dto.CheckOutput, error) {
	manifest, err := i.svc.Find(ctx, pluginName)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	out := dto.CheckOutput{Name: manifest.Name}
	binaryReachable, lifecycleOK, checkErr := i.svc.Check(ctx, manifest)
	out.BinaryReachable = binaryReachable
	out.LifecycleOK = lifecycleOK
	if checkErr != nil {
		out.Error = checkErr.Error()
	}
	return out, nil
}

func (i *Interactor) Notify(ctx context.Context, input dto.NotifyInput) (dto.NotifyOutput, error) {
	notified, failures, err := i.svc.NotifyAll(ctx, domain.Event{
		Kind:      input.Event,
		SessionID: input.SessionID,
		Identity:  input.Identity,
		Note:      input.Note,
		Minutes:   input.Minutes,
		StartedAt: input.StartedAt,
		EndedAt:   input.EndedAt,
	})
	if err != nil {
		return dto.NotifyOutput{}, err
	}
	return dto.NotifyOutput{Notified: notified, Failures: failures}, nil
}
