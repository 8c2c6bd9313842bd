package service

import (
	"context"
	"fmt"
	"os"

	"pomo/internal/modules/plugin/domain"
	pluginout "pomo/internal/modules/plugin/port/out"
)

type PluginService struct {
	manifests pluginout.ManifestStore
	host      pluginout.Host
}

func NewPluginService(manifests pluginout.ManifestStore, host pluginout.Host) *PluginService {
	return &PluginService{manifests: manifests, host: host}
}

func (s *PluginService) List(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.manifests.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", manifest.Name, err)
		}
	}
	return manifests, nil
}

func (s *PluginService) Find(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.List(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, manifest := range manifests {
		if manifest.Name == name {
			return manifest, nil
		}
	}
	return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginNotFound, name)
}

func (s *PluginService) Check(ctx context.Context, manifest domain.Manifest) (binaryReachable, lifecycleOK bool, err error) {
	if _, statErr := os.Stat(manifest.Binary); statErr != nil {
		return false, false, fmt.Errorf("plugin binary: %w", statErr)
	}
	if lifecycleErr := s.host.CheckLifecycle(ctx, manifest); lifecycleErr != nil {
		return true, false, lifecycleErr
	}
	return true, true, nil
}

// NotifyAll fans one event out to every enabled plugin carrying the notify
// capability. Failures are collected per plugin; one bad plugin never
// blocks the rest.
func (s *PluginService) NotifyAll(ctx context.Context, event domain.Event) (notified int, failures []string, err error) {
	if err := event.Validate(); err != nil {
		return 0, nil, err
	}
	manifests, err := s.List(ctx)
	if err != nil {
		return 0, nil, err
	}
	for _, manifest := range manifests {
		if !manifest.Enabled || !manifest.HasCapability(domain.CapabilityNotify) {
			continue
		}
		if notifyErr := s.host.Notify(ctx, manifest, event); notifyErr != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", manifest.Name, notifyErr))
			continue
		}
		notified++
	}
	return notified, failures, nil
}
