package domain_test

import (
	"strings"
	"testing"
	"time"

	"pomo/internal/modules/plugin/domain"
)

func validManifest() domain.Manifest {
	return domain.Manifest{
		Name:         "desktop-notify",
		Version:      "1.0.0",
		Binary:       "/usr/local/bin/pomo-notify",
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityNotify},
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*domain.Manifest)
		want   string
	}{
		{"missing name", func(m *domain.Manifest) { m.Name = "" }, "name is required"},
		{"missing version", func(m *domain.Manifest) { m.Version = "" }, "version is required"},
		{"missing binary", func(m *domain.Manifest) { m.Binary = "" }, "binary path is required"},
		{"no capabilities", func(m *domain.Manifest) { m.Capabilities = nil }, "capabilities are required"},
		{"unknown capability", func(m *domain.Manifest) { m.Capabilities = []domain.Capability{"render"} }, "unknown capability"},
		{"duplicate capability", func(m *domain.Manifest) {
			m.Capabilities = []domain.Capability{domain.CapabilityNotify, domain.CapabilityNotify}
		}, "duplicate capability"},
		{"bad sha256", func(m *domain.Manifest) { m.SHA256 = "NOT-HEX" }, "sha256"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			manifest := validManifest()
			tc.mutate(&manifest)
			err := manifest.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}

	withDigest := validManifest()
	withDigest.SHA256 = strings.Repeat("ab", 32)
	if err := withDigest.Validate(); err != nil {
		t.Fatalf("valid sha256 rejected: %v", err)
	}
}

func TestEventValidate(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	event := domain.Event{
		Kind:      "completed",
		SessionID: "s-1",
		Identity:  "deep-work",
		Minutes:   25,
		StartedAt: start,
		EndedAt:   start.Add(25 * time.Minute),
	}
	if err := event.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	event.Kind = "paused"
	if err := event.Validate(); err == nil {
		t.Fatalf("unknown event kind must be rejected")
	}
	event.Kind = "cancelled"
	event.SessionID = ""
	if err := event.Validate(); err == nil {
		t.Fatalf("event without session id must be rejected")
	}
}
