package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/markdown"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// VaultLogStore writes one markdown note per session, keyed by identity,
// with the session fields in YAML frontmatter. Notes are created at start
// with an empty outcome and patched exactly once when the session ends.
type VaultLogStore struct {
	sessionsPath string
}

func NewVaultLogStore(sessionsPath string) timerout.LogStore {
	return &VaultLogStore{sessionsPath: sessionsPath}
}

func (s *VaultLogStore) RecordStart(_ context.Context, record domain.SessionRecord) (string, string, error) {
	if err := os.MkdirAll(s.sessionsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("create sessions dir: %w", err)
	}
	identity := record.DefaultIdentity()
	path := s.notePath(identity)
	if _, err := os.Stat(path); err == nil {
		// Same note reused across sessions: suffix with the start
		// timestamp so history is never overwritten.
		identity = identity + "-" + record.StartedAt.UTC().Format("20060102T150405Z")
		path = s.notePath(identity)
	}

	meta := map[string]any{
		"schema_version":   domain.SchemaVersion,
		"id":               record.SessionID,
		"identity":         identity,
		"duration_minutes": record.DurationMin,
		"note":             record.Note,
		"started_at":       record.StartedAt.Format(timeLayout),
		"ends_at":          record.EndsAt().Format(timeLayout),
		"outcome":          "",
		"ended_at":         "",
	}
	body := fmt.Sprintf("# Pomodoro %s\n\n- Duration: %d minutes\n- Note: %s\n", identity, record.DurationMin, record.Note)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", "", fmt.Errorf("write session note: %w", err)
	}
	return identity, path, nil
}

func (s *VaultLogStore) RecordOutcome(_ context.Context, identity string, outcome domain.Outcome) error {
	if !outcome.Terminal() {
		return fmt.Errorf("outcome %q is not terminal", outcome.Status)
	}
	path := s.notePath(identity)
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrLogNotFound, identity)
		}
		return fmt.Errorf("read session note: %w", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(payload))
	if err != nil {
		return fmt.Errorf("parse session note %s: %w", identity, err)
	}
	if existing, _ := meta["outcome"].(string); existing != "" {
		// Already terminal; outcome writes are idempotent.
		return nil
	}
	meta["outcome"] = string(outcome.Status)
	meta["ended_at"] = outcome.EndedAt.Format(timeLayout)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("update session note: %w", err)
	}
	return nil
}

func (s *VaultLogStore) notePath(identity string) string {
	return filepath.Join(s.sessionsPath, identity+".md")
}
