package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"
	"pomo/internal/platform/markdown"
)

// VaultLogScanner reads session notes back out of the log directory so the
// index can be rebuilt from the durable history.
type VaultLogScanner struct {
	sessionsPath string
}

func NewVaultLogScanner(sessionsPath string) historyout.LogScanner {
	return &VaultLogScanner{sessionsPath: sessionsPath}
}

func (s *VaultLogScanner) Scan(_ context.Context) ([]domain.Entry, int, error) {
	dirEntries, err := os.ReadDir(s.sessionsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Entry{}, 0, nil
		}
		return nil, 0, fmt.Errorf("read sessions dir: %w", err)
	}

	entries := []domain.Entry{}
	skipped := 0
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), ".md") {
			continue
		}
		entry, err := s.parseNote(filepath.Join(s.sessionsPath, dirEntry.Name()))
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

func (s *VaultLogScanner) parseNote(path string) (domain.Entry, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return domain.Entry{}, err
	}
	meta, _, err := markdown.SplitFrontmatter(string(payload))
	if err != nil {
		return domain.Entry{}, err
	}

	entry := domain.Entry{
		SessionID: stringField(meta, "id"),
		Identity:  stringField(meta, "identity"),
		Note:      stringField(meta, "note"),
		Minutes:   intField(meta, "duration_minutes"),
		Outcome:   stringField(meta, "outcome"),
	}
	if entry.Outcome == "" {
		entry.Outcome = domain.OutcomePending
	}
	if entry.StartedAt, err = time.Parse(timeLayout, stringField(meta, "started_at")); err != nil {
		return domain.Entry{}, err
	}
	if endedAt := stringField(meta, "ended_at"); endedAt != "" {
		if entry.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return domain.Entry{}, err
		}
	}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func stringField(meta map[string]any, key string) string {
	value, _ := meta[key].(string)
	return value
}

func intField(meta map[string]any, key string) int {
	switch value := meta[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	default:
		return 0
	}
}
