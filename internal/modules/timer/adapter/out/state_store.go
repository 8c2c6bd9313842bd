package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	apperrors "pomo/internal/platform/errors"
)

// FileStateStore persists the live session as a single JSON file. There is
// no cross-process lock: writes go to a temp file in the same directory and
// are renamed into place, so concurrent invocations never observe a partial
// write. Last writer wins.
type FileStateStore struct {
	path string
}

func NewFileStateStore(statePath string) timerout.StateStore {
	return &FileStateStore{path: statePath}
}

func (s *FileStateStore) Load(_ context.Context) (domain.SessionRecord, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.SessionRecord{}, apperrors.ErrNoActiveSession
		}
		return domain.SessionRecord{}, fmt.Errorf("read session state: %w", err)
	}
	record := domain.SessionRecord{}
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptState, s.path, err)
	}
	if err := record.Validate(); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptState, s.path, err)
	}
	return record, nil
}

func (s *FileStateStore) Save(_ context.Context, record domain.SessionRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".active-session-*.json")
	if err != nil {
		return fmt.Errorf("create state temp file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write state temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close state temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace session state: %w", err)
	}
	return nil
}

func (s *FileStateStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear session state: %w", err)
	}
	return nil
}
