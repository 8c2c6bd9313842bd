package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	timerout "pomo/internal/modules/timer/adapter/out"
	"pomo/internal/modules/timer/domain"
	apperrors "pomo/internal/platform/errors"
)

func TestStateStoreRoundTrip(t *testing.T) {
	t.Parallel()
	statePath := filepath.Join(t.TempDir(), "active-session.json")
	store := timerout.NewFileStateStore(statePath)

	record, err := domain.NewSessionRecord("s-1", 25, "deep work", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	if err := store.Save(context.Background(), record); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != record {
		t.Fatalf("round trip mismatch:\nsaved  %+v\nloaded %+v", record, loaded)
	}
}

func TestStateStoreLoadEmptyAndClearIdempotent(t *testing.T) {
	t.Parallel()
	statePath := filepath.Join(t.TempDir(), "active-session.json")
	store := timerout.NewFileStateStore(statePath)

	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear on empty store must not fail: %v", err)
	}

	record, _ := domain.NewSessionRecord("s-1", 25, "", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if err := store.Save(context.Background(), record); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("second clear must be a no-op: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected empty store after clear, got %v", err)
	}
}

func TestStateStoreCorruptStateSurfaces(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "active-session.json")
	store := timerout.NewFileStateStore(statePath)

	if err := os.WriteFile(statePath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt state: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState for unparseable data, got %v", err)
	}

	// Parseable JSON that is not a valid running record is corrupt too.
	if err := os.WriteFile(statePath, []byte(`{"session_id":"","status":"running"}`), 0o644); err != nil {
		t.Fatalf("write invalid record: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState for invalid record, got %v", err)
	}
}

func TestStateStoreSaveRejectsTerminalRecordAndLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "active-session.json")
	store := timerout.NewFileStateStore(statePath)

	record, _ := domain.NewSessionRecord("s-1", 25, "", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	record.Status = domain.StatusCompleted
	if err := store.Save(context.Background(), record); err == nil {
		t.Fatalf("terminal record must not be storable as live state")
	}

	record.Status = domain.StatusRunning
	if err := store.Save(context.Background(), record); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".active-session-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}
