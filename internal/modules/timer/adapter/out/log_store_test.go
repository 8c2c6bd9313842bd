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

func TestLogStoreRecordStartAndOutcome(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timerout.NewVaultLogStore(dir)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	record, _ := domain.NewSessionRecord("s-1", 25, "Deep Work", start)

	identity, path, err := store.RecordStart(context.Background(), record)
	if err != nil {
		t.Fatalf("record start: %v", err)
	}
	if identity != "deep-work" {
		t.Fatalf("expected identity deep-work, got %q", identity)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	note := string(payload)
	if !strings.Contains(note, "duration_minutes: 25") || !strings.Contains(note, `outcome: ""`) {
		t.Fatalf("start note missing fields:\n%s", note)
	}

	record.Identity = identity
	if err := store.RecordOutcome(context.Background(), identity, record.Complete()); err != nil {
		t.Fatalf("record outcome: %v", err)
	}
	payload, _ = os.ReadFile(path)
	note = string(payload)
	if !strings.Contains(note, "outcome: completed") {
		t.Fatalf("outcome not recorded:\n%s", note)
	}
	if !strings.Contains(note, "ended_at: \"2026-03-01T09:25:00Z\"") && !strings.Contains(note, "ended_at: 2026-03-01T09:25:00Z") {
		t.Fatalf("completion must end at started_at + duration:\n%s", note)
	}
}

func TestLogStoreOutcomeIsIdempotent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timerout.NewVaultLogStore(dir)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	record, _ := domain.NewSessionRecord("s-1", 10, "t2", start)
	identity, path, err := store.RecordStart(context.Background(), record)
	if err != nil {
		t.Fatalf("record start: %v", err)
	}

	cancelled := record.Cancel(start.Add(3 * time.Minute))
	if err := store.RecordOutcome(context.Background(), identity, cancelled); err != nil {
		t.Fatalf("first outcome: %v", err)
	}
	// A later completion attempt must not overwrite the terminal outcome.
	if err := store.RecordOutcome(context.Background(), identity, record.Complete()); err != nil {
		t.Fatalf("second outcome must be a no-op: %v", err)
	}
	payload, _ := os.ReadFile(path)
	if !strings.Contains(string(payload), "outcome: cancelled") {
		t.Fatalf("terminal outcome was overwritten:\n%s", payload)
	}
}

func TestLogStoreCollisionGetsTimestampSuffix(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := timerout.NewVaultLogStore(dir)

	first, _ := domain.NewSessionRecord("s-1", 25, "focus", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	second, _ := domain.NewSessionRecord("s-2", 25, "focus", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	id1, _, err := store.RecordStart(context.Background(), first)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	id2, _, err := store.RecordStart(context.Background(), second)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if id1 != "focus" || id2 != "focus-20260301T100000Z" {
		t.Fatalf("collision handling wrong: %q vs %q", id1, id2)
	}
	if _, err := os.Stat(filepath.Join(dir, "focus.md")); err != nil {
		t.Fatalf("first note missing: %v", err)
	}
}

func TestLogStoreOutcomeWithoutEntry(t *testing.T) {
	t.Parallel()
	store := timerout.NewVaultLogStore(t.TempDir())
	record, _ := domain.NewSessionRecord("s-1", 25, "", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	err := store.RecordOutcome(context.Background(), "missing", record.Complete())
	if !errors.Is(err, apperrors.ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}
