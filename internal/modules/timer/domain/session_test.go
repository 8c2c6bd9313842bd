package domain_test

import (
	"errors"
	"testing"
	"time"

	"pomo/internal/modules/timer/domain"
	apperrors "pomo/internal/platform/errors"
)

func TestNewSessionRecordValidatesDuration(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, minutes := range []int{0, -5, domain.MaxDurationMinutes + 1} {
		if _, err := domain.NewSessionRecord("s-1", minutes, "", start); !errors.Is(err, apperrors.ErrInvalidDuration) {
			t.Fatalf("minutes=%d: expected ErrInvalidDuration, got %v", minutes, err)
		}
	}
	record, err := domain.NewSessionRecord("s-1", 25, "deep work", start)
	if err != nil {
		t.Fatalf("valid record: %v", err)
	}
	if record.Status != domain.StatusRunning {
		t.Fatalf("new record must be running, got %s", record.Status)
	}
	if record.EndsAt() != start.Add(25*time.Minute) {
		t.Fatalf("ends at mismatch: %v", record.EndsAt())
	}
}

func TestDefaultIdentityPrefersNoteSlug(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	withNote, _ := domain.NewSessionRecord("s-1", 25, "Deep Work: Ch. 2!", start)
	if withNote.Identity != "deep-work-ch-2" {
		t.Fatalf("expected sanitized note identity, got %q", withNote.Identity)
	}
	noNote, _ := domain.NewSessionRecord("s-2", 25, "  ", start)
	if noNote.Identity != "20260301T090000Z" {
		t.Fatalf("expected timestamp identity, got %q", noNote.Identity)
	}
}

func TestElapsedRemainingClamp(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	record, _ := domain.NewSessionRecord("s-1", 10, "", start)

	if got := record.Elapsed(start.Add(-time.Minute)); got != 0 {
		t.Fatalf("elapsed before start should clamp to 0, got %v", got)
	}
	if got := record.Remaining(start.Add(4 * time.Minute)); got != 6*time.Minute {
		t.Fatalf("expected 6m remaining, got %v", got)
	}
	late := start.Add(15 * time.Minute)
	if got := record.Elapsed(late); got != 10*time.Minute {
		t.Fatalf("elapsed should clamp to duration, got %v", got)
	}
	if got := record.Remaining(late); got != 0 {
		t.Fatalf("remaining should clamp to 0, got %v", got)
	}
	if !record.Expired(late) || record.Expired(start.Add(5*time.Minute)) {
		t.Fatalf("expiry check wrong")
	}
	if !record.Expired(start.Add(10 * time.Minute)) {
		t.Fatalf("expiry must include the exact end instant")
	}
}

func TestTerminalTransitions(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	record, _ := domain.NewSessionRecord("s-1", 10, "t1", start)

	completed := record.Complete()
	if completed.Status != domain.StatusCompleted || !completed.Terminal() {
		t.Fatalf("complete outcome wrong: %+v", completed)
	}
	if completed.EndedAt != start.Add(10*time.Minute) {
		t.Fatalf("completion must end at started_at + duration, got %v", completed.EndedAt)
	}

	at := start.Add(3 * time.Minute)
	cancelled := record.Cancel(at)
	if cancelled.Status != domain.StatusCancelled || cancelled.EndedAt != at {
		t.Fatalf("cancel outcome wrong: %+v", cancelled)
	}
}

func TestValidateRejectsNonRunningLiveRecord(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	record, _ := domain.NewSessionRecord("s-1", 10, "t1", start)
	if err := record.Validate(); err != nil {
		t.Fatalf("running record should validate: %v", err)
	}
	record.Status = domain.StatusCompleted
	if err := record.Validate(); err == nil {
		t.Fatalf("terminal status must not be storable as live state")
	}
	record.Status = domain.StatusRunning
	record.Identity = ""
	if err := record.Validate(); err == nil {
		t.Fatalf("missing identity must fail")
	}
}
