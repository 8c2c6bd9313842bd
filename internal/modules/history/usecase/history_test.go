package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	historyadapter "pomo/internal/modules/history/adapter/out"
	"pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
	"pomo/internal/modules/history/service"
	"pomo/internal/modules/history/usecase"
	"pomo/internal/platform/markdown"
	"pomo/internal/platform/tx"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

func newHistory(t *testing.T) (historyin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	sessionsPath := filepath.Join(dir, "sessions")
	projector, err := historyadapter.NewSQLiteIndexProjector(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("open projector: %v", err)
	}
	svc := service.NewHistoryService(historyadapter.NewVaultLogScanner(sessionsPath), projector, tx.NoopManager{})
	return usecase.NewInteractor(svc), sessionsPath
}

func writeNote(t *testing.T, sessionsPath, identity string, meta map[string]any) {
	t.Helper()
	if err := os.MkdirAll(sessionsPath, 0o755); err != nil {
		t.Fatalf("mkdir sessions: %v", err)
	}
	content, err := markdown.RenderFrontmatter(meta, "# Pomodoro "+identity+"\n")
	if err != nil {
		t.Fatalf("render note: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sessionsPath, identity+".md"), []byte(content), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}
}

func TestRecordThenListAndStats(t *testing.T) {
	t.Parallel()
	uc, _ := newHistory(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	inputs := []dto.RecordInput{
		{SessionID: "s-1", Identity: "deep-work", Note: "deep work", Minutes: 25, StartedAt: start, EndedAt: start.Add(25 * time.Minute), Outcome: "completed"},
		{SessionID: "s-2", Identity: "email", Minutes: 10, StartedAt: start.Add(time.Hour), EndedAt: start.Add(time.Hour + 4*time.Minute), Outcome: "cancelled"},
	}
	for _, input := range inputs {
		if err := uc.Record(ctx, input); err != nil {
			t.Fatalf("record %s: %v", input.SessionID, err)
		}
	}

	entries, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Identity != "email" || entries[1].Identity != "deep-work" {
		t.Fatalf("ordering wrong: %s, %s", entries[0].Identity, entries[1].Identity)
	}
	if !entries[1].EndedAt.Equal(start.Add(25 * time.Minute)) {
		t.Fatalf("ended_at lost in round trip: %v", entries[1].EndedAt)
	}

	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 || stats.Completed != 1 || stats.Cancelled != 1 {
		t.Fatalf("counts wrong: %+v", stats)
	}
	// 25m completed plus 4m of the cancelled session.
	if stats.FocusedMinutes != 29 {
		t.Fatalf("expected 29 focused minutes, got %d", stats.FocusedMinutes)
	}
}

func TestRecordUpsertsBySessionID(t *testing.T) {
	t.Parallel()
	uc, _ := newHistory(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := uc.Record(ctx, dto.RecordInput{SessionID: "s-1", Identity: "focus", Minutes: 25, StartedAt: start, Outcome: "pending"}); err != nil {
		t.Fatalf("record pending: %v", err)
	}
	if err := uc.Record(ctx, dto.RecordInput{SessionID: "s-1", Identity: "focus", Minutes: 25, StartedAt: start, EndedAt: start.Add(25 * time.Minute), Outcome: "completed"}); err != nil {
		t.Fatalf("record completed: %v", err)
	}

	entries, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Outcome != "completed" {
		t.Fatalf("expected single completed entry, got %+v", entries)
	}
}

func TestReindexRebuildsFromNotes(t *testing.T) {
	t.Parallel()
	uc, sessionsPath := newHistory(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	writeNote(t, sessionsPath, "deep-work", map[string]any{
		"schema_version":   1,
		"id":               "s-1",
		"identity":         "deep-work",
		"note":             "deep work",
		"duration_minutes": 25,
		"started_at":       start.Format(timeLayout),
		"ends_at":          start.Add(25 * time.Minute).Format(timeLayout),
		"outcome":          "completed",
		"ended_at":         start.Add(25 * time.Minute).Format(timeLayout),
	})
	writeNote(t, sessionsPath, "unfinished", map[string]any{
		"schema_version":   1,
		"id":               "s-2",
		"identity":         "unfinished",
		"note":             "",
		"duration_minutes": 10,
		"started_at":       start.Add(time.Hour).Format(timeLayout),
		"ends_at":          start.Add(time.Hour + 10*time.Minute).Format(timeLayout),
		"outcome":          "",
		"ended_at":         "",
	})
	// A note that cannot be parsed is skipped, not fatal.
	if err := os.WriteFile(filepath.Join(sessionsPath, "broken.md"), []byte("not a session note"), 0o644); err != nil {
		t.Fatalf("write broken note: %v", err)
	}

	// Stale index rows must not survive a rebuild.
	if err := uc.Record(ctx, dto.RecordInput{SessionID: "stale", Identity: "stale", Minutes: 5, StartedAt: start, Outcome: "cancelled"}); err != nil {
		t.Fatalf("record stale: %v", err)
	}

	out, err := uc.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if out.Indexed != 2 || out.Skipped != 1 {
		t.Fatalf("expected 2 indexed / 1 skipped, got %+v", out)
	}

	entries, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after rebuild, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.SessionID == "stale" {
			t.Fatalf("stale row survived reindex")
		}
		if entry.Identity == "unfinished" && entry.Outcome != "pending" {
			t.Fatalf("missing outcome must index as pending, got %q", entry.Outcome)
		}
	}

	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Pending != 1 || stats.Completed != 1 {
		t.Fatalf("stats after rebuild wrong: %+v", stats)
	}
}

func TestReindexWithoutSessionsDir(t *testing.T) {
	t.Parallel()
	uc, _ := newHistory(t)
	out, err := uc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if out.Indexed != 0 || out.Skipped != 0 {
		t.Fatalf("expected empty rebuild, got %+v", out)
	}
}
