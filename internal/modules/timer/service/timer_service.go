package service

import (
	"context"
	"time"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/id"
)

// TimerService is the pure half of the lifecycle state machine: it builds
// records, computes progress, and writes log entries. Live-state ownership
// stays with the usecase.
type TimerService struct {
	clock    clock.Clock
	idGen    id.Generator
	logStore timerout.LogStore
}

func NewTimerService(clock clock.Clock, idGen id.Generator, logStore timerout.LogStore) *TimerService {
	return &TimerService{clock: clock, idGen: idGen, logStore: logStore}
}

func (s *TimerService) Now() time.Time {
	return s.clock.Now()
}

func (s *TimerService) Begin(minutes int, note string) (domain.SessionRecord, error) {
	return domain.NewSessionRecord(s.idGen.New(), minutes, note, s.clock.Now())
}

// OpenLog writes the session's start entry and pins the record to the
// identity the log resolved. On failure the record keeps its default
// identity so the session can proceed without history.
func (s *TimerService) OpenLog(ctx context.Context, record domain.SessionRecord) (domain.SessionRecord, string, error) {
	identity, path, err := s.logStore.RecordStart(ctx, record)
	if err != nil {
		return record, "", err
	}
	record.Identity = identity
	return record, path, nil
}

// Complete records the completed outcome in the log. The returned outcome
// is valid even when the log write fails; the caller decides how loudly to
// report the write error.
func (s *TimerService) Complete(ctx context.Context, record domain.SessionRecord) (domain.Outcome, error) {
	outcome := record.Complete()
	return outcome, s.logStore.RecordOutcome(ctx, record.Identity, outcome)
}

// Cancel records a cancellation, unless the session already ran its full
// duration, in which case it finalizes as completed.
func (s *TimerService) Cancel(ctx context.Context, record domain.SessionRecord) (domain.Outcome, error) {
	now := s.clock.Now()
	if record.Expired(now) {
		return s.Complete(ctx, record)
	}
	outcome := record.Cancel(now)
	return outcome, s.logStore.RecordOutcome(ctx, record.Identity, outcome)
}

func (s *TimerService) Progress(record domain.SessionRecord) (elapsed, remaining time.Duration, expired bool) {
	now := s.clock.Now()
	return record.Elapsed(now), record.Remaining(now), record.Expired(now)
}
