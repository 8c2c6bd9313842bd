package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/modules/timer/service"
	apperrors "pomo/internal/platform/errors"
)

// Interactor drives the session lifecycle across process invocations. The
// state store is the source of truth for the live session; log, index and
// notifier writes degrade to warnings so a history failure never costs the
// user an active timer.
type Interactor struct {
	svc        *service.TimerService
	stateStore timerout.StateStore
	archiver   timerout.Archiver
	notifier   timerout.Notifier
}

func NewInteractor(svc *service.TimerService, stateStore timerout.StateStore, archiver timerout.Archiver, notifier timerout.Notifier) timerin.Usecase {
	return &Interactor{svc: svc, stateStore: stateStore, archiver: archiver, notifier: notifier}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	var warnings []string

	existing, err := i.stateStore.Load(ctx)
	switch {
	case err == nil:
		_, remaining, expired := i.svc.Progress(existing)
		if !expired && !input.Force {
			return dto.StartOutput{}, fmt.Errorf("%w: about %s remaining, use --force to take over", apperrors.ErrSessionRunning, formatDuration(remaining))
		}
		// An expired leftover finalizes as completed; a forced takeover
		// cancels the session it displaces.
		_, _, w, ferr := i.finalize(ctx, existing, !expired)
		warnings = append(warnings, w...)
		if ferr != nil {
			return dto.StartOutput{}, ferr
		}
	case errors.Is(err, apperrors.ErrNoActiveSession):
	default:
		return dto.StartOutput{}, err
	}

	record, err := i.svc.Begin(input.Minutes, input.Note)
	if err != nil {
		return dto.StartOutput{}, err
	}
	record, path, logErr := i.svc.OpenLog(ctx, record)
	if logErr != nil {
		warnings = append(warnings, fmt.Sprintf("session log not written: %v", logErr))
	}
	if err := i.stateStore.Save(ctx, record); err != nil {
		return dto.StartOutput{}, err
	}
	return dto.StartOutput{
		SessionID: record.SessionID,
		Identity:  record.Identity,
		Note:      record.Note,
		Minutes:   record.DurationMin,
		StartedAt: record.StartedAt,
		EndsAt:    record.EndsAt(),
		LogPath:   path,
		Warnings:  warnings,
	}, nil
}

// Status is read-only while the session is running. Once the duration has
// conceptually elapsed it performs the same completion transition the
// foreground countdown would, so a dead foreground process cannot strand a
// finished session. The resulting race with a live foreground is benign:
// both writers record the same outcome and the log write is idempotent.
func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	record, err := i.stateStore.Load(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return dto.StatusOutput{State: dto.StateIdle}, nil
	}
	if err != nil {
		return dto.StatusOutput{}, err
	}

	elapsed, remaining, expired := i.svc.Progress(record)
	if !expired {
		return dto.StatusOutput{
			State:        dto.StateRunning,
			SessionID:    record.SessionID,
			Identity:     record.Identity,
			Note:         record.Note,
			Minutes:      record.DurationMin,
			StartedAt:    record.StartedAt,
			EndsAt:       record.EndsAt(),
			ElapsedSec:   int(elapsed / time.Second),
			RemainingSec: int(remaining / time.Second),
		}, nil
	}

	_, logged, warnings, ferr := i.finalize(ctx, record, false)
	if ferr != nil {
		return dto.StatusOutput{}, ferr
	}
	over := i.svc.Now().Sub(record.EndsAt())
	if over < 0 {
		over = 0
	}
	return dto.StatusOutput{
		State:      dto.StateCompleted,
		SessionID:  record.SessionID,
		Identity:   record.Identity,
		Note:       record.Note,
		Minutes:    record.DurationMin,
		StartedAt:  record.StartedAt,
		EndsAt:     record.EndsAt(),
		ElapsedSec: record.DurationMin * 60,
		OverSec:    int(over / time.Second),
		JustLogged: logged,
		Warnings:   warnings,
	}, nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.StopOutput, error) {
	record, err := i.stateStore.Load(ctx)
	if err != nil {
		return dto.StopOutput{}, err
	}
	outcome, _, warnings, ferr := i.finalize(ctx, record, true)
	if ferr != nil {
		return dto.StopOutput{}, ferr
	}
	return dto.StopOutput{
		SessionID: record.SessionID,
		Identity:  record.Identity,
		Outcome:   string(outcome.Status),
		EndedAt:   outcome.EndedAt,
		Warnings:  warnings,
	}, nil
}

// finalize runs a terminal transition: log outcome first, then clear the
// live state, so a crash in between leaves a recoverable trace (store still
// running, log pending) instead of a silently lost session. Index and
// notifier fan-out come last and are best effort.
func (i *Interactor) finalize(ctx context.Context, record domain.SessionRecord, asCancel bool) (domain.Outcome, bool, []string, error) {
	var (
		outcome domain.Outcome
		logErr  error
	)
	if asCancel {
		outcome, logErr = i.svc.Cancel(ctx, record)
	} else {
		outcome, logErr = i.svc.Complete(ctx, record)
	}
	var warnings []string
	if logErr != nil {
		warnings = append(warnings, fmt.Sprintf("session log not updated: %v", logErr))
	}
	if err := i.stateStore.Clear(ctx); err != nil {
		return outcome, logErr == nil, warnings, fmt.Errorf("clear session state: %w", err)
	}
	if i.archiver != nil {
		if err := i.archiver.Archive(ctx, record, outcome); err != nil {
			warnings = append(warnings, fmt.Sprintf("history index not updated: %v", err))
		}
	}
	if i.notifier != nil {
		if err := i.notifier.SessionEnded(ctx, record, outcome); err != nil {
			warnings = append(warnings, fmt.Sprintf("notify plugins: %v", err))
		}
	}
	return outcome, logErr == nil, warnings, nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
