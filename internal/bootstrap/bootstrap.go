package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	historyinadapter "pomo/internal/modules/history/adapter/in"
	historyoutadapter "pomo/internal/modules/history/adapter/out"
	historyservice "pomo/internal/modules/history/service"
	historyusecase "pomo/internal/modules/history/usecase"
	plugininadapter "pomo/internal/modules/plugin/adapter/in"
	pluginoutadapter "pomo/internal/modules/plugin/adapter/out"
	pluginservice "pomo/internal/modules/plugin/service"
	pluginusecase "pomo/internal/modules/plugin/usecase"
	timerinadapter "pomo/internal/modules/timer/adapter/in"
	timeroutadapter "pomo/internal/modules/timer/adapter/out"
	timerdto "pomo/internal/modules/timer/dto"
	timerservice "pomo/internal/modules/timer/service"
	timerusecase "pomo/internal/modules/timer/usecase"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/config"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/id"
	"pomo/internal/platform/tx"
	"pomo/internal/ui/theme"
	"pomo/internal/ui/views/countdown"
)

type App struct {
	TimerCLI   timerinadapter.CLIHandler
	HistoryCLI historyinadapter.CLIHandler
	PluginCLI  plugininadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	projector, err := historyoutadapter.NewSQLiteIndexProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(
		historyoutadapter.NewVaultLogScanner(cfg.SessionsPath),
		projector,
		tx.NoopManager{},
	))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.DataPath),
		pluginoutadapter.NewGRPCHost(),
	))

	timerUC := timerusecase.NewInteractor(
		timerservice.NewTimerService(clk, ids, timeroutadapter.NewVaultLogStore(cfg.SessionsPath)),
		timeroutadapter.NewFileStateStore(cfg.StatePath),
		timeroutadapter.NewHistoryArchiveAdapter(historyUC),
		timeroutadapter.NewPluginNotifyAdapter(pluginUC),
	)

	return &App{
		TimerCLI:   timerinadapter.NewCLIHandler(timerUC),
		HistoryCLI: historyinadapter.NewCLIHandler(historyUC),
		PluginCLI:  plugininadapter.NewCLIHandler(pluginUC),
	}, nil
}

// RunCountdown blocks in the foreground until the session completes or the
// process is interrupted. The live session is released on every exit path:
// unless the countdown observed a terminal state, the deferred stop runs
// the cancellation transition before returning.
func RunCountdown(ctx context.Context, app *App, start timerdto.StartOutput, out io.Writer) error {
	program := tea.NewProgram(countdown.New(app.TimerCLI, start), tea.WithContext(ctx))

	finalized := false
	defer func() {
		if finalized {
			return
		}
		stopOut, stopErr := app.TimerCLI.Stop(context.Background())
		switch {
		case stopErr == nil:
			printWarnings(out, stopOut.Warnings)
			_, _ = fmt.Fprintf(out, "Session %s (%s).\n", stopOut.Outcome, stopOut.Identity)
		case errors.Is(stopErr, apperrors.ErrNoActiveSession):
			// Lost the race with another invocation; the outcome is
			// already in the log.
			_, _ = fmt.Fprintln(out, "Session already finalized.")
		default:
			_, _ = fmt.Fprintf(out, "warning: release session: %v\n", stopErr)
		}
	}()

	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	model, ok := final.(countdown.Model)
	if !ok {
		return nil
	}
	if model.Err() != nil {
		return model.Err()
	}

	switch model.Result() {
	case countdown.ResultCompleted:
		finalized = true
		printWarnings(out, model.Final().Warnings)
		_, _ = fmt.Fprintf(out, "%s Log: %s\n", theme.Done.Render(fmt.Sprintf("Session completed (%s).", start.Identity)), start.LogPath)
	case countdown.ResultStoppedElsewhere:
		finalized = true
		_, _ = fmt.Fprintln(out, theme.Hot.Render("Session was stopped by another invocation."))
	}
	return nil
}

func printWarnings(out io.Writer, warnings []string) {
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(out, "warning: %s\n", warning)
	}
}
