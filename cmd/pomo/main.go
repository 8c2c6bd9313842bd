package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"pomo/internal/bootstrap"
	"pomo/internal/platform/config"
	apperrors "pomo/internal/platform/errors"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, apperrors.ErrCorruptState) {
			_, _ = fmt.Fprintln(os.Stderr, "inspect or remove the state file to recover")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "pomo",
		Short:         "Pomodoro session tracker with durable session logs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", "data", "data directory")

	root.AddCommand(newStartCmd(&dataPath))
	root.AddCommand(newStatusCmd(&dataPath))
	root.AddCommand(newStopCmd(&dataPath))
	root.AddCommand(newHistoryCmd(&dataPath))
	root.AddCommand(newReindexCmd(&dataPath))
	root.AddCommand(newPluginCmd(&dataPath))
	return root
}

func loadApp(dataPath string) (*bootstrap.App, error) {
	cfg, err := config.New(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newStartCmd(dataPath *string) *cobra.Command {
	var note string
	var force bool

	start := &cobra.Command{
		Use:   "start <minutes>",
		Short: "Start a session and run the countdown until it ends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("minutes must be an integer: %q", args[0])
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Start(cmd.Context(), minutes, note, force)
			if err != nil {
				return err
			}
			printWarnings(cmd, out.Warnings)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started %d minute session (%s), ends at %s\n", out.Minutes, out.Identity, out.EndsAt.Format(timeLayout))
			if out.LogPath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Log: %s\n", out.LogPath)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return bootstrap.RunCountdown(ctx, app, out, cmd.OutOrStdout())
		},
	}
	start.Flags().StringVar(&note, "note", "", "note to label the session and its log entry")
	start.Flags().BoolVar(&force, "force", false, "cancel a running session and take over")
	return start
}

func newStatusCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Status(cmd.Context())
			if err != nil {
				return err
			}
			printWarnings(cmd, out.Warnings)
			switch out.State {
			case "running":
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Running (%s). Elapsed: %s, Remaining: %s\n",
					out.Identity, formatSeconds(out.ElapsedSec), formatSeconds(out.RemainingSec))
			case "completed":
				suffix := ""
				if out.JustLogged {
					suffix = " Log entry recorded."
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed (%s). Finished %s ago.%s\n",
					out.Identity, formatSeconds(out.OverSec), suffix)
			default:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No active session.")
			}
			return nil
		},
	}
}

func newStopCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Cancel the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Stop(cmd.Context())
			if err != nil {
				return err
			}
			printWarnings(cmd, out.Warnings)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Session %s (%s) at %s\n", out.Outcome, out.Identity, out.EndedAt.Format(timeLayout))
			return nil
		},
	}
}

func newHistoryCmd(dataPath *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Session history from the index"}

	history.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List indexed sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			entries, err := app.HistoryCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dm\t%s\t%s\n",
					e.Identity, e.Outcome, e.Minutes, e.StartedAt.Format(timeLayout), e.Note)
			}
			return nil
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Aggregate session stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			stats, err := app.HistoryCLI.Stats(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sessions: %d\ncompleted: %d\ncancelled: %d\npending: %d\nfocused: %dm\n",
				stats.Total, stats.Completed, stats.Cancelled, stats.Pending, stats.FocusedMinutes)
			return nil
		},
	})
	return history
}

func newReindexCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the session index from the log notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.HistoryCLI.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d sessions (%d skipped)\n", out.Indexed, out.Skipped)
			return nil
		},
	}
}

func newPluginCmd(dataPath *string) *cobra.Command {
	pluginCmd := &cobra.Command{Use: "plugin", Short: "Notifier plugin management"}

	pluginCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins")
				return nil
			}
			for _, p := range plugins {
				enabled := "disabled"
				if p.Enabled {
					enabled = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", p.Name, p.Version, enabled, strings.Join(p.Capabilities, ","))
			}
			return nil
		},
	})

	pluginCmd.AddCommand(&cobra.Command{
		Use:   "check <name>",
		Short: "Probe a plugin binary's lifecycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.PluginCLI.Check(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "name: %s\nbinary reachable: %t\nlifecycle ok: %t\n", out.Name, out.BinaryReachable, out.LifecycleOK)
			if out.Error != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", out.Error)
			}
			return nil
		},
	})
	return pluginCmd
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
}

func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%dm%02ds", total/60, total%60)
}
