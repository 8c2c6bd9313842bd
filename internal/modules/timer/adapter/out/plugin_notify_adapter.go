package out

import (
	"context"
	"fmt"
	"strings"

	plugindto "pomo/internal/modules/plugin/dto"
	pluginin "pomo/internal/modules/plugin/port/in"
	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
)

// PluginNotifyAdapter bridges the timer's notifier port to the plugin
// module's usecase. Per-plugin failures are folded into a single error so
// the timer reports them as one warning.
type PluginNotifyAdapter struct {
	plugins pluginin.Usecase
}

func NewPluginNotifyAdapter(plugins pluginin.Usecase) timerout.Notifier {
	return &PluginNotifyAdapter{plugins: plugins}
}

func (a *PluginNotifyAdapter) SessionEnded(ctx context.Context, record domain.SessionRecord, outcome domain.Outcome) error {
	out, err := a.plugins.Notify(ctx, plugindto.NotifyInput{
		Event:     string(outcome.Status),
		SessionID: record.SessionID,
		Identity:  record.Identity,
		Note:      record.Note,
		Minutes:   record.DurationMin,
		StartedAt: record.StartedAt,
		EndedAt:   outcome.EndedAt,
	})
	if err != nil {
		return err
	}
	if len(out.Failures) > 0 {
		return fmt.Errorf("%s", strings.Join(out.Failures, "; "))
	}
	return nil
}
