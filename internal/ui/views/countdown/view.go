package countdown

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// StatusPort is re-queried every tick. Reading through the usecase (rather
// than counting down locally) keeps the display honest against the state
// another invocation might mutate, and lets the self-healing completion
// transition run through the exact same path status uses.
type StatusPort interface {
	Status(ctx context.Context) (timerdto.StatusOutput, error)
}

// ─── result ──────────────────────────────────────────────────────────────────

type Result int

const (
	// ResultInterrupted is the default: any exit that is not a clean
	// completion or an external stop must release the live session.
	ResultInterrupted Result = iota
	ResultCompleted
	ResultStoppedElsewhere
)

// ─── messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type statusMsg struct {
	out timerdto.StatusOutput
	err error
}

// ─── model ───────────────────────────────────────────────────────────────────

const barWidth = 30

type Model struct {
	port   StatusPort
	status timerdto.StatusOutput
	result Result
	err    error
	width  int
}

func New(port StatusPort, start timerdto.StartOutput) Model {
	return Model{
		port: port,
		status: timerdto.StatusOutput{
			State:        timerdto.StateRunning,
			Identity:     start.Identity,
			Note:         start.Note,
			Minutes:      start.Minutes,
			StartedAt:    start.StartedAt,
			EndsAt:       start.EndsAt,
			RemainingSec: start.Minutes * 60,
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.result = ResultInterrupted
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())
	case statusMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		switch msg.out.State {
		case timerdto.StateCompleted:
			m.status = msg.out
			m.result = ResultCompleted
			return m, tea.Quit
		case timerdto.StateIdle:
			// Another invocation stopped the session and cleared the
			// store; nothing left to release here.
			m.result = ResultStoppedElsewhere
			return m, tea.Quit
		default:
			m.status = msg.out
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.result != ResultInterrupted || m.err != nil {
		return ""
	}
	title := m.status.Identity
	if m.status.Note != "" {
		title = m.status.Note
	}
	total := m.status.Minutes * 60
	filled := 0
	if total > 0 {
		filled = barWidth * (total - m.status.RemainingSec) / total
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := theme.Timer.Render(strings.Repeat("█", filled)) +
		theme.Muted.Render(strings.Repeat("░", barWidth-filled))

	lines := []string{
		theme.Title.Render(title) + theme.Muted.Render(fmt.Sprintf("  %d minute session", m.status.Minutes)),
		theme.Timer.Render(formatSeconds(m.status.RemainingSec)) + theme.Muted.Render(" remaining  ") + bar,
		theme.Muted.Render("press q or ctrl+c to cancel"),
	}
	return theme.Pane.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

// Result reports how the countdown ended. Meaningful after the program has
// finished running.
func (m Model) Result() Result {
	return m.result
}

func (m Model) Err() error {
	return m.err
}

func (m Model) Final() timerdto.StatusOutput {
	return m.status
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refresh() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.Status(context.Background())
		return statusMsg{out: out, err: err}
	}
}

func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02dm%02ds", total/60, total%60)
}
