package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Calls slower than this get an elapsed-seconds suffix.
const elapsedAfter = 2 * time.Second

var (
	indicatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	elapsedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type taskSettled struct {
	err error
}

// pendingIndicator is the one-line status shown on stderr while a backend
// call is in flight. It clears itself once the call settles.
type pendingIndicator struct {
	dots    spinner.Model
	label   string
	started time.Time
	elapsed time.Duration
	task    tea.Cmd
	settled bool
	outcome error
}

func newPendingIndicator(label string, started time.Time, task tea.Cmd) pendingIndicator {
	return pendingIndicator{
		dots:    spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(indicatorStyle)),
		label:   label,
		started: started,
		task:    task,
	}
}

func (m pendingIndicator) Init() tea.Cmd {
	return tea.Batch(m.dots.Tick, m.task)
}

func (m pendingIndicator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if settled, ok := msg.(taskSettled); ok {
		m.settled = true
		m.outcome = settled.err
		return m, tea.Quit
	}

	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return m, nil
	}

	m.elapsed = tick.Time.Sub(m.started)
	var next tea.Cmd
	m.dots, next = m.dots.Update(tick)
	return m, next
}

func (m pendingIndicator) View() string {
	if m.settled {
		return ""
	}

	line := m.dots.View() + " " + m.label
	if m.elapsed >= elapsedAfter {
		line += elapsedStyle.Render(fmt.Sprintf(" %ds", int(m.elapsed/time.Second)))
	}
	return line
}

func showPending(ctx context.Context, w io.Writer, label string, task func(context.Context) error) error {
	run := func() tea.Msg {
		return taskSettled{err: task(ctx)}
	}

	program := tea.NewProgram(
		newPendingIndicator(label, time.Now(), run),
		tea.WithInput(nil),
		tea.WithOutput(w),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("pending indicator: %w", err)
	}

	indicator, ok := final.(pendingIndicator)
	if !ok {
		return fmt.Errorf("pending indicator ended as %T", final)
	}
	return indicator.outcome
}

// awaitResult runs task behind a pending indicator on stderr and returns its
// result. quiet runs task directly, which JSON output uses so scripted callers
// only ever see the result.
func awaitResult[T any](cmd *cobra.Command, quiet bool, label string, task func(context.Context) (T, error)) (T, error) {
	if quiet {
		return task(cmd.Context())
	}

	var result T
	err := showPending(cmd.Context(), cmd.ErrOrStderr(), label, func(ctx context.Context) error {
		var err error
		result, err = task(ctx)
		return err
	})
	return result, err
}
