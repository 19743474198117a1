package dashboard

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/subs-cli/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

const defaultBarWidth = 24

type RenderOptions struct {
	BarWidth int
}

func (o RenderOptions) barWidth() int {
	if o.BarWidth <= 0 {
		return defaultBarWidth
	}
	return o.BarWidth
}

type renderReadyMsg struct{}

type viewFunc func(styles) string

type model struct {
	view   viewFunc
	styles styles
	output string
}

func newModel(view viewFunc) model {
	return model{view: view, styles: newStyles()}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the dashboard: summary cards followed by one card per subscription.
func Render(dashboard application.Dashboard, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return dashboardView(dashboard, opts, s)
	})
}

// RenderDetail draws a single subscription.
func RenderDetail(view application.SubscriptionView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return detailView(view, opts, s)
	})
}

func run(view viewFunc) (string, error) {
	p := tea.NewProgram(
		newModel(view),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
