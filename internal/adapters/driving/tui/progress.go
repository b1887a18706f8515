// Package tui provides the terminal progress runner for long
// operations. It renders a spinner with streaming status lines while a
// pipeline runs in the background, and returns the pipeline's result
// once it finishes.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/draftlab/scriptforge/internal/adapters/driving/tui/styles"
)

// ErrInterrupted is returned when the user aborts a running pipeline.
var ErrInterrupted = errors.New("tui: interrupted")

// Pipeline is the long operation driven by the runner. It reports
// human-readable progress through report and returns its final output.
type Pipeline func(ctx context.Context, report func(status string)) (string, error)

// statusMsg carries a progress line from the pipeline goroutine.
type statusMsg string

// doneMsg carries the pipeline outcome.
type doneMsg struct {
	result string
	err    error
}

// runnerModel is the bubbletea model behind the progress runner.
type runnerModel struct {
	title   string
	spinner spinner.Model
	styles  *styles.Styles
	cancel  context.CancelFunc

	status      string
	done        bool
	interrupted bool
	result      string
	err         error
}

func newRunnerModel(title string, cancel context.CancelFunc) runnerModel {
	st := styles.DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	return runnerModel{
		title:   title,
		spinner: sp,
		styles:  st,
		cancel:  cancel,
		status:  "Starting...",
	}
}

// Init implements tea.Model.
func (m runnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m runnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.interrupted = true
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case doneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m runnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n\n %s %s\n\n%s\n",
		m.styles.Title.Render(m.title),
		m.spinner.View(),
		m.styles.Normal.Render(m.status),
		m.styles.Muted.Render("press q to abort"),
	)
}

// Run executes the pipeline under a spinner UI and blocks until it
// finishes or the user aborts. The pipeline's context is cancelled on
// abort.
func Run(ctx context.Context, title string, pipeline Pipeline) (string, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newRunnerModel(title, cancel), tea.WithContext(ctx))

	go func() {
		result, err := pipeline(runCtx, func(status string) {
			p.Send(statusMsg(status))
		})
		p.Send(doneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("progress UI: %w", err)
	}

	m, ok := final.(runnerModel)
	if !ok {
		return "", errors.New("tui: unexpected model type")
	}
	if m.interrupted {
		return "", ErrInterrupted
	}
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}
