package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghnotify/ghnotify/internal/enrich"
)

// fetchDoneMsg carries the pipeline result into the progress model.
type fetchDoneMsg struct {
	result *enrich.Result
	err    error
}

// ProgressModel shows a spinner while the pipeline runs, then quits.
type ProgressModel struct {
	spinner spinner.Model
	fetch   func(context.Context) (*enrich.Result, error)
	ctx     context.Context

	result    *enrich.Result
	err       error
	cancelled bool
}

// NewProgressModel wraps a pipeline run in a spinner display.
func NewProgressModel(ctx context.Context, fetch func(context.Context) (*enrich.Result, error)) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle
	return ProgressModel{spinner: s, fetch: fetch, ctx: ctx}
}

// Result returns the pipeline outcome after the program exits.
func (m ProgressModel) Result() (*enrich.Result, error) {
	if m.cancelled {
		return nil, context.Canceled
	}
	return m.result, m.err
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := m.fetch(m.ctx)
		return fetchDoneMsg{result: result, err: err}
	})
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	if m.result != nil || m.err != nil || m.cancelled {
		return ""
	}
	return fmt.Sprintf("  %s Fetching notifications...\n%s\n",
		m.spinner.View(),
		helpStyle.Render("  Press Ctrl+C to cancel"))
}
