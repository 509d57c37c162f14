// Package tui provides the interactive notification list.
package tui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghnotify/ghnotify/internal/model"
)

// Mutator performs thread state changes against the API.
type Mutator interface {
	MarkDone(ctx context.Context, threadID string) bool
	MarkRead(ctx context.Context, threadID string) bool
}

// ListModel is the Bubble Tea model for the interactive notification list.
type ListModel struct {
	items        []model.Notification
	cursor       int
	mutator      Mutator
	windowWidth  int
	windowHeight int
	statusMsg    string
	quitting     bool
}

// NewListModel creates a list model over an enriched notification list.
func NewListModel(items []model.Notification, mutator Mutator) ListModel {
	return ListModel{
		items:        items,
		mutator:      mutator,
		windowWidth:  80,
		windowHeight: 24,
	}
}

// Init implements tea.Model.
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case actionResultMsg:
		if msg.ok {
			m.removeCurrent(msg.threadID)
			m.statusMsg = msg.verb
		} else {
			m.statusMsg = "Failed to " + msg.verb
		}
		return m, clearStatusAfter(2 * time.Second)

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

func (m ListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
		return m, nil

	case "d":
		return m.mutate("marked done", func(ctx context.Context, id string) bool {
			return m.mutator.MarkDone(ctx, id)
		})

	case "r":
		return m.mutate("marked read", func(ctx context.Context, id string) bool {
			return m.mutator.MarkRead(ctx, id)
		})

	case "enter", "o":
		return m.openInBrowser()
	}

	return m, nil
}

// mutate runs a thread mutation for the item under the cursor.
func (m ListModel) mutate(verb string, fn func(context.Context, string) bool) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 || m.mutator == nil {
		return m, nil
	}
	id := m.items[m.cursor].ID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return actionResultMsg{threadID: id, verb: verb, ok: fn(ctx, id)}
	}
}

// removeCurrent drops a thread from the list after a successful mutation.
func (m *ListModel) removeCurrent(threadID string) {
	for i, n := range m.items {
		if n.ID == threadID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.items) && m.cursor > 0 {
		m.cursor = len(m.items) - 1
	}
}

func (m ListModel) openInBrowser() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	url := m.items[m.cursor].WebURL
	if url == "" {
		m.statusMsg = "No URL available"
		return m, clearStatusAfter(2 * time.Second)
	}
	return m, openURL(url)
}

// View implements tea.Model.
func (m ListModel) View() string {
	if m.quitting {
		return ""
	}
	return renderListView(m)
}

// actionResultMsg reports the outcome of a thread mutation.
type actionResultMsg struct {
	threadID string
	verb     string
	ok       bool
}

type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// openURL opens a URL in the default browser.
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd

		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			return nil
		}

		_ = cmd.Start()
		return nil
	}
}
