package tui

import (
	"fmt"
	"strings"

	"github.com/ghnotify/ghnotify/internal/format"
	"github.com/ghnotify/ghnotify/internal/model"
)

const (
	headerLines = 2
	footerLines = 3
)

// renderListView renders the notification list with a scroll window
// around the cursor.
func renderListView(m ListModel) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Notifications (%d)", len(m.items))))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(dimStyle.Render("Inbox zero. Nothing needs your attention."))
		b.WriteString("\n")
		b.WriteString(renderHelp())
		return b.String()
	}

	availableHeight := m.windowHeight - headerLines - footerLines
	if availableHeight < 1 {
		availableHeight = 1
	}
	start, end := scrollWindow(m.cursor, len(m.items), availableHeight)

	for i := start; i < end; i++ {
		b.WriteString(renderRow(m.items[i], i == m.cursor, m.windowWidth))
		b.WriteString("\n")
	}

	b.WriteString(renderHelp())
	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.statusMsg))
	}
	return b.String()
}

// scrollWindow keeps the cursor visible within the given height.
func scrollWindow(cursor, total, height int) (start, end int) {
	if total <= height {
		return 0, total
	}
	start = cursor - height/2
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

func renderRow(n model.Notification, selected bool, width int) string {
	titleWidth := width - 50
	if titleWidth < 20 {
		titleWidth = 20
	}

	reason := format.ReasonLabel(n.DisplayReason())
	styledReason := reasonStyle.Render(reason)
	switch n.DisplayReason() {
	case "approved":
		styledReason = approvedStyle.Render(reason)
	case "changes_requested":
		styledReason = changesStyle.Render(reason)
	}

	actor := n.ActivityAuthor
	if actor == "" {
		actor = n.Author
	}
	meta := styledReason
	if actor != "" {
		meta += dimStyle.Render(" by " + actor)
	}

	// Styles wrap text in escape sequences, so pad before styling.
	line := fmt.Sprintf("%s  %s  %s  %s  %s",
		repoStyle.Render(format.PadRight(format.Truncate(n.Repo, 24), 24)),
		format.PadRight(format.TypeLabel(n.Type), 7),
		format.PadRight(format.Truncate(n.Title, titleWidth), titleWidth),
		meta,
		dimStyle.Render(format.Age(n.UpdatedAt)))

	cursor := "  "
	if selected {
		cursor = selectedStyle.Render("> ")
	}
	return cursor + line
}

func renderHelp() string {
	return helpStyle.Render("j/k move · enter open · d done · r read · q quit")
}
