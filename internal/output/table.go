package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/ghnotify/ghnotify/internal/format"
	"github.com/ghnotify/ghnotify/internal/model"
)

// TableFormatter renders notifications as a terminal table.
type TableFormatter struct{}

// hyperlink wraps text in an OSC 8 terminal hyperlink when stdout is a TTY.
func hyperlink(text, url string) string {
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// padCell pads a possibly-decorated cell to the column width using the
// plain text for width measurement. ANSI and OSC sequences have zero
// visible width, so measuring the decorated string directly would
// overcount.
func padCell(decorated, plain string, width int) string {
	visible := runewidth.StringWidth(plain)
	if visible >= width {
		return decorated
	}
	return decorated + strings.Repeat(" ", width-visible)
}

func colorReason(n model.Notification) string {
	label := format.ReasonLabel(n.DisplayReason())
	switch n.DisplayReason() {
	case "approved":
		return color.GreenString(label)
	case "changes_requested":
		return color.YellowString(label)
	case string(model.ReasonReviewRequested):
		return color.CyanString(label)
	case string(model.ReasonMention):
		return color.MagentaString(label)
	default:
		return label
	}
}

// Format outputs notifications as a table, most recent first.
func (f *TableFormatter) Format(items []model.Notification, fetchedAt time.Time, w io.Writer) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No unread notifications.")
		return nil
	}

	const (
		colRepo   = 28
		colType   = 7
		colTitle  = 44
		colReason = 22
		colActor  = 16
	)

	fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
		format.PadRight("Repository", colRepo),
		format.PadRight("Type", colType),
		format.PadRight("Title", colTitle),
		format.PadRight("Reason", colReason),
		format.PadRight("Actor", colActor),
		"Age")
	fmt.Fprintln(w, strings.Repeat("-", colRepo+colType+colTitle+colReason+colActor+14))

	for _, n := range items {
		title := format.Truncate(n.Title, colTitle)

		actor := n.ActivityAuthor
		if actor == "" {
			actor = n.Author
		}

		fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
			format.PadRight(format.Truncate(n.Repo, colRepo), colRepo),
			format.PadRight(format.TypeLabel(n.Type), colType),
			padCell(hyperlink(title, n.WebURL), title, colTitle),
			padCell(colorReason(n), format.ReasonLabel(n.DisplayReason()), colReason),
			format.PadRight(format.Truncate(actor, colActor), colActor),
			format.Age(n.UpdatedAt))
	}

	fmt.Fprintf(w, "\n%d notifications as of %s\n", len(items), fetchedAt.Local().Format("15:04"))
	return nil
}
