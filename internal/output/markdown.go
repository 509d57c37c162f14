package output

import (
	"fmt"
	"io"
	"time"

	"github.com/ghnotify/ghnotify/internal/format"
	"github.com/ghnotify/ghnotify/internal/model"
)

// MarkdownFormatter renders notifications as a markdown list, suitable
// for pasting into issues or standup notes.
type MarkdownFormatter struct{}

// Format outputs notifications grouped by repository. Repositories appear
// in order of their newest notification; items within a group keep their
// newest-first order.
func (f *MarkdownFormatter) Format(items []model.Notification, fetchedAt time.Time, w io.Writer) error {
	fmt.Fprintf(w, "# Notifications (%s)\n\n", fetchedAt.Local().Format("2006-01-02 15:04"))
	if len(items) == 0 {
		fmt.Fprintln(w, "No unread notifications.")
		return nil
	}

	var repos []string
	groups := make(map[string][]model.Notification)
	for _, n := range items {
		if _, ok := groups[n.Repo]; !ok {
			repos = append(repos, n.Repo)
		}
		groups[n.Repo] = append(groups[n.Repo], n)
	}

	for _, repo := range repos {
		fmt.Fprintf(w, "## %s\n\n", repo)
		for _, n := range groups[repo] {
			reason := format.ReasonLabel(n.DisplayReason())
			if n.ActivityAuthor != "" {
				reason = fmt.Sprintf("%s by %s", reason, n.ActivityAuthor)
			}
			if n.WebURL != "" {
				fmt.Fprintf(w, "- [%s](%s) (%s, %s)\n", n.Title, n.WebURL, reason, format.Age(n.UpdatedAt))
			} else {
				fmt.Fprintf(w, "- %s (%s, %s)\n", n.Title, reason, format.Age(n.UpdatedAt))
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
