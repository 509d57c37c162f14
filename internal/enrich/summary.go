package enrich

import (
	"fmt"

	"github.com/ghnotify/ghnotify/internal/model"
)

// authorLabelMax is how many distinct authors are named before the label
// collapses into a "+N" suffix.
const authorLabelMax = 2

// Summarize reduces a notification's new activity into a single display
// reason and an actor label. It is a pure function: no activity leaves both
// fields empty, and the same input always produces the same output.
func Summarize(events []model.ActivityEvent) (specificReason, activityAuthor string) {
	if len(events) == 0 {
		return "", ""
	}

	activityAuthor = authorLabel(events)

	counts := make(map[model.ActivityKind]int, len(events))
	for _, event := range events {
		counts[event.Kind]++
	}

	// Show the most consequential activity kind only.
	switch {
	case counts[model.ActivityApproved] > 1:
		specificReason = fmt.Sprintf("%d approvals", counts[model.ActivityApproved])
	case counts[model.ActivityApproved] == 1:
		specificReason = "approved"
	case counts[model.ActivityChangesRequested] > 0:
		specificReason = "changes_requested"
	case counts[model.ActivityReviewed] > 1:
		specificReason = fmt.Sprintf("%d reviews", counts[model.ActivityReviewed])
	case counts[model.ActivityReviewed] == 1:
		specificReason = "reviewed"
	default:
		comments := counts[model.ActivityComment] + counts[model.ActivityReviewComment]
		if comments > 1 {
			specificReason = fmt.Sprintf("%d comments", comments)
		} else if comments == 1 {
			specificReason = "commented"
		}
	}

	return specificReason, activityAuthor
}

// authorLabel joins the first two distinct author logins in first-seen
// order, adding a "+N" suffix for any beyond that.
func authorLabel(events []model.ActivityEvent) string {
	seen := make(map[string]bool, len(events))
	var authors []string
	for _, event := range events {
		if event.Author == "" || seen[event.Author] {
			continue
		}
		seen[event.Author] = true
		authors = append(authors, event.Author)
	}

	if len(authors) == 0 {
		return ""
	}

	label := ""
	for i, author := range authors {
		if i >= authorLabelMax {
			label += fmt.Sprintf(" +%d", len(authors)-authorLabelMax)
			break
		}
		if i > 0 {
			label += ", "
		}
		label += author
	}
	return label
}
