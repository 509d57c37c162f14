package format

import (
	"github.com/ghnotify/ghnotify/internal/model"
)

// reasonLabels maps raw reason codes and activity-derived reasons to the
// text shown to the user.
var reasonLabels = map[string]string{
	"review_requested":  "Review requested",
	"mention":           "Mentioned",
	"author":            "Author",
	"comment":           "Comment",
	"subscribed":        "Watching",
	"approved":          "Approved",
	"changes_requested": "Changes requested",
	"reviewed":          "Reviewed",
	"commented":         "Commented",
}

// ReasonLabel renders a display reason. Derived reasons like "3 comments"
// pass through unchanged.
func ReasonLabel(reason string) string {
	if label, ok := reasonLabels[reason]; ok {
		return label
	}
	return reason
}

// TypeLabel renders a subject type compactly.
func TypeLabel(t model.SubjectType) string {
	switch t {
	case model.SubjectPullRequest:
		return "PR"
	case model.SubjectIssue:
		return "Issue"
	case model.SubjectRelease:
		return "Release"
	default:
		return string(t)
	}
}
