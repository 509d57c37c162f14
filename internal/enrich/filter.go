package enrich

import (
	"github.com/ghnotify/ghnotify/internal/model"
)

// Retain decides whether an enriched notification is worth surfacing.
//
// Review requests aimed at a team rather than the user are never shown.
// Threads the user already engaged with (author, comment, subscribed) and
// closed or merged threads are only shown when something actually happened
// since the user last read them. Direct review requests and mentions are
// always shown.
func Retain(n *model.Notification) bool {
	if n.IsTeamReview {
		return false
	}
	if n.IsClosedOrMerged && len(n.NewActivities) == 0 {
		return false
	}
	switch n.Reason {
	case model.ReasonAuthor, model.ReasonComment, model.ReasonSubscribed:
		return len(n.NewActivities) > 0
	}
	return true
}

// Filter returns the notifications worth surfacing, preserving order.
func Filter(items []model.Notification) []model.Notification {
	kept := make([]model.Notification, 0, len(items))
	for i := range items {
		if Retain(&items[i]) {
			kept = append(kept, items[i])
		}
	}
	return kept
}
