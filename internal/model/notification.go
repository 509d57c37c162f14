// Package model contains domain types for the ghnotify application.
// These types are independent of any external GitHub library.
package model

import (
	"strings"
	"time"
)

// Reason represents why the user received a notification.
// See: https://docs.github.com/en/rest/activity/notifications
type Reason string

const (
	ReasonReviewRequested Reason = "review_requested"
	ReasonAuthor          Reason = "author"
	ReasonMention         Reason = "mention"
	ReasonComment         Reason = "comment"
	ReasonSubscribed      Reason = "subscribed"
)

// AllowedReasons returns the set of reasons worth surfacing. The subscribed
// reason is optional because watching a repository produces a lot of noise.
func AllowedReasons(includeSubscribed bool) map[Reason]bool {
	allowed := map[Reason]bool{
		ReasonReviewRequested: true,
		ReasonAuthor:          true,
		ReasonMention:         true,
		ReasonComment:         true,
	}
	if includeSubscribed {
		allowed[ReasonSubscribed] = true
	}
	return allowed
}

// SubjectType represents the type of notification subject
type SubjectType string

const (
	SubjectPullRequest SubjectType = "PullRequest"
	SubjectIssue       SubjectType = "Issue"
	SubjectRelease     SubjectType = "Release"
	SubjectOther       SubjectType = "Other"
)

// ActivityKind classifies a single piece of new activity on a thread.
type ActivityKind string

const (
	ActivityComment          ActivityKind = "comment"
	ActivityReviewComment    ActivityKind = "review_comment"
	ActivityReviewed         ActivityKind = "reviewed"
	ActivityApproved         ActivityKind = "approved"
	ActivityChangesRequested ActivityKind = "changes_requested"
)

// ActivityEvent is one new comment or review on a thread since the user
// last read it. Events are immutable and sorted newest-first.
type ActivityEvent struct {
	Kind      ActivityKind `json:"kind"`
	Author    string       `json:"author,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Notification is a single inbox item. The raw fields come straight from
// the notifications list endpoint; the enrichment fields are populated by
// the pipeline on each run and never mutated afterwards.
type Notification struct {
	ID         string      `json:"id"`
	Repo       string      `json:"repo"`
	Title      string      `json:"title"`
	Type       SubjectType `json:"type"`
	Reason     Reason      `json:"reason"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	LastReadAt *time.Time  `json:"lastReadAt"` // nil = never read
	URL        string      `json:"url,omitempty"`
	WebURL     string      `json:"webUrl,omitempty"`

	// Enrichment output
	Author           string          `json:"author,omitempty"`
	NewActivities    []ActivityEvent `json:"newActivities,omitempty"`
	SpecificReason   string          `json:"specificReason,omitempty"`
	ActivityAuthor   string          `json:"activityAuthor,omitempty"`
	IsTeamReview     bool            `json:"isTeamReview,omitempty"`
	IsClosedOrMerged bool            `json:"isClosedOrMerged,omitempty"`
}

// DisplayReason returns the reason shown to the user. An activity-derived
// specific reason takes precedence over the raw reason code.
func (n *Notification) DisplayReason() string {
	if n.SpecificReason != "" {
		return n.SpecificReason
	}
	return string(n.Reason)
}

// NeedsActivityCheck reports whether secondary activity should be fetched
// for this notification. Only threads the user already engaged with on a
// pull request carry useful "what changed since you read it" context.
func (n *Notification) NeedsActivityCheck() bool {
	if n.Type != SubjectPullRequest {
		return false
	}
	return n.Reason == ReasonAuthor || n.Reason == ReasonComment || n.Reason == ReasonSubscribed
}

// WebURLFor derives the browser URL for a subject API URL, falling back to
// the repository HTML URL when the subject has none.
func WebURLFor(subjectURL, repoHTMLURL string) string {
	if subjectURL == "" {
		return repoHTMLURL
	}
	web := strings.Replace(subjectURL, "api.github.com/repos", "github.com", 1)
	return strings.Replace(web, "/pulls/", "/pull/", 1)
}
