package enrich

import (
	"context"
	"time"

	"github.com/ghnotify/ghnotify/internal/ghclient"
	"github.com/ghnotify/ghnotify/internal/model"
)

// Fetcher defines the GitHub API surface the pipeline needs.
// This interface enables mocking the API in unit tests.
type Fetcher interface {
	// Notifications
	ListNotifications(ctx context.Context, max int) ([]model.Notification, error)

	// Subject detail
	GetSubjectDetails(ctx context.Context, n *model.Notification) (*ghclient.SubjectDetails, error)

	// Secondary activity sources. These never fail: an error yields an
	// empty list.
	FetchIssueComments(ctx context.Context, owner, repo string, number int, cutoff *time.Time, selfLogin string) []model.ActivityEvent
	FetchReviewComments(ctx context.Context, owner, repo string, number int, cutoff *time.Time, selfLogin string) []model.ActivityEvent
	FetchReviews(ctx context.Context, owner, repo string, number int, cutoff *time.Time, selfLogin string) []model.ActivityEvent
}

// Ensure Client implements Fetcher interface.
var _ Fetcher = (*ghclient.Client)(nil)
