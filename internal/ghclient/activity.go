package ghclient

import (
	"context"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"

	"github.com/ghnotify/ghnotify/internal/log"
	"github.com/ghnotify/ghnotify/internal/model"
)

// activityPageSize bounds how many secondary items are fetched per source.
const activityPageSize = 50

// unreadFallbackCount bounds the activity list for never-read threads, so a
// long-lived unread thread does not produce an unbounded event list.
const unreadFallbackCount = 5

// FetchIssueComments returns the new general comments on an issue or pull
// request. With a cutoff, only comments strictly newer than it count; with
// none, the most recent few count. Self-authored comments never count as
// new activity. Any fetch error yields an empty list so one failed source
// cannot abort enrichment of its parent.
func (c *Client) FetchIssueComments(ctx context.Context, owner, repo string, number int, cutoff *time.Time, selfLogin string) []model.ActivityEvent {
	comments, _, err := c.client.Issues.ListComments(ctx, owner, repo, number, &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: activityPageSize},
	})
	if err != nil {
		log.Debug("failed to fetch issue comments", "repo", owner+"/"+repo, "number", number, "error", err)
		return nil
	}

	events := make([]model.ActivityEvent, 0, len(comments))
	for _, comment := range comments {
		events = append(events, model.ActivityEvent{
			Kind:      model.ActivityComment,
			Author:    comment.GetUser().GetLogin(),
			CreatedAt: comment.GetCreatedAt().Time,
		})
	}
	return selectNewActivity(events, cutoff, selfLogin)
}

// FetchReviewComments returns the new inline review comments on a pull
// request, with the same cutoff and self-author semantics as
// FetchIssueComments.
func (c *Client) FetchReviewComments(ctx context.Context, owner, repo string, number int, cutoff *time.Time, selfLogin string) []model.ActivityEvent {
	comments, _, err := c.client.PullRequests.ListComments(ctx, owner, repo, number, &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: activityPageSize},
	})
	if err != nil {
		log.Debug("failed to fetch review comments", "repo", owner+"/"+repo, "number", number, "error", err)
		return nil
	}

	events := make([]model.ActivityEvent, 0, len(comments))
	for _, comment := range comments {
		events = append(events, model.ActivityEvent{
			Kind:      model.ActivityReviewComment,
			Author:    comment.GetUser().GetLogin(),
			CreatedAt: comment.GetCreatedAt().Time,
		})
	}
	return selectNewActivity(events, cutoff, selfLogin)
}

// FetchReviews returns the new formal reviews on a pull request, with the
// same cutoff and self-author semantics as FetchIssueComments.
func (c *Client) FetchReviews(ctx context.Context, owner, repo string, number int, cutoff *time.Time, selfLogin string) []model.ActivityEvent {
	reviews, _, err := c.client.PullRequests.ListReviews(ctx, owner, repo, number, &gh.ListOptions{
		PerPage: activityPageSize,
	})
	if err != nil {
		log.Debug("failed to fetch reviews", "repo", owner+"/"+repo, "number", number, "error", err)
		return nil
	}

	events := make([]model.ActivityEvent, 0, len(reviews))
	for _, review := range reviews {
		events = append(events, model.ActivityEvent{
			Kind:      reviewActivityKind(review.GetState()),
			Author:    review.GetUser().GetLogin(),
			CreatedAt: review.GetSubmittedAt().Time,
		})
	}
	return selectNewActivity(events, cutoff, selfLogin)
}

// reviewActivityKind normalizes a review state. A "commented" review is
// just a review; so is anything unrecognized.
func reviewActivityKind(state string) model.ActivityKind {
	switch strings.ToLower(state) {
	case "approved":
		return model.ActivityApproved
	case "changes_requested":
		return model.ActivityChangesRequested
	default:
		return model.ActivityReviewed
	}
}

// selectNewActivity applies the shared retention rules to a page of events,
// which arrive in ascending creation order.
func selectNewActivity(events []model.ActivityEvent, cutoff *time.Time, selfLogin string) []model.ActivityEvent {
	kept := make([]model.ActivityEvent, 0, len(events))
	for _, event := range events {
		if event.Author == selfLogin {
			continue
		}
		if cutoff != nil && !event.CreatedAt.After(*cutoff) {
			continue
		}
		kept = append(kept, event)
	}

	// Never-read threads keep only the most recent few.
	if cutoff == nil && len(kept) > unreadFallbackCount {
		kept = kept[len(kept)-unreadFallbackCount:]
	}

	if len(kept) == 0 {
		return nil
	}
	return kept
}
