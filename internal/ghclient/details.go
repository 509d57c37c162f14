package ghclient

import (
	"context"
	"fmt"

	"github.com/ghnotify/ghnotify/internal/model"
	"github.com/ghnotify/ghnotify/internal/urlutil"
)

// SubjectDetails is the slice of an issue or pull request record the
// enrichment pipeline cares about.
type SubjectDetails struct {
	Author             string
	State              string // open, closed
	Merged             bool
	RequestedReviewers []string
}

// IsClosedOrMerged reports whether the subject is no longer active.
func (d *SubjectDetails) IsClosedOrMerged() bool {
	return d.Merged || d.State == "closed"
}

// GetSubjectDetails fetches the full record behind a notification's subject
// URL. Only pull requests and issues carry details worth fetching; other
// subject types return nil without an API call.
func (c *Client) GetSubjectDetails(ctx context.Context, n *model.Notification) (*SubjectDetails, error) {
	if n.URL == "" {
		return nil, nil
	}

	owner, repo, err := urlutil.SplitRepoFullName(n.Repo)
	if err != nil {
		return nil, err
	}

	number, err := urlutil.ExtractSubjectNumber(n.URL)
	if err != nil {
		return nil, err
	}

	switch n.Type {
	case model.SubjectPullRequest:
		return c.pullRequestDetails(ctx, owner, repo, number)
	case model.SubjectIssue:
		return c.issueDetails(ctx, owner, repo, number)
	default:
		return nil, nil
	}
}

func (c *Client) pullRequestDetails(ctx context.Context, owner, repo string, number int) (*SubjectDetails, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get PR #%d: %w", number, wrapError(err))
	}

	details := &SubjectDetails{
		Author: pr.GetUser().GetLogin(),
		State:  pr.GetState(),
		Merged: pr.GetMerged(),
	}
	for _, reviewer := range pr.RequestedReviewers {
		details.RequestedReviewers = append(details.RequestedReviewers, reviewer.GetLogin())
	}

	return details, nil
}

func (c *Client) issueDetails(ctx context.Context, owner, repo string, number int) (*SubjectDetails, error) {
	issue, _, err := c.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, wrapError(err))
	}

	return &SubjectDetails{
		Author: issue.GetUser().GetLogin(),
		State:  issue.GetState(),
	}, nil
}
