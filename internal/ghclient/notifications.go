package ghclient

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v57/github"

	"github.com/ghnotify/ghnotify/internal/log"
	"github.com/ghnotify/ghnotify/internal/model"
)

// ListNotifications fetches up to max of the user's most recent unread
// notifications in a single page.
func (c *Client) ListNotifications(ctx context.Context, max int) ([]model.Notification, error) {
	opts := &gh.NotificationListOptions{
		ListOptions: gh.ListOptions{
			PerPage: max,
		},
	}

	notifications, _, err := c.client.Activity.ListNotifications(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", wrapError(err))
	}

	items := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, convertNotification(n))
	}
	return items, nil
}

// convertNotification converts a GitHub API notification to our model type
func convertNotification(n *gh.Notification) model.Notification {
	item := model.Notification{
		ID:        n.GetID(),
		Reason:    model.Reason(n.GetReason()),
		UpdatedAt: n.GetUpdatedAt().Time,
	}

	if n.LastReadAt != nil {
		lastRead := n.GetLastReadAt().Time
		item.LastReadAt = &lastRead
	}

	repoHTMLURL := ""
	if repo := n.GetRepository(); repo != nil {
		item.Repo = repo.GetFullName()
		repoHTMLURL = repo.GetHTMLURL()
	}

	if subject := n.GetSubject(); subject != nil {
		item.Title = subject.GetTitle()
		item.URL = subject.GetURL()
		switch t := subject.GetType(); t {
		case "PullRequest", "Issue", "Release":
			item.Type = model.SubjectType(t)
		default:
			item.Type = model.SubjectOther
		}
	}

	item.WebURL = model.WebURLFor(item.URL, repoHTMLURL)

	return item
}

// MarkDone marks a notification thread as done (removed from the inbox).
// GitHub signals success with 204 No Content. Any other status is a soft
// failure: the caller may retry or leave the item in place.
func (c *Client) MarkDone(ctx context.Context, threadID string) bool {
	status, err := c.threadRequest(ctx, http.MethodDelete, threadID)
	if err != nil {
		log.Debug("mark done failed", "thread", threadID, "error", err)
		return false
	}
	return status == http.StatusNoContent
}

// MarkRead marks a notification thread as read. GitHub signals success with
// 205 Reset Content; 304 Not Modified means it was already read, which also
// counts as success.
func (c *Client) MarkRead(ctx context.Context, threadID string) bool {
	status, err := c.threadRequest(ctx, http.MethodPatch, threadID)
	if err != nil {
		log.Debug("mark read failed", "thread", threadID, "error", err)
		return false
	}
	return status == http.StatusResetContent || status == http.StatusNotModified
}

// threadRequest issues a mutation against a notification thread and returns
// the raw status code. It bypasses go-github's error mapping because the
// thread endpoints signal success via status code alone.
func (c *Client) threadRequest(ctx context.Context, method, threadID string) (int, error) {
	req, err := c.client.NewRequest(method, "notifications/threads/"+threadID, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Client().Do(req.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, nil
}
