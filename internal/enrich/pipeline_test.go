package enrich

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ghnotify/ghnotify/internal/ghclient"
	"github.com/ghnotify/ghnotify/internal/model"
)

// fakeFetcher serves canned data keyed by thread ID and subject number.
type fakeFetcher struct {
	notifications []model.Notification
	listErr       error
	details       map[string]*ghclient.SubjectDetails
	comments      map[int][]model.ActivityEvent
	reviews       map[int][]model.ActivityEvent

	detailFailures int
	detailCalls    int
}

func (f *fakeFetcher) ListNotifications(_ context.Context, _ int) ([]model.Notification, error) {
	return f.notifications, f.listErr
}

func (f *fakeFetcher) GetSubjectDetails(_ context.Context, n *model.Notification) (*ghclient.SubjectDetails, error) {
	f.detailCalls++
	if f.detailFailures > 0 {
		f.detailFailures--
		return nil, fmt.Errorf("transient failure for %s", n.ID)
	}
	d, ok := f.details[n.ID]
	if !ok {
		return nil, fmt.Errorf("no details for %s", n.ID)
	}
	return d, nil
}

func (f *fakeFetcher) FetchIssueComments(_ context.Context, _, _ string, number int, _ *time.Time, _ string) []model.ActivityEvent {
	return f.comments[number]
}

func (f *fakeFetcher) FetchReviewComments(_ context.Context, _, _ string, _ int, _ *time.Time, _ string) []model.ActivityEvent {
	return nil
}

func (f *fakeFetcher) FetchReviews(_ context.Context, _, _ string, number int, _ *time.Time, _ string) []model.ActivityEvent {
	return f.reviews[number]
}

func notif(id, repo string, reason model.Reason, typ model.SubjectType, number int, age time.Duration) model.Notification {
	url := ""
	if number > 0 {
		url = fmt.Sprintf("https://api.github.com/repos/%s/pulls/%d", repo, number)
	}
	return model.Notification{
		ID:        id,
		Repo:      repo,
		Title:     "thread " + id,
		Reason:    reason,
		Type:      typ,
		URL:       url,
		UpdatedAt: time.Now().Add(-age),
	}
}

func TestPipelineDropsDisallowedReasons(t *testing.T) {
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("1", "own/repo", model.ReasonMention, model.SubjectIssue, 0, time.Minute),
			notif("2", "own/repo", model.Reason("ci_activity"), model.SubjectPullRequest, 0, time.Minute),
			notif("3", "own/repo", model.Reason("security_alert"), model.SubjectOther, 0, time.Minute),
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{IncludeSubscribed: true})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(result.Items) != 1 || result.Items[0].ID != "1" {
		t.Errorf("Run() kept %v, want only thread 1", ids(result.Items))
	}
}

func TestPipelineSubscribedToggle(t *testing.T) {
	raw := []model.Notification{
		notif("1", "own/repo", model.ReasonMention, model.SubjectIssue, 0, time.Minute),
		notif("2", "own/repo", model.ReasonSubscribed, model.SubjectIssue, 0, time.Minute),
	}

	p := New(&fakeFetcher{notifications: raw}, Session{Login: "me"}, Options{IncludeSubscribed: false})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "1" {
		t.Errorf("with subscribed excluded, kept %v, want only thread 1", ids(result.Items))
	}
}

func TestPipelineListErrorIsFatal(t *testing.T) {
	p := New(&fakeFetcher{listErr: fmt.Errorf("boom")}, Session{Login: "me"}, Options{})
	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Run() expected error when the list fetch fails")
	}
}

func TestPipelineDetailErrorKeepsItem(t *testing.T) {
	// A mention whose detail fetch fails still surfaces with partial data.
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("1", "own/repo", model.ReasonMention, model.SubjectPullRequest, 7, time.Minute),
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("Run() kept %d items, want 1", len(result.Items))
	}
	if result.Items[0].Author != "" {
		t.Errorf("unexpected author %q on unenriched item", result.Items[0].Author)
	}
}

func TestPipelineTeamReviewAutoResolve(t *testing.T) {
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("team", "own/repo", model.ReasonReviewRequested, model.SubjectPullRequest, 1, time.Minute),
			notif("direct", "own/repo", model.ReasonReviewRequested, model.SubjectPullRequest, 2, 2*time.Minute),
		},
		details: map[string]*ghclient.SubjectDetails{
			"team":   {Author: "alice", State: "open", RequestedReviewers: []string{"someone-else"}},
			"direct": {Author: "alice", State: "open", RequestedReviewers: []string{"me"}},
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(result.AutoResolve) != 1 || result.AutoResolve[0] != "team" {
		t.Errorf("AutoResolve = %v, want [team]", result.AutoResolve)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "direct" {
		t.Errorf("Items = %v, want only the direct request", ids(result.Items))
	}
}

func TestPipelineActivitySummary(t *testing.T) {
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("1", "own/repo", model.ReasonAuthor, model.SubjectPullRequest, 42, time.Minute),
		},
		details: map[string]*ghclient.SubjectDetails{
			"1": {Author: "me", State: "open"},
		},
		comments: map[int][]model.ActivityEvent{
			42: {
				{Kind: model.ActivityComment, Author: "alice", CreatedAt: time.Now().Add(-2 * time.Minute)},
				{Kind: model.ActivityComment, Author: "bob", CreatedAt: time.Now().Add(-time.Minute)},
			},
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("Run() kept %d items, want 1", len(result.Items))
	}

	got := result.Items[0]
	if got.SpecificReason != "2 comments" {
		t.Errorf("SpecificReason = %q, want %q", got.SpecificReason, "2 comments")
	}
	if got.ActivityAuthor != "bob, alice" {
		t.Errorf("ActivityAuthor = %q, want %q", got.ActivityAuthor, "bob, alice")
	}
	// Events arrive sorted newest first.
	if len(got.NewActivities) != 2 || !got.NewActivities[0].CreatedAt.After(got.NewActivities[1].CreatedAt) {
		t.Errorf("NewActivities not sorted newest first: %v", got.NewActivities)
	}
}

func TestPipelineClosedWithoutActivityDropped(t *testing.T) {
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("1", "own/repo", model.ReasonAuthor, model.SubjectPullRequest, 7, time.Minute),
		},
		details: map[string]*ghclient.SubjectDetails{
			"1": {Author: "me", State: "closed", Merged: true},
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("Run() kept %v, want merged silent thread dropped", ids(result.Items))
	}
}

func TestPipelineSortsNewestFirst(t *testing.T) {
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("old", "own/repo", model.ReasonMention, model.SubjectIssue, 0, time.Hour),
			notif("new", "own/repo", model.ReasonMention, model.SubjectIssue, 0, time.Minute),
			notif("mid", "own/repo", model.ReasonMention, model.SubjectIssue, 0, 30*time.Minute),
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"new", "mid", "old"}
	got := ids(result.Items)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestPipelineExcludeRepo(t *testing.T) {
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("1", "own/noisy", model.ReasonMention, model.SubjectIssue, 0, time.Minute),
			notif("2", "own/quiet", model.ReasonMention, model.SubjectIssue, 0, time.Minute),
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{
		ExcludeRepo: func(repo string) bool { return repo == "own/noisy" },
	})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "2" {
		t.Errorf("Run() kept %v, want only thread 2", ids(result.Items))
	}
}

func TestPipelineSinceCutoff(t *testing.T) {
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("recent", "own/repo", model.ReasonMention, model.SubjectIssue, 0, time.Hour),
			notif("ancient", "own/repo", model.ReasonMention, model.SubjectIssue, 0, 48*time.Hour),
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{Since: time.Now().Add(-24 * time.Hour)})
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "recent" {
		t.Errorf("Run() kept %v, want only the recent thread", ids(result.Items))
	}
}

// fakeCache is an in-memory Cacher keyed like the on-disk one.
type fakeCache struct {
	entries map[string]model.Notification
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]model.Notification)}
}

func (c *fakeCache) Get(threadID string, updatedAt time.Time) (*model.Notification, bool) {
	n, ok := c.entries[threadID]
	if !ok || !updatedAt.Equal(n.UpdatedAt) {
		return nil, false
	}
	copied := n
	return &copied, true
}

func (c *fakeCache) Set(threadID string, _ time.Time, n *model.Notification) error {
	c.entries[threadID] = *n
	return nil
}

func TestPipelineCacheSkipsEnrichment(t *testing.T) {
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("1", "own/repo", model.ReasonAuthor, model.SubjectPullRequest, 42, time.Minute),
		},
		details: map[string]*ghclient.SubjectDetails{
			"1": {Author: "me", State: "open"},
		},
		comments: map[int][]model.ActivityEvent{
			42: {{Kind: model.ActivityComment, Author: "alice", CreatedAt: time.Now().Add(-time.Minute)}},
		},
	}

	p := New(fetcher, Session{Login: "me"}, Options{Cache: newFakeCache()})

	for run := 1; run <= 2; run++ {
		result, err := p.Run(context.Background())
		if err != nil {
			t.Fatalf("run %d error: %v", run, err)
		}
		if len(result.Items) != 1 || result.Items[0].SpecificReason != "commented" {
			t.Fatalf("run %d items = %+v", run, result.Items)
		}
	}

	if fetcher.detailCalls != 1 {
		t.Errorf("detail calls = %d, want 1 (second run served from cache)", fetcher.detailCalls)
	}
}

func TestPipelineFailedEnrichmentNotCached(t *testing.T) {
	// A transient detail failure must not poison the cache under the
	// thread's UpdatedAt, or the retry would never happen and an author
	// thread with real new activity would stay hidden.
	fetcher := &fakeFetcher{
		notifications: []model.Notification{
			notif("1", "own/repo", model.ReasonAuthor, model.SubjectPullRequest, 42, time.Minute),
		},
		details: map[string]*ghclient.SubjectDetails{
			"1": {Author: "me", State: "open"},
		},
		comments: map[int][]model.ActivityEvent{
			42: {{Kind: model.ActivityComment, Author: "alice", CreatedAt: time.Now().Add(-time.Minute)}},
		},
		detailFailures: 1,
	}

	p := New(fetcher, Session{Login: "me"}, Options{Cache: newFakeCache()})

	// First run absorbs the failure; the un-enriched author thread is
	// filtered out for lack of activity.
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("first run kept %v, want none", ids(result.Items))
	}

	// Second run retries the detail fetch and surfaces the activity.
	result, err = p.Run(context.Background())
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].SpecificReason != "commented" {
		t.Fatalf("second run items = %+v, want the enriched thread", result.Items)
	}
	if fetcher.detailCalls != 2 {
		t.Errorf("detail calls = %d, want 2 (failure retried)", fetcher.detailCalls)
	}
}

func ids(items []model.Notification) []string {
	out := make([]string, len(items))
	for i, n := range items {
		out[i] = n.ID
	}
	return out
}
