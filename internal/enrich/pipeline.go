// Package enrich implements the notification enrichment pipeline: it turns
// the raw unread inbox into a filtered, summarized, ranked list.
package enrich

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ghnotify/ghnotify/internal/log"
	"github.com/ghnotify/ghnotify/internal/model"
	"github.com/ghnotify/ghnotify/internal/urlutil"
)

// Session carries the acting user's identity through a pipeline run. It is
// resolved once at bootstrap and passed in explicitly.
type Session struct {
	Login string
}

// Options configures a pipeline run.
type Options struct {
	// IncludeSubscribed surfaces "subscribed" (watching) notifications.
	IncludeSubscribed bool

	// BatchSize bounds how many detail fetches run concurrently. Batches
	// run sequentially; items within a batch run in parallel.
	BatchSize int

	// MaxNotifications bounds the raw list fetch.
	MaxNotifications int

	// Since, when non-zero, drops notifications last updated before it.
	Since time.Time

	// ExcludeRepo, when non-nil, drops notifications from matching
	// repositories during quick parse.
	ExcludeRepo func(repoFullName string) bool

	// Cache, when non-nil, serves enrichment results for threads whose
	// UpdatedAt has not changed since the last run.
	Cache Cacher
}

// Cacher stores enriched notifications between runs.
type Cacher interface {
	Get(threadID string, updatedAt time.Time) (*model.Notification, bool)
	Set(threadID string, updatedAt time.Time, n *model.Notification) error
}

// Result is the output of one pipeline run.
type Result struct {
	// Items is the final filtered, enriched list, newest first.
	Items []model.Notification

	// AutoResolve lists thread IDs of team review requests that should be
	// marked done so they stop re-appearing. The caller issues the
	// mutations; the pipeline only reports them.
	AutoResolve []string

	FetchedAt time.Time
}

// Pipeline orchestrates one enrichment run.
type Pipeline struct {
	fetcher Fetcher
	session Session
	opts    Options
}

// New creates a pipeline for the given session.
func New(fetcher Fetcher, session Session, opts Options) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	if opts.MaxNotifications <= 0 {
		opts.MaxNotifications = 100
	}
	return &Pipeline{
		fetcher: fetcher,
		session: session,
		opts:    opts,
	}
}

// Run executes one full enrichment pass. Only the raw list fetch is fatal;
// every per-item failure is absorbed and the item proceeds with whatever
// partial data it has.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	raw, err := p.fetcher.ListNotifications(ctx, p.opts.MaxNotifications)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inbox: %w", err)
	}

	items := p.quickParse(raw)
	log.Info("quick parse", "raw", len(raw), "kept", len(items))

	result := &Result{FetchedAt: time.Now()}
	p.enrichBatches(ctx, items, result)

	result.Items = Filter(items)
	sortByUpdated(result.Items)

	log.Info("pipeline run complete",
		"enriched", len(items),
		"final", len(result.Items),
		"autoResolve", len(result.AutoResolve))

	return result, nil
}

// quickParse drops notifications with irrelevant reasons and orders the
// remainder newest first, so a view can be painted before details arrive.
func (p *Pipeline) quickParse(raw []model.Notification) []model.Notification {
	allowed := model.AllowedReasons(p.opts.IncludeSubscribed)

	items := make([]model.Notification, 0, len(raw))
	for _, n := range raw {
		if !allowed[n.Reason] {
			continue
		}
		if p.opts.ExcludeRepo != nil && p.opts.ExcludeRepo(n.Repo) {
			continue
		}
		if !p.opts.Since.IsZero() && n.UpdatedAt.Before(p.opts.Since) {
			continue
		}
		items = append(items, n)
	}

	sortByUpdated(items)
	return items
}

// enrichBatches fetches subject details and secondary activity in
// sequential batches, capping the number of simultaneous in-flight
// requests. Per-item errors are absorbed.
func (p *Pipeline) enrichBatches(ctx context.Context, items []model.Notification, result *Result) {
	for start := 0; start < len(items); start += p.opts.BatchSize {
		end := start + p.opts.BatchSize
		if end > len(items) {
			end = len(items)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			n := &items[i]
			g.Go(func() error {
				p.enrichItem(gctx, n)
				return nil
			})
		}
		// Goroutines never return errors; Wait only synchronizes.
		_ = g.Wait()
	}

	for i := range items {
		if items[i].IsTeamReview {
			result.AutoResolve = append(result.AutoResolve, items[i].ID)
		}
	}
}

// enrichItem populates one notification with its resolved author, team
// review flag, and new-activity summary.
func (p *Pipeline) enrichItem(ctx context.Context, n *model.Notification) {
	if n.URL == "" {
		return
	}

	if p.opts.Cache != nil {
		if cached, ok := p.opts.Cache.Get(n.ID, n.UpdatedAt); ok {
			log.Trace("enrichment cache hit", "id", n.ID, "repo", n.Repo)
			*n = *cached
			return
		}
	}
	details, err := p.fetcher.GetSubjectDetails(ctx, n)
	if err != nil {
		log.Debug("failed to fetch subject details", "id", n.ID, "repo", n.Repo, "error", err)
		return
	}
	if details == nil {
		return
	}

	n.Author = details.Author

	// A review request that does not name the user personally was aimed at
	// a team the user belongs to.
	if n.Reason == model.ReasonReviewRequested && n.Type == model.SubjectPullRequest {
		n.IsTeamReview = !containsLogin(details.RequestedReviewers, p.session.Login)
	}

	if n.NeedsActivityCheck() {
		n.IsClosedOrMerged = details.IsClosedOrMerged()
		p.fetchActivity(ctx, n)

		n.SpecificReason, n.ActivityAuthor = Summarize(n.NewActivities)
	}

	// Only fully enriched items are cached. A failed detail fetch must
	// stay uncached so the next run retries it.
	if p.opts.Cache != nil {
		if err := p.opts.Cache.Set(n.ID, n.UpdatedAt, n); err != nil {
			log.Debug("enrichment cache write failed", "id", n.ID, "error", err)
		}
	}
}

// fetchActivity runs the three secondary sources in parallel and merges
// their events newest first.
func (p *Pipeline) fetchActivity(ctx context.Context, n *model.Notification) {
	owner, repo, err := urlutil.SplitRepoFullName(n.Repo)
	if err != nil {
		log.Debug("skipping activity fetch", "id", n.ID, "error", err)
		return
	}
	number, err := urlutil.ExtractSubjectNumber(n.URL)
	if err != nil {
		log.Debug("skipping activity fetch", "id", n.ID, "error", err)
		return
	}

	cutoff := n.LastReadAt
	self := p.session.Login

	var comments, reviewComments, reviews []model.ActivityEvent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments = p.fetcher.FetchIssueComments(gctx, owner, repo, number, cutoff, self)
		return nil
	})
	g.Go(func() error {
		reviewComments = p.fetcher.FetchReviewComments(gctx, owner, repo, number, cutoff, self)
		return nil
	})
	g.Go(func() error {
		reviews = p.fetcher.FetchReviews(gctx, owner, repo, number, cutoff, self)
		return nil
	})
	_ = g.Wait()

	events := make([]model.ActivityEvent, 0, len(comments)+len(reviewComments)+len(reviews))
	events = append(events, comments...)
	events = append(events, reviewComments...)
	events = append(events, reviews...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	if len(events) > 0 {
		n.NewActivities = events
	}
}

// sortByUpdated orders notifications newest first, keeping input order for
// equal timestamps.
func sortByUpdated(items []model.Notification) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}

func containsLogin(logins []string, login string) bool {
	for _, l := range logins {
		if l == login {
			return true
		}
	}
	return false
}
