// Package watch runs the notification pipeline on a schedule, tracks
// which threads have been seen, and raises desktop notifications for
// new activity.
package watch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ghnotify/ghnotify/internal/enrich"
	"github.com/ghnotify/ghnotify/internal/log"
	"github.com/ghnotify/ghnotify/internal/model"
	"github.com/ghnotify/ghnotify/internal/notify"
	"github.com/ghnotify/ghnotify/internal/store"
)

// maxIndividualNotifications caps how many desktop notifications a
// single poll may raise before collapsing the rest into a summary.
const maxIndividualNotifications = 3

// Runner produces a fresh pipeline result.
type Runner interface {
	Run(ctx context.Context) (*enrich.Result, error)
}

// Resolver marks notification threads as done.
type Resolver interface {
	MarkDone(ctx context.Context, threadID string) bool
}

// Options configures a Watcher.
type Options struct {
	// Interval is the base poll interval. The server may suggest a
	// longer one via the X-Poll-Interval header; the longer of the
	// two wins.
	Interval time.Duration

	// ServerInterval reports the most recent server poll hint in
	// minutes, if one has been seen.
	ServerInterval func() (int, bool)

	// DesktopNotifications enables desktop notifications for new items.
	DesktopNotifications bool

	// AutoResolve enables marking team review requests as done.
	AutoResolve bool
}

// Watcher polls for notifications and persists each successful result.
type Watcher struct {
	runner   Runner
	resolver Resolver
	store    *store.Store
	opts     Options
}

// RunStats summarizes one poll.
type RunStats struct {
	Total    int
	New      []model.Notification
	Resolved int
	Baseline bool
}

func New(runner Runner, resolver Resolver, st *store.Store, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Minute
	}
	return &Watcher{runner: runner, resolver: resolver, store: st, opts: opts}
}

// Watch polls immediately and then on the effective interval until the
// context is cancelled. A failed poll is logged and retried on the next
// tick; the persisted state is only replaced after a successful run.
func (w *Watcher) Watch(ctx context.Context) error {
	for {
		stats, err := w.RunOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("poll failed", "error", err)
		} else {
			log.Info("poll complete", "total", stats.Total, "new", len(stats.New), "resolved", stats.Resolved)
		}

		timer := time.NewTimer(w.effectiveInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// effectiveInterval is the configured interval, stretched to the server
// poll hint when the server asks for a slower cadence.
func (w *Watcher) effectiveInterval() time.Duration {
	interval := w.opts.Interval
	if w.opts.ServerInterval != nil {
		if mins, ok := w.opts.ServerInterval(); ok {
			if hint := time.Duration(mins) * time.Minute; hint > interval {
				interval = hint
			}
		}
	}
	return interval
}

// RunOnce executes a single poll. On error nothing is persisted, so a
// transient failure never clears the cached list or the seen set.
func (w *Watcher) RunOnce(ctx context.Context) (*RunStats, error) {
	result, err := w.runner.Run(ctx)
	if err != nil {
		return nil, err
	}

	stats := &RunStats{Total: len(result.Items)}
	stats.Resolved = w.resolveTeamReviews(ctx, result.AutoResolve)

	prev := w.store.LastSeenIDs()
	seen := make(map[string]bool, len(prev))
	for _, id := range prev {
		seen[id] = true
	}

	ids := make([]string, 0, len(result.Items))
	for _, n := range result.Items {
		ids = append(ids, n.ID)
		if !seen[n.ID] {
			stats.New = append(stats.New, n)
		}
	}

	// The first poll establishes a baseline. Announcing every existing
	// unread thread on startup would be noise.
	stats.Baseline = len(prev) == 0
	if !stats.Baseline && w.opts.DesktopNotifications {
		announce(stats.New)
	}

	if err := w.store.SetNotifications(result.Items, result.FetchedAt); err != nil {
		return nil, fmt.Errorf("persisting notifications: %w", err)
	}
	if err := w.store.SetLastSeenIDs(ids); err != nil {
		return nil, fmt.Errorf("persisting seen ids: %w", err)
	}
	if w.opts.ServerInterval != nil {
		if mins, ok := w.opts.ServerInterval(); ok {
			if err := w.store.SetPollInterval(mins); err != nil {
				log.Debug("persisting poll interval failed", "error", err)
			}
		}
	}

	return stats, nil
}

// resolveTeamReviews marks team review request threads as done so they
// stop reappearing on every poll.
func (w *Watcher) resolveTeamReviews(ctx context.Context, ids []string) int {
	if w.resolver == nil || !w.opts.AutoResolve {
		return 0
	}
	resolved := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if w.resolver.MarkDone(ctx, id) {
			resolved++
		} else {
			log.Debug("auto-resolve failed", "thread", id)
		}
	}
	return resolved
}

// announce raises one desktop notification per new item up to a cap,
// then collapses the remainder into a single summary.
func announce(items []model.Notification) {
	for i, n := range items {
		if i == maxIndividualNotifications {
			rest := items[maxIndividualNotifications:]
			if err := notify.Send("GitHub notifications", summaryBody(rest)); err != nil {
				log.Debug("desktop notification failed", "error", err)
			}
			return
		}
		if err := notify.Send(n.Repo, n.Title); err != nil {
			log.Debug("desktop notification failed", "error", err)
		}
	}
}

func summaryBody(rest []model.Notification) string {
	repos := make(map[string]bool)
	for _, n := range rest {
		repos[n.Repo] = true
	}
	names := make([]string, 0, len(repos))
	for repo := range repos {
		names = append(names, repo)
	}
	sort.Strings(names)
	if len(names) > 2 {
		names = names[:2]
	}
	return fmt.Sprintf("+%d more in %s", len(rest), strings.Join(names, ", "))
}
