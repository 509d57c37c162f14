package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghnotify/ghnotify/internal/watch"
)

// NewCmdWatch creates the watch command.
func NewCmdWatch(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll for notifications and raise desktop notifications",
		Long: `Polls for unread notifications on an interval, keeps a local cache of
the latest result, and raises a desktop notification when new threads
appear. GitHub may suggest a slower cadence via the X-Poll-Interval
header, which takes precedence over the configured interval.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.IntervalMinutes, "interval", "i", 0, "Poll interval in minutes (default from config)")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "Poll once and exit")
	cmd.Flags().BoolVar(&opts.NoNotify, "no-notify", false, "Disable desktop notifications")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum notifications to fetch (default from config)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *Options) error {
	initLogging(opts, false)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx, opts)
	if err != nil {
		return err
	}

	interval := rt.cfg.GetPollIntervalMinutes()
	if opts.IntervalMinutes > 0 {
		interval = opts.IntervalMinutes
	}

	watcher := watch.New(rt.pipeline, rt.client, rt.store, watch.Options{
		Interval:             time.Duration(interval) * time.Minute,
		ServerInterval:       rt.client.PollInterval,
		DesktopNotifications: rt.cfg.GetDesktopNotifications() && !opts.NoNotify,
		AutoResolve:          rt.cfg.GetAutoResolveTeamReviews(),
	})

	if opts.Once {
		stats, err := watcher.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d notifications, %d new\n", stats.Total, len(stats.New))
		return nil
	}

	fmt.Printf("Watching for notifications every %dm. Press Ctrl+C to stop.\n", interval)
	err = watcher.Watch(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
