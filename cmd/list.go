package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ghnotify/ghnotify/config"
	"github.com/ghnotify/ghnotify/internal/enrich"
	"github.com/ghnotify/ghnotify/internal/log"
	"github.com/ghnotify/ghnotify/internal/output"
	"github.com/ghnotify/ghnotify/internal/store"
	"github.com/ghnotify/ghnotify/internal/tui"
)

// NewCmdList creates the list command.
func NewCmdList(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enriched notifications (same as bare ghnotify)",
		Long: `Fetches your unread notifications, enriches them with recent issue
and pull request activity, filters out the ones that need nothing from
you, and displays the rest newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	addListFlags(cmd, opts)
	return cmd
}

// addListFlags adds the list-specific flags to a command.
func addListFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().StringVarP(&opts.Since, "since", "s", "", "Only show notifications updated since (e.g., 2h, 3d, 1w)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum notifications to fetch (default from config)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable interactive list (default: auto-detect)")
	cmd.Flags().BoolVar(&opts.Cached, "cached", false, "Show the last successful run's list without fetching")
	addProfilingFlags(cmd, opts)
}

func runList(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	profiler := NewProfiler(opts.CPUProfile, opts.MemProfile, opts.Trace)
	if err := profiler.Start(); err != nil {
		return err
	}
	defer profiler.Stop()

	useTUI := shouldUseTUI(opts)
	initLogging(opts, useTUI)

	// The cached fast path needs no token and touches no network.
	if opts.Cached {
		return runCachedList(opts)
	}

	rt, err := setup(ctx, opts)
	if err != nil {
		return err
	}

	result, err := fetchResult(ctx, rt, useTUI)
	if err != nil {
		return err
	}

	// A successful run replaces the cached list.
	if err := rt.store.SetNotifications(result.Items, result.FetchedAt); err != nil {
		log.Debug("persisting notifications failed", "error", err)
	}

	resolveTeamReviews(ctx, rt, result)

	format := output.Format(opts.Format)
	if format == "" {
		format = output.Format(rt.cfg.DefaultFormat)
	}

	if useTUI && format == output.FormatTable {
		p := tea.NewProgram(tui.NewListModel(result.Items, rt.client))
		_, err := p.Run()
		return err
	}

	return output.NewFormatter(format).Format(result.Items, result.FetchedAt, os.Stdout)
}

// runCachedList renders the list persisted by the last successful run.
func runCachedList(opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := store.NewStore()
	if err != nil {
		return err
	}

	format := output.Format(opts.Format)
	if format == "" {
		format = output.Format(cfg.DefaultFormat)
	}
	return renderCached(st, format, os.Stdout)
}

// renderCached formats the stored list as of its fetch time.
func renderCached(st *store.Store, format output.Format, w io.Writer) error {
	items, cachedAt := st.Notifications()
	if len(items) == 0 {
		fmt.Fprintln(w, "No cached notifications. Run ghnotify to fetch.")
		return nil
	}
	return output.NewFormatter(format).Format(items, cachedAt, w)
}

// fetchResult runs the pipeline, behind a spinner when interactive.
func fetchResult(ctx context.Context, rt *cmdRuntime, useTUI bool) (*enrich.Result, error) {
	if !useTUI {
		return rt.pipeline.Run(ctx)
	}

	model := tui.NewProgressModel(ctx, rt.pipeline.Run)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(tui.ProgressModel).Result()
}

// resolveTeamReviews marks team review request threads as done when the
// config allows it.
func resolveTeamReviews(ctx context.Context, rt *cmdRuntime, result *enrich.Result) {
	if !rt.cfg.GetAutoResolveTeamReviews() {
		return
	}
	for _, id := range result.AutoResolve {
		if rt.client.MarkDone(ctx, id) {
			log.Info("auto-resolved team review request", "thread", id)
		} else {
			fmt.Fprintf(os.Stderr, "warning: could not auto-resolve thread %s\n", id)
		}
	}
}
