package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ghnotify/ghnotify/config"
	"github.com/ghnotify/ghnotify/internal/cache"
	"github.com/ghnotify/ghnotify/internal/duration"
	"github.com/ghnotify/ghnotify/internal/enrich"
	"github.com/ghnotify/ghnotify/internal/ghclient"
	"github.com/ghnotify/ghnotify/internal/log"
	"github.com/ghnotify/ghnotify/internal/store"
)

// cmdRuntime bundles everything a fetching command needs.
type cmdRuntime struct {
	cfg      *config.Config
	client   *ghclient.Client
	store    *store.Store
	pipeline *enrich.Pipeline
	login    string
}

// setup loads config, authenticates, and builds the pipeline. The
// authenticated login is cached so repeat runs skip the user lookup.
func setup(ctx context.Context, opts *Options) (*cmdRuntime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	token := cfg.GetGitHubToken()
	if token == "" {
		return nil, fmt.Errorf("GitHub token not configured. Set the GITHUB_TOKEN environment variable")
	}

	client, err := ghclient.NewClient(ctx, token)
	if err != nil {
		return nil, err
	}

	st, err := store.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	login := st.CurrentUser()
	if login == "" {
		login, err = client.AuthenticatedUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get authenticated user: %w", err)
		}
		if err := st.SetCurrentUser(login); err != nil {
			log.Debug("caching current user failed", "error", err)
		}
	}
	log.Info("authenticated", "login", login)

	max := cfg.GetMaxNotifications()
	if opts.Limit > 0 {
		max = opts.Limit
	}

	pipelineOpts := enrich.Options{
		IncludeSubscribed: cfg.GetIncludeSubscribed(),
		BatchSize:         cfg.GetBatchSize(),
		MaxNotifications:  max,
		ExcludeRepo:       cfg.IsRepoExcluded,
	}
	if opts.Since != "" {
		since, err := duration.Since(opts.Since)
		if err != nil {
			return nil, err
		}
		pipelineOpts.Since = since
	}
	if c, err := cache.NewCache(); err == nil {
		pipelineOpts.Cache = c
	} else {
		log.Debug("enrichment cache unavailable", "error", err)
	}

	pipeline := enrich.New(client, enrich.Session{Login: login}, pipelineOpts)

	return &cmdRuntime{
		cfg:      cfg,
		client:   client,
		store:    st,
		pipeline: pipeline,
		login:    login,
	}, nil
}

// initLogging points logs at stderr, or discards them while a TUI owns
// the terminal.
func initLogging(opts *Options, useTUI bool) {
	if useTUI && opts.Verbosity == 0 {
		log.Initialize(opts.Verbosity, io.Discard)
		return
	}
	log.Initialize(opts.Verbosity, os.Stderr)
}
