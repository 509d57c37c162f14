package cmd

// Options holds the shared command-line options for the ghnotify CLI.
type Options struct {
	Format    string
	Since     string
	Limit     int
	Verbosity int
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI
	Cached    bool  // render the last successful run's list, no fetch

	// Watch options
	IntervalMinutes int
	Once            bool
	NoNotify        bool

	// Profiling options
	CPUProfile string
	MemProfile string
	Trace      string
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json, markdown).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithSince restricts results to notifications updated within the window.
func WithSince(since string) Option {
	return func(o *Options) {
		o.Since = since
	}
}

// WithLimit sets the maximum number of raw notifications to fetch.
func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}
