package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults for the polling and enrichment pipeline.
const (
	DefaultPollIntervalMinutes = 2
	DefaultBatchSize           = 5
	DefaultMaxNotifications    = 100
)

// Config represents the application configuration
type Config struct {
	// IncludeSubscribed controls whether "subscribed" notifications are
	// surfaced at all. They are the noisiest reason GitHub emits.
	IncludeSubscribed *bool `yaml:"include_subscribed,omitempty"`

	// AutoResolveTeamReviews marks review requests aimed at a team (not
	// the user personally) as done so they stop re-appearing.
	AutoResolveTeamReviews *bool `yaml:"auto_resolve_team_reviews,omitempty"`

	// DesktopNotifications enables system notifications from `ghnotify watch`.
	DesktopNotifications *bool `yaml:"desktop_notifications,omitempty"`

	PollIntervalMinutes int `yaml:"poll_interval_minutes,omitempty"`
	BatchSize           int `yaml:"batch_size,omitempty"`
	MaxNotifications    int `yaml:"max_notifications,omitempty"`

	DefaultFormat string   `yaml:"default_format,omitempty"`
	ExcludeRepos  []string `yaml:"exclude_repos,omitempty"`
}

// GetIncludeSubscribed returns whether subscribed notifications are surfaced.
func (c *Config) GetIncludeSubscribed() bool {
	if c.IncludeSubscribed == nil {
		return true
	}
	return *c.IncludeSubscribed
}

// GetAutoResolveTeamReviews returns whether team review requests are
// automatically marked done.
func (c *Config) GetAutoResolveTeamReviews() bool {
	if c.AutoResolveTeamReviews == nil {
		return true
	}
	return *c.AutoResolveTeamReviews
}

// GetDesktopNotifications returns whether desktop notifications are enabled.
func (c *Config) GetDesktopNotifications() bool {
	if c.DesktopNotifications == nil {
		return true
	}
	return *c.DesktopNotifications
}

// GetPollIntervalMinutes returns the configured poll interval in minutes.
func (c *Config) GetPollIntervalMinutes() int {
	if c.PollIntervalMinutes <= 0 {
		return DefaultPollIntervalMinutes
	}
	return c.PollIntervalMinutes
}

// GetBatchSize returns the detail-fetch concurrency bound.
func (c *Config) GetBatchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

// GetMaxNotifications returns how many raw notifications to fetch per run.
func (c *Config) GetMaxNotifications() int {
	if c.MaxNotifications <= 0 {
		return DefaultMaxNotifications
	}
	return c.MaxNotifications
}

// IsRepoExcluded checks if a repo is in the exclude list
func (c *Config) IsRepoExcluded(repoFullName string) bool {
	for _, excluded := range c.ExcludeRepos {
		if excluded == repoFullName {
			return true
		}
	}
	return false
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".ghnotify"
	}
	return filepath.Join(configDir, "ghnotify")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".ghnotify.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from the XDG config directory, then
// merges any local .ghnotify.yaml config on top (local values take
// precedence). Absent files are not an error.
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}
		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}
		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := *global

	if local.IncludeSubscribed != nil {
		result.IncludeSubscribed = local.IncludeSubscribed
	}
	if local.AutoResolveTeamReviews != nil {
		result.AutoResolveTeamReviews = local.AutoResolveTeamReviews
	}
	if local.DesktopNotifications != nil {
		result.DesktopNotifications = local.DesktopNotifications
	}
	if local.PollIntervalMinutes > 0 {
		result.PollIntervalMinutes = local.PollIntervalMinutes
	}
	if local.BatchSize > 0 {
		result.BatchSize = local.BatchSize
	}
	if local.MaxNotifications > 0 {
		result.MaxNotifications = local.MaxNotifications
	}
	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	}
	if len(local.ExcludeRepos) > 0 {
		result.ExcludeRepos = local.ExcludeRepos
	}

	return &result
}

// DefaultConfig returns a config with every default made explicit, for
// display and for seeding a full config file.
func DefaultConfig() *Config {
	t := true
	return &Config{
		IncludeSubscribed:      &t,
		AutoResolveTeamReviews: &t,
		DesktopNotifications:   &t,
		PollIntervalMinutes:    DefaultPollIntervalMinutes,
		BatchSize:              DefaultBatchSize,
		MaxNotifications:       DefaultMaxNotifications,
		DefaultFormat:          "table",
	}
}

// Paths describes the config file locations and whether they exist.
type Paths struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths reports the global and local config locations.
func GetConfigPaths() Paths {
	p := Paths{
		GlobalPath: ConfigPath(),
		LocalPath:  LocalConfigPath(),
	}
	if _, err := os.Stat(p.GlobalPath); err == nil {
		p.GlobalExists = true
	}
	if _, err := os.Stat(p.LocalPath); err == nil {
		p.LocalExists = true
	}
	return p
}

// SaveTo writes raw config content to the given path, creating parent
// directories as needed.
func SaveTo(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetDefaultFormat updates the default output format and persists it.
func (c *Config) SetDefaultFormat(format string) error {
	c.DefaultFormat = format
	return c.Save()
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment
// variable. Following 12-factor app practice, tokens are only read from the
// environment, never from the config file.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# ghnotify configuration file

# Surface "subscribed" (watching) notifications. They are noisy.
include_subscribed: true

# Mark review requests aimed at a team (not you personally) as done.
auto_resolve_team_reviews: true

# Desktop notifications from "ghnotify watch".
desktop_notifications: true

# Polling interval in minutes. GitHub may suggest a longer one via the
# X-Poll-Interval header, which takes precedence.
poll_interval_minutes: 2

# Exclude noisy repositories (optional)
# exclude_repos:
#   - owner/noisy-repo
`
}
