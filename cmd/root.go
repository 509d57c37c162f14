package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "ghnotify",
		Short: "GitHub notification aggregator",
		Long: `Fetches your unread GitHub notifications, enriches them with recent
issue and pull request activity, and shows only the ones that need you.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add list flags to root so `ghnotify` and `ghnotify list` work identically
	addListFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdList(opts))
	rootCmd.AddCommand(NewCmdWatch(opts))
	rootCmd.AddCommand(NewCmdDone(opts))
	rootCmd.AddCommand(NewCmdRead(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdCache())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
