package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCmdDone creates the done command.
func NewCmdDone(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <thread-id>...",
		Short: "Mark notification threads as done",
		Long: `Marks one or more notification threads as done. Done threads leave the
inbox entirely and only return on genuinely new activity.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, args, "done")
		},
	}
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	return cmd
}

// NewCmdRead creates the read command.
func NewCmdRead(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <thread-id>...",
		Short: "Mark notification threads as read",
		Long: `Marks one or more notification threads as read. Read threads stay in
the inbox but no longer count as unread.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, args, "read")
		},
	}
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	return cmd
}

// runMutation applies a thread state change to each given ID and reports
// per-thread outcomes. A failed thread does not stop the rest.
func runMutation(cmd *cobra.Command, opts *Options, threadIDs []string, action string) error {
	ctx := cmd.Context()
	initLogging(opts, false)

	rt, err := setup(ctx, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, id := range threadIDs {
		var ok bool
		switch action {
		case "done":
			ok = rt.client.MarkDone(ctx, id)
		case "read":
			ok = rt.client.MarkRead(ctx, id)
		}
		if ok {
			fmt.Printf("Marked %s as %s\n", id, action)
		} else {
			failed++
			fmt.Printf("Failed to mark %s as %s\n", id, action)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d threads failed", failed, len(threadIDs))
	}
	return nil
}
