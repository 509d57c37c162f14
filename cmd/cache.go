package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghnotify/ghnotify/internal/cache"
	"github.com/ghnotify/ghnotify/internal/store"
)

// NewCmdCache creates the cache command with subcommands.
func NewCmdCache() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local enrichment cache and cached state",
	}

	cmd.AddCommand(newCmdCacheClear())
	cmd.AddCommand(newCmdCacheStats())

	return cmd
}

func newCmdCacheClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the enrichment cache and cached notification state",
		RunE:  runCacheClear,
	}
}

func newCmdCacheStats() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE:  runCacheStats,
	}
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := cache.NewCache()
	if err != nil {
		return fmt.Errorf("failed to access cache: %w", err)
	}
	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	st, err := store.NewStore()
	if err != nil {
		return fmt.Errorf("failed to access state store: %w", err)
	}
	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}

	fmt.Println("Cache cleared.")
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	c, err := cache.NewCache()
	if err != nil {
		return fmt.Errorf("failed to access cache: %w", err)
	}

	total, valid, err := c.Stats()
	if err != nil {
		return fmt.Errorf("failed to get cache stats: %w", err)
	}

	fmt.Printf("Enrichment cache (TTL: %s):\n", cache.TTL)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Valid: %d\n", valid)
	fmt.Printf("  Expired: %d\n", total-valid)
	return nil
}
