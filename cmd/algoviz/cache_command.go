package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"algoviz/internal/cache"
	"algoviz/internal/config"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the response cache",
	}
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	return cacheCmd
}

func openCache(cmd *cobra.Command, ctx *commandContext) (*cache.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if _, err := os.Stat(cfg.Cache.Path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no response cache at %s (set cache.enabled = true and run visualize first)", cfg.Cache.Path)
	}
	return cache.Open(cmd.Context(), cfg.Cache.Path, cfg.CacheTTL())
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry and hit counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(cmd, ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, map[string]any{
					"path":    store.Path(),
					"entries": stats.Entries,
					"hits":    stats.Hits,
				})
			}
			rows := [][]string{
				{"Path", store.Path()},
				{"Entries", strconv.FormatInt(stats.Entries, 10)},
				{"Hits", strconv.FormatInt(stats.Hits, 10)},
				{"Enabled", yesNo(configValue(ctx).Cache.Enabled)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Cache", "Value"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print JSON instead of a table")
	return cmd
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(cmd, ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			removed, err := store.Prune(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries from %s\n", removed, store.Path())
			return nil
		},
	}
}

func configValue(ctx *commandContext) *config.Config {
	cfg, _ := ctx.ensureConfig()
	if cfg == nil {
		def := config.Default()
		return &def
	}
	return cfg
}
