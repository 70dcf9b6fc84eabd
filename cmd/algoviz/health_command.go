package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"algoviz/internal/config"
	"algoviz/internal/preflight"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check configuration, directories, and model connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("algoviz health", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Provider", statusInfo, cfg.LLM.Provider, colorize))
			cacheKind := statusInfo
			if !cfg.Cache.Enabled {
				cacheKind = statusOff
			}
			fmt.Fprintln(out, renderStatusLine("Cache", cacheKind, cacheSummary(cfg), colorize))

			gen, err := newGenerator(cmd.Context(), cfg)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Model", statusError, err.Error(), colorize))
			}

			results := preflight.RunAll(cmd.Context(), cfg, gen)
			for _, r := range results {
				fmt.Fprintln(out, renderStatusLine(r.Name, checkStatus(r), r.Detail, colorize))
			}

			if gen == nil {
				return errors.New("model client unavailable")
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d health check(s) failed", len(failed))
			}
			return nil
		},
	}
}

func cacheSummary(cfg *config.Config) string {
	if !cfg.Cache.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("%s (ttl %s)", cfg.Cache.Path, cfg.CacheTTL())
}
