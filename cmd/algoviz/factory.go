package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"algoviz/internal/cache"
	"algoviz/internal/config"
	"algoviz/internal/logging"
	"algoviz/internal/services/gemini"
	"algoviz/internal/services/llm"
	"algoviz/internal/visualizer"
)

// pipeline bundles a ready visualizer with the resources it owns.
type pipeline struct {
	service *visualizer.Service
	cache   *cache.Store
}

func (p *pipeline) Close() error {
	if p == nil || p.cache == nil {
		return nil
	}
	return p.cache.Close()
}

// newGenerator builds the configured provider client, wrapped with the
// configured rate limit.
func newGenerator(ctx context.Context, cfg *config.Config) (llm.Generator, error) {
	var gen llm.Generator
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         cfg.LLM.APIKey,
			Model:          cfg.LLM.Model,
			BaseURL:        cfg.LLM.BaseURL,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
		if err != nil {
			return nil, err
		}
		gen = client
	case config.ProviderOpenRouter:
		gen = llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			Referer:        cfg.LLM.Referer,
			Title:          cfg.LLM.Title,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		}, llm.WithRetryMaxAttempts(cfg.LLM.RetryAttempts))
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLM.Provider)
	}
	return llm.RateLimited(gen, cfg.LLM.RequestsPerMinute), nil
}

func serviceOptions(cfg *config.Config) visualizer.Options {
	base, maxDelay := cfg.RetryDelays()
	return visualizer.Options{
		Provider:                 cfg.LLM.Provider,
		MaxAttempts:              cfg.Generation.MaxAttempts,
		BaseDelay:                base,
		MaxDelay:                 maxDelay,
		Continuation:             cfg.Generation.Continuation,
		MaxOutputTokens:          cfg.Generation.MaxOutputTokens,
		ContinuationOutputTokens: cfg.Generation.ContinuationOutputTokens,
		TopP:                     cfg.LLM.TopP,
		TopK:                     cfg.LLM.TopK,
		MaxCodeLines:             cfg.Server.MaxCodeLines,
	}
}

// newPipeline wires generator, cache and orchestrator from configuration.
func newPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pipeline, error) {
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p := &pipeline{}
	var extra []visualizer.Option
	if cfg.Cache.Enabled {
		store, err := cache.Open(ctx, cfg.Cache.Path, cfg.CacheTTL())
		if err != nil {
			return nil, fmt.Errorf("open response cache: %w", err)
		}
		p.cache = store
		extra = append(extra, visualizer.WithCache(store))
		logger.Debug("response cache enabled",
			logging.String("path", store.Path()),
			logging.Duration("ttl", cfg.CacheTTL()),
		)
	}
	p.service = visualizer.New(gen, serviceOptions(cfg), logger, extra...)
	return p, nil
}

// planner returns a model-free service for commands that only need analysis.
func planner(cfg *config.Config) *visualizer.Service {
	return visualizer.New(offlineGenerator{}, serviceOptions(cfg), logging.NewNop())
}

type offlineGenerator struct{}

func (offlineGenerator) Generate(context.Context, llm.Request) (string, error) {
	return "", fmt.Errorf("model calls are disabled for this command")
}

func (offlineGenerator) Model() string { return "offline" }

func requestTimeout(cfg *config.Config, override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return cfg.RequestTimeout()
}
