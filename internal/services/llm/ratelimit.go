package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	next    Generator
	limiter *rate.Limiter
}

// RateLimited wraps g so that at most perMinute requests start per minute.
// A non-positive limit returns g unchanged.
func RateLimited(g Generator, perMinute int) Generator {
	if perMinute <= 0 {
		return g
	}
	every := time.Minute / time.Duration(perMinute)
	return &rateLimited{next: g, limiter: rate.NewLimiter(rate.Every(every), 1)}
}

func (r *rateLimited) Generate(ctx context.Context, req Request) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", ClassifyError(ctx, "ratelimit", "wait", err)
	}
	return r.next.Generate(ctx, req)
}

func (r *rateLimited) Model() string { return r.next.Model() }

// HealthCheck delegates to the wrapped generator when it supports it.
func (r *rateLimited) HealthCheck(ctx context.Context) error {
	if checker, ok := r.next.(HealthChecker); ok {
		return checker.HealthCheck(ctx)
	}
	return Ping(ctx, r)
}
