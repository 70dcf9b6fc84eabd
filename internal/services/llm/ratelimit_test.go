package llm_test

import (
	"context"
	"errors"
	"testing"

	"algoviz/internal/services"
	"algoviz/internal/services/llm"
)

type stubGenerator struct {
	calls int
	text  string
}

func (s *stubGenerator) Generate(context.Context, llm.Request) (string, error) {
	s.calls++
	return s.text, nil
}

func (s *stubGenerator) Model() string { return "stub" }

func TestRateLimitedPassesThrough(t *testing.T) {
	inner := &stubGenerator{text: `{"ok":true}`}
	g := llm.RateLimited(inner, 600)
	if g.Model() != "stub" {
		t.Fatalf("got model %q want stub", g.Model())
	}
	if _, err := g.Generate(context.Background(), llm.Request{Prompt: "x"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	checker, ok := g.(llm.HealthChecker)
	if !ok {
		t.Fatal("rate limited generator should expose HealthCheck")
	}
	if err := checker.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("got %d calls want 2", inner.calls)
	}
}

func TestRateLimitedZeroIsIdentity(t *testing.T) {
	inner := &stubGenerator{}
	if g := llm.RateLimited(inner, 0); g != llm.Generator(inner) {
		t.Fatal("expected unwrapped generator")
	}
}

func TestRateLimitedCanceledWait(t *testing.T) {
	inner := &stubGenerator{text: "x"}
	g := llm.RateLimited(inner, 1)
	// Consume the single burst token.
	if _, err := g.Generate(context.Background(), llm.Request{Prompt: "x"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, llm.Request{Prompt: "x"})
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("got %d calls want 1", inner.calls)
	}
}
