package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"algoviz/internal/repair"
	"algoviz/internal/services"
)

// GenerationConfig carries sampling parameters for one request.
type GenerationConfig struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// Request is a single generation call.
type Request struct {
	SystemPrompt string
	Prompt       string
	Config       GenerationConfig
}

// Generator produces raw text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}

// HealthChecker is implemented by generators that can verify credentials.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

const (
	pingSystemPrompt = "You must respond with JSON only."
	pingPrompt       = `Respond with {"ok":true}`
)

// Ping performs a trivial round trip through g and checks the reply.
func Ping(ctx context.Context, g Generator) error {
	content, err := g.Generate(ctx, Request{
		SystemPrompt: pingSystemPrompt,
		Prompt:       pingPrompt,
		Config:       GenerationConfig{MaxOutputTokens: 32},
	})
	if err != nil {
		return err
	}
	var parsed struct {
		OK bool `json:"ok"`
	}
	if _, err := repair.Decode(content, &parsed); err != nil {
		return services.Wrap(services.ErrTransport, "health", g.Model(), "parse payload", err)
	}
	if !parsed.OK {
		return services.Wrap(services.ErrTransport, "health", g.Model(), "unexpected response", nil)
	}
	return nil
}

// ClassifyError tags err with the marker matching its cause: a finished
// caller context becomes ErrTimeout, everything else ErrTransport.
func ClassifyError(ctx context.Context, provider, operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, services.ErrTimeout) || errors.Is(err, services.ErrTransport) || errors.Is(err, services.ErrConfiguration) {
		return err
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, provider, operation, "request aborted", err)
	}
	return services.Wrap(services.ErrTransport, provider, operation, "", err)
}

// RequireText rejects blank model output as a transport failure.
func RequireText(provider, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", services.Wrap(services.ErrTransport, provider, "generate", "empty response", nil)
	}
	return content, nil
}

// MissingCredentials reports an unconfigured provider.
func MissingCredentials(provider string) error {
	return services.Wrap(services.ErrConfiguration, provider, "", fmt.Sprintf("%s api key required", provider), nil)
}
