// Package gemini implements llm.Generator on top of the Google GenAI SDK.
package gemini

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"algoviz/internal/services"
	"algoviz/internal/services/llm"
)

const providerName = "gemini"

// DefaultModel is used when Config.Model is blank.
const DefaultModel = "gemini-2.5-flash"

// Config captures the Gemini connection settings.
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	TimeoutSeconds int
}

// Client generates text through the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient builds a Gemini-backed generator.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, llm.MissingCredentials(providerName)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.HTTPOptions.BaseURL = base
	}
	if cfg.TimeoutSeconds > 0 {
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		clientCfg.HTTPOptions.Timeout = &timeout
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, providerName, "new client", "", err)
	}
	return &Client{client: client, model: model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends one request and returns the concatenated text parts.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, generateConfig(req))
	if err != nil {
		return "", llm.ClassifyError(ctx, providerName, "generate", err)
	}
	return llm.RequireText(providerName, resp.Text())
}

// HealthCheck verifies the key and model with a trivial round trip.
func (c *Client) HealthCheck(ctx context.Context) error {
	return llm.Ping(ctx, c)
}

func generateConfig(req llm.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Config.Temperature)),
	}
	if system := strings.TrimSpace(req.SystemPrompt); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.Config.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(req.Config.TopP))
	}
	if req.Config.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(req.Config.TopK))
	}
	if req.Config.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.Config.MaxOutputTokens)
	}
	return cfg
}
