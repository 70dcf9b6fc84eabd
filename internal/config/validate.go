package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Missing credentials are not
// an error here; the health check reports them at runtime.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateGeneration(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.MaxCodeLines < 1 {
		return errors.New("server.max_code_lines must be at least 1")
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return errors.New("server.request_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("llm.provider: unsupported value %q (want %s or %s)", c.LLM.Provider, ProviderGemini, ProviderOpenRouter)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	if c.LLM.RetryAttempts <= 0 {
		return errors.New("llm.retry_attempts must be positive")
	}
	if c.LLM.RequestsPerMinute < 0 {
		return errors.New("llm.requests_per_minute must be zero (unlimited) or positive")
	}
	if c.LLM.TopP < 0 || c.LLM.TopP > 1 {
		return errors.New("llm.top_p must be between 0 and 1")
	}
	if c.LLM.TopK < 0 {
		return errors.New("llm.top_k must not be negative")
	}
	return nil
}

func (c *Config) validateGeneration() error {
	g := c.Generation
	if g.MaxAttempts <= 0 {
		return errors.New("generation.max_attempts must be positive")
	}
	if g.RetryBaseDelayMS < 0 || g.RetryMaxDelayMS < 0 {
		return errors.New("generation retry delays must not be negative")
	}
	if g.RetryBaseDelayMS > g.RetryMaxDelayMS {
		return fmt.Errorf("generation.retry_base_delay_ms (%d) exceeds retry_max_delay_ms (%d)", g.RetryBaseDelayMS, g.RetryMaxDelayMS)
	}
	if g.MaxOutputTokens <= 0 || g.ContinuationOutputTokens <= 0 {
		return errors.New("generation output token limits must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.TTLHours < 0 {
		return errors.New("cache.ttl_hours must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
