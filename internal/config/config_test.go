package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"algoviz/internal/config"
)

func TestLoadDefaultConfigUsesEnvAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_MODEL", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("expected key from env, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model %q", cfg.LLM.Model)
	}
	wantData := filepath.Join(tempHome, ".local", "share", "algoviz")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Cache.Path != filepath.Join(wantData, "responses.db") {
		t.Fatalf("unexpected cache path %q", cfg.Cache.Path)
	}
	if cfg.Server.Bind != "127.0.0.1:8765" || cfg.Server.MaxCodeLines != 100 {
		t.Fatalf("unexpected server defaults %+v", cfg.Server)
	}
	if cfg.Generation.MaxAttempts != 3 || !cfg.Generation.Continuation {
		t.Fatalf("unexpected generation defaults %+v", cfg.Generation)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.DataDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist", dir)
		}
	}
}

func TestLoadOpenRouterFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "router-env")
	t.Setenv("ALGOVIZ_API_TOKEN", "secret")
	path := filepath.Join(t.TempDir(), "algoviz.toml")
	content := `
[llm]
provider = "OpenRouter"
requests_per_minute = 30

[server]
allowed_origins = [" http://a.test/ ", ""]

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution %q exists=%v", resolved, exists)
	}
	if cfg.LLM.Provider != config.ProviderOpenRouter {
		t.Fatalf("got provider %q", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "router-env" {
		t.Fatalf("got api key %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL == "" || cfg.LLM.Title != "algoviz" {
		t.Fatalf("openrouter defaults not applied: %+v", cfg.LLM)
	}
	if cfg.LLM.RequestsPerMinute != 30 {
		t.Fatalf("got rpm %d", cfg.LLM.RequestsPerMinute)
	}
	if cfg.Server.APIToken != "secret" {
		t.Fatalf("got token %q", cfg.Server.APIToken)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://a.test" {
		t.Fatalf("got origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("got format %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "algoviz.toml")
	if err := os.WriteFile(path, []byte("[llm]\nmodle = \"typo\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "modle") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "provider", mutate: func(c *config.Config) { c.LLM.Provider = "bard" }, want: "llm.provider"},
		{name: "attempts", mutate: func(c *config.Config) { c.Generation.MaxAttempts = 0 }, want: "max_attempts"},
		{name: "max lines", mutate: func(c *config.Config) { c.Server.MaxCodeLines = 0 }, want: "max_code_lines"},
		{name: "delays", mutate: func(c *config.Config) { c.Generation.RetryBaseDelayMS = 20000 }, want: "exceeds"},
		{name: "rate", mutate: func(c *config.Config) { c.LLM.RequestsPerMinute = -1 }, want: "requests_per_minute"},
		{name: "top_p", mutate: func(c *config.Config) { c.LLM.TopP = 1.5 }, want: "top_p"},
		{name: "level", mutate: func(c *config.Config) { c.Logging.Level = "verbose" }, want: "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v want error containing %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path, false); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if err := config.CreateSample(path, false); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.LLM.Provider != config.ProviderGemini || cfg.Generation.MaxAttempts != 3 {
		t.Fatalf("unexpected sample values %+v", cfg)
	}
}
