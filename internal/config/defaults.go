package config

const (
	defaultConfigPath               = "~/.config/algoviz/config.toml"
	projectConfigName               = "algoviz.toml"
	defaultLogDir                   = "~/.local/share/algoviz/logs"
	defaultDataDir                  = "~/.local/share/algoviz"
	defaultCacheFile                = "responses.db"
	defaultBind                     = "127.0.0.1:8765"
	defaultMaxCodeLines             = 100
	defaultRequestTimeoutSeconds    = 120
	defaultAllowedOrigin            = "http://localhost:5173"
	defaultProvider                 = ProviderGemini
	defaultGeminiModel              = "gemini-2.5-flash"
	defaultOpenRouterBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultOpenRouterModel          = "google/gemini-2.5-flash"
	defaultOpenRouterReferer        = "https://github.com/algoviz/algoviz"
	defaultOpenRouterTitle          = "algoviz"
	defaultLLMTimeoutSeconds        = 60
	defaultLLMRetryAttempts         = 2
	defaultTopP                     = 0.8
	defaultTopK                     = 20
	defaultMaxAttempts              = 3
	defaultRetryBaseDelayMS         = 2000
	defaultRetryMaxDelayMS          = 10000
	defaultMaxOutputTokens          = 8192
	defaultContinuationOutputTokens = 2048
	defaultCacheTTLHours            = 168
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
)

// Supported model providers.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			DataDir: defaultDataDir,
		},
		Server: Server{
			Bind:                  defaultBind,
			MaxCodeLines:          defaultMaxCodeLines,
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
			AllowedOrigins:        []string{defaultAllowedOrigin},
		},
		LLM: LLM{
			Provider:       defaultProvider,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			RetryAttempts:  defaultLLMRetryAttempts,
			TopP:           defaultTopP,
			TopK:           defaultTopK,
		},
		Generation: Generation{
			MaxAttempts:              defaultMaxAttempts,
			RetryBaseDelayMS:         defaultRetryBaseDelayMS,
			RetryMaxDelayMS:          defaultRetryMaxDelayMS,
			Continuation:             true,
			MaxOutputTokens:          defaultMaxOutputTokens,
			ContinuationOutputTokens: defaultContinuationOutputTokens,
		},
		Cache: Cache{
			TTLHours: defaultCacheTTLHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
