// Package llm defines the text-generation boundary used by the visualizer and
// ships an OpenRouter-compatible chat client that satisfies it.
//
// # Generator
//
// Generator is the narrow interface the pipeline depends on: a prompt plus a
// GenerationConfig in, raw model text out. Implementations must honour context
// cancellation; errors are tagged with services.ErrTransport, or
// services.ErrTimeout when the caller's context ended.
//
// # OpenRouter client
//
// NewClient builds a Generator around a chat completion endpoint. It retries
// HTTP 408/429/5xx, network timeouts and empty completions with exponential
// backoff (base 1s, max 10s, 2 attempts by default), honouring Retry-After.
//
// # Decorators and helpers
//
// RateLimited wraps any Generator with a token bucket sized in requests per
// minute. Ping performs the health round-trip shared by every provider.
package llm
