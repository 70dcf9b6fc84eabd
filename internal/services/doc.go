// Package services defines shared utilities consumed by the visualization
// pipeline and its model integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request IDs, pipeline stages, categories and
//     attempt numbers for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures as
//     retryable or not and map them onto HTTP status codes.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, retries) stays uniform across callers.
package services
