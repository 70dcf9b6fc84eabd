// Package cache persists raw model responses in SQLite so identical prompts
// can be answered without another round trip.
//
// Entries are keyed by a digest of provider, model and prompt text and expire
// after a configurable TTL. Only responses that parsed into a document are
// stored; the orchestrator decides that before calling Put. A sidecar lock
// file serializes schema creation and pruning across processes.
package cache
