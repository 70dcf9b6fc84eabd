// Package preflight provides readiness checks for the filesystem paths and
// model provider that algoviz depends on.
//
// These checks run in two contexts:
//   - `algoviz serve` runs the filesystem checks at startup and logs failures
//     without refusing to start.
//   - `algoviz health` runs every check, including a model round trip, and
//     renders the results.
//
// Each check is gated by its config toggle; a disabled cache is not checked.
package preflight
