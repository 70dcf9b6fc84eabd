// Package viz defines the visualization document returned for a traced
// algorithm: frames of typed panels (array, tree, graph, linked list, stack,
// queue) plus the line-sync table that ties each frame to source lines.
//
// Panels form a closed set. Every panel type implements Panel, and
// Frame.Add/Frame.Panels switch over the concrete types, so code that walks a
// frame never probes loosely shaped maps.
//
// # Assembly
//
// Document.Compact drops blank frames (frames without any panel), renumbers
// the survivors densely from zero and rewrites line-sync mappings to the new
// ids. Document.SanitizeLines applies the lenient line-range policy: line
// numbers outside [1, totalLines] are dropped, frames are always kept.
//
// Documents are built fresh per request and are not mutated once returned.
package viz
