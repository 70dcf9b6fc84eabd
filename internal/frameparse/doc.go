// Package frameparse reads the pipe-delimited frame micro-format:
//
//	FRAME|<frame_id>|<structure_type>|<data>|<vars>|<line>|<description>
//
// One frame per line. Lines that do not start with FRAME are commentary and
// are ignored. Lines are split into exactly seven fields with the last one
// unbounded, so descriptions may contain '|'. A malformed line is recorded as
// a LineError and skipped; it never aborts the document.
//
// structure_type selects a sub-parser for data (array, tree, graph,
// linkedlist, stack, queue). Unknown types produce a panel-free frame that the
// blank-frame filter later drops.
//
// Format is the inverse used when quoting a frame back to the model.
package frameparse
