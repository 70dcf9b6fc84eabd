package analysis_test

import (
	"testing"

	"algoviz/internal/analysis"
	"algoviz/internal/viz"
)

func framesWithArray(values ...int64) []viz.Frame {
	scalars := make([]viz.Scalar, 0, len(values))
	for _, v := range values {
		scalars = append(scalars, viz.Int(v))
	}
	frame := viz.Frame{}
	frame.Add(viz.ArrayPanel{Name: "arr", Values: scalars})
	return []viz.Frame{frame}
}

func nFrames(n int, desc string) []viz.Frame {
	frames := make([]viz.Frame, n)
	for i := range frames {
		frames[i] = viz.Frame{FrameID: i, Description: desc}
	}
	return frames
}

func TestIsCompleteSorting(t *testing.T) {
	if analysis.IsComplete(analysis.Sorting, framesWithArray(3, 1, 2)) {
		t.Fatal("expected [3,1,2] to be incomplete")
	}
	if !analysis.IsComplete(analysis.Sorting, framesWithArray(1, 2, 3)) {
		t.Fatal("expected [1,2,3] to be complete")
	}
	if analysis.IsComplete(analysis.Sorting, nil) {
		t.Fatal("expected no frames to be incomplete")
	}
	if analysis.IsComplete(analysis.Sorting, nFrames(1, "done")) {
		t.Fatal("expected frame without arrays to be incomplete")
	}
}

func TestIsCompleteSearching(t *testing.T) {
	if !analysis.IsComplete(analysis.Searching, nFrames(2, "Element 7 not found")) {
		t.Fatal("expected not found marker to complete")
	}
	if analysis.IsComplete(analysis.Searching, nFrames(2, "Checking mid")) {
		t.Fatal("expected missing marker to be incomplete")
	}
	withVar := nFrames(1, "Checking")
	withVar[0].Variables = []viz.Variable{{Name: "found", Value: "true"}}
	if !analysis.IsComplete(analysis.Searching, withVar) {
		t.Fatal("expected found variable to complete")
	}
}

func TestIsCompleteThresholds(t *testing.T) {
	tests := []struct {
		category analysis.Category
		short    int
		enough   int
	}{
		{analysis.Tree, 9, 10},
		{analysis.Graph, 14, 15},
		{analysis.StackQueue, 9, 10},
	}
	for _, tt := range tests {
		if analysis.IsComplete(tt.category, nFrames(tt.short, "step")) {
			t.Fatalf("%s: %d frames should be incomplete", tt.category, tt.short)
		}
		if !analysis.IsComplete(tt.category, nFrames(tt.enough, "step")) {
			t.Fatalf("%s: %d frames should be complete", tt.category, tt.enough)
		}
	}
}

func TestIsCompleteGraphAllVisited(t *testing.T) {
	frame := viz.Frame{}
	frame.Add(viz.GraphPanel{Nodes: []viz.GraphNode{{ID: 0, Visited: true}, {ID: 1, Visited: true}}})
	if !analysis.IsComplete(analysis.Graph, []viz.Frame{frame}) {
		t.Fatal("expected fully visited graph to be complete")
	}
}

func TestIsCompleteLinkedListAndUnknown(t *testing.T) {
	if !analysis.IsComplete(analysis.LinkedList, nFrames(3, "Final list: 1->2->3")) {
		t.Fatal("expected completion keyword to complete")
	}
	if analysis.IsComplete(analysis.LinkedList, nFrames(3, "Move to next")) {
		t.Fatal("expected missing keyword to be incomplete")
	}
	if !analysis.IsComplete(analysis.Category("hashing"), nil) {
		t.Fatal("unknown categories must be complete")
	}
}
