package visualizer

import (
	"errors"
	"strings"
	"testing"

	"algoviz/internal/services"
	"algoviz/internal/viz"
)

func TestLineRangeError(t *testing.T) {
	if err := lineRangeError(nil, 4); err != nil {
		t.Fatalf("expected nil for no violations, got %v", err)
	}

	err := lineRangeError([]viz.LineRangeViolation{{FrameID: 2, Line: 99}, {FrameID: 3, Line: 0}}, 4)
	if !errors.Is(err, services.ErrLineRange) {
		t.Fatalf("expected line range marker, got %v", err)
	}
	for _, want := range []string{"2 reference(s)", "1..4", "frame 2 line 99"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}
