package frameparse_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"algoviz/internal/frameparse"
	"algoviz/internal/viz"
)

func scalars(values ...any) []viz.Scalar {
	out := make([]viz.Scalar, 0, len(values))
	for _, v := range values {
		switch val := v.(type) {
		case int:
			out = append(out, viz.Int(int64(val)))
		case float64:
			out = append(out, viz.Float(val))
		case string:
			out = append(out, viz.Token(val))
		}
	}
	return out
}

var scalarCmp = cmp.Comparer(func(a, b viz.Scalar) bool {
	return a.Kind() == b.Kind() && a.String() == b.String()
})

func TestParseArrayLine(t *testing.T) {
	text := "FRAME|0|array|5,2,8,1 highlights:indices=0,2 colors=yellow,green|i=0 j=1|7|Comparing"
	result, err := frameparse.Parse(text, 10)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	frames := result.Document.Frames()
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	arr := frames[0].Arrays[0]
	if diff := cmp.Diff(scalars(5, 2, 8, 1), arr.Values, scalarCmp); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2}, arr.Highlights.Indices); diff != "" {
		t.Fatalf("indices (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"yellow", "green"}, arr.Highlights.Colors); diff != "" {
		t.Fatalf("colors (-want +got):\n%s", diff)
	}
	wantVars := []viz.Variable{{Name: "i", Value: "0"}, {Name: "j", Value: "1"}}
	if diff := cmp.Diff(wantVars, frames[0].Variables); diff != "" {
		t.Fatalf("variables (-want +got):\n%s", diff)
	}
	mappings := result.Document.LineSync.FrameMappings
	if len(mappings) != 1 || mappings[0].FrameID != 0 || mappings[0].LineNumbers[0] != 7 {
		t.Fatalf("unexpected mappings: %+v", mappings)
	}
	if mappings[0].Explanation != "Comparing" {
		t.Fatalf("unexpected explanation %q", mappings[0].Explanation)
	}
}

func TestParseDescriptionMayContainPipes(t *testing.T) {
	result, err := frameparse.Parse("FRAME|0|array|1,2|i=0|3|a | b | c", 5)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := result.Document.Frames()[0].Description; got != "a | b | c" {
		t.Fatalf("description = %q", got)
	}
}

func TestParseSkipsMalformedAndCommentaryLines(t *testing.T) {
	text := `Here are the frames:
FRAME|0|array|5,2|i=0|2|start
FRAME|1|array|5,2|i=0
FRAME|2|array|2,5|i=1|x|bad line number
FRAME|3|array|2,5|i=1|3|swapped`
	result, err := frameparse.Parse(text, 5)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.LineErrors) != 2 {
		t.Fatalf("expected 2 line errors, got %+v", result.LineErrors)
	}
	if result.LineErrors[0].Line != 3 {
		t.Fatalf("expected first error on line 3, got %d", result.LineErrors[0].Line)
	}
	if len(result.Document.Frames()) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(result.Document.Frames()))
	}
}

func TestParseDropsBlankFramesAndRenumbers(t *testing.T) {
	text := `FRAME|0|array|5,2|i=0|2|first
FRAME|1|tree|null|i=0|2|nothing here
FRAME|2|array|2,5|i=1|3|second`
	result, err := frameparse.Parse(text, 4)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	frames := result.Document.Frames()
	if len(frames) != 2 || result.Dropped != 1 {
		t.Fatalf("expected 2 frames and 1 drop, got %d frames %d dropped", len(frames), result.Dropped)
	}
	for i, frame := range frames {
		if frame.FrameID != i {
			t.Fatalf("frame %d has id %d", i, frame.FrameID)
		}
	}
	if frames[1].Description != "second" {
		t.Fatalf("unexpected survivor order: %q", frames[1].Description)
	}
	mappings := result.Document.LineSync.FrameMappings
	if len(mappings) != 2 || mappings[1].FrameID != 1 || mappings[1].LineNumbers[0] != 3 {
		t.Fatalf("unexpected mappings: %+v", mappings)
	}
	if result.Document.Metadata.TotalFrames != 2 {
		t.Fatalf("total_frames = %d", result.Document.Metadata.TotalFrames)
	}
	if diff := cmp.Diff([]int{1, 2}, result.Document.LineSync.SetupLines); diff != "" {
		t.Fatalf("setup lines (-want +got):\n%s", diff)
	}
}

func TestParseNoFramesIsError(t *testing.T) {
	_, err := frameparse.Parse("I could not visualize this.\nFRAME|broken", 3)
	if !errors.Is(err, frameparse.ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestParseNormalizesFullWidthPipes(t *testing.T) {
	result, err := frameparse.Parse("FRAME｜0｜array｜1,2｜i=0｜1｜full width", 2)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Document.Frames()) != 1 {
		t.Fatal("expected full width pipes to be folded")
	}
}

func TestHasFrameLines(t *testing.T) {
	if !frameparse.HasFrameLines("noise\n  FRAME|0|array|1|x=1|1|d") {
		t.Fatal("expected FRAME line to be detected")
	}
	if frameparse.HasFrameLines(`{"metadata":{}}`) {
		t.Fatal("JSON must not be detected as frames")
	}
}

func TestParseVariables(t *testing.T) {
	got := frameparse.ParseVariables(`out="AB" c='*' junk size=2`)
	want := []viz.Variable{{Name: "out", Value: `"AB"`}, {Name: "c", Value: "'*'"}, {Name: "size", Value: "2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("variables (-want +got):\n%s", diff)
	}
	if frameparse.ParseVariables("null") != nil {
		t.Fatal("expected null to produce no variables")
	}
}
