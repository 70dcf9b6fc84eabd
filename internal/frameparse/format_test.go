package frameparse_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"algoviz/internal/frameparse"
)

func TestFormatRoundTrip(t *testing.T) {
	lines := []string{
		"FRAME|0|array|5,2,8,1 highlights:indices=0,2 colors=yellow,green|i=0 j=1|7|Comparing",
		"FRAME|0|queue|5,3 front_index:0 rear_index:1|front=0 rear=1|11|Enqueue 3",
		"FRAME|0|linkedlist|1->2->3->NULL highlights:indices=1 colors=yellow|current=2|10|Traverse",
		"FRAME|0|tree|values:20,8,22 structure:0L1-0R2|root=20|10|Insert",
		"FRAME|0|graph|nodes:0,1,2 edges:0>1,1>2 visited:0|u=0|25|Visit 0",
	}
	for _, line := range lines {
		frame, lineNumber, err := frameparse.ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		if got := frameparse.Format(frame, lineNumber); got != line {
			t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, line)
		}
	}
}

func TestFormatBlankFrame(t *testing.T) {
	frame, line, err := frameparse.ParseLine("FRAME|4|unknown|x|a=1|2|desc\nwith newline")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if diff := cmp.Diff("FRAME|0|array||a=1|2|desc with newline", frameparse.Format(frame, line)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
