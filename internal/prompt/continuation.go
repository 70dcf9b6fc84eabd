package prompt

import (
	"fmt"
	"strings"

	"algoviz/internal/analysis"
)

// Continuation frame range requested when a trace looks unfinished.
const (
	ContinuationMinFrames = 10
	ContinuationMaxFrames = 15
)

// BuildContinuation asks for the frames that finish an incomplete trace.
// lastFrame is the final frame rendered in the micro-format and nextID the id
// the first new frame should carry.
func BuildContinuation(code, lastFrame string, nextID int, category analysis.Category) string {
	var b strings.Builder
	b.WriteString("The previous visualization was incomplete.\n\n")
	b.WriteString("CODE (with line numbers):\n")
	b.WriteString(NumberLines(code))
	b.WriteString("\n\nLAST FRAME WAS:\n")
	b.WriteString(orDefault(lastFrame, "None"))
	fmt.Fprintf(&b, "\n\nGenerate %d-%d MORE frames to COMPLETE the algorithm.\n", ContinuationMinFrames, ContinuationMaxFrames)
	switch category {
	case analysis.Sorting:
		b.WriteString("The final frame must show the FULLY SORTED array.\n")
	case analysis.Searching:
		b.WriteString("The final frame must say the element was FOUND or NOT FOUND and set found=true or found=false.\n")
	case analysis.LinkedList:
		b.WriteString("The final description must state the operation is complete.\n")
	default:
		b.WriteString("The final frame must show the final state of every data structure.\n")
	}
	b.WriteString("Continue in the same format: FRAME|id|type|data|vars|line|desc\n")
	fmt.Fprintf(&b, "Start from frame %d. Return ONLY the FRAME lines.", nextID)
	return b.String()
}
