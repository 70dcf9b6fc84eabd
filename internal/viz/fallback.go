package viz

import "strings"

const fallbackSnippet = "Unable to generate line sync"

// Fallback builds the degraded one-frame document returned once every
// attempt has failed. The frame is intentionally panel-free and is never
// compacted.
func Fallback(reason string) Document {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unknown error"
	}
	return Document{
		Metadata: Metadata{
			TotalFrames:        1,
			Complexity:         ComplexityUnknown,
			DataStructuresUsed: []string{"unknown"},
			IsFallback:         true,
			Error:              reason,
		},
		Visualization: Visualization{Frames: []Frame{{
			FrameID:     0,
			Description: "AI visualization failed: " + reason + ". Please check your code and try again.",
		}}},
		LineSync: LineSync{
			FrameMappings: []FrameMapping{{
				FrameID:       0,
				LineNumbers:   []int{1},
				CodeSnippet:   fallbackSnippet,
				Explanation:   "Visualization failed: " + reason,
				HighlightType: HighlightDefault,
			}},
		},
	}
}
