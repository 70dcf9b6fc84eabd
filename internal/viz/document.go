package viz

import (
	"encoding/json"
	"slices"
)

// Complexity labels derived from the final frame count.
const (
	ComplexityLow     = "low"
	ComplexityMedium  = "medium"
	ComplexityHigh    = "high"
	ComplexityUnknown = "unknown"
)

// Document is the visualization returned for one request.
type Document struct {
	Metadata      Metadata      `json:"metadata"`
	Visualization Visualization `json:"visualization"`
	LineSync      LineSync      `json:"linesync"`

	complexityPinned bool
}

type Metadata struct {
	TotalFrames        int      `json:"total_frames"`
	Complexity         string   `json:"complexity"`
	DataStructuresUsed []string `json:"data_structures_used"`
	Category           string   `json:"category,omitempty"`
	IsFallback         bool     `json:"is_fallback,omitempty"`
	Error              string   `json:"error,omitempty"`
}

// MarshalJSON emits an empty structure list instead of null.
func (m Metadata) MarshalJSON() ([]byte, error) {
	type alias Metadata
	out := alias(m)
	out.DataStructuresUsed = nonNil(out.DataStructuresUsed)
	return json.Marshal(out)
}

type Visualization struct {
	Frames []Frame `json:"frames"`
}

// MarshalJSON emits an empty frame list instead of null.
func (v Visualization) MarshalJSON() ([]byte, error) {
	type alias Visualization
	out := alias(v)
	out.Frames = nonNil(out.Frames)
	return json.Marshal(out)
}

// Frames is shorthand for d.Visualization.Frames.
func (d Document) Frames() []Frame { return d.Visualization.Frames }

// Compact drops blank frames, renumbers the survivors densely from zero and
// rewrites line-sync mappings to follow. Mappings whose frame was dropped are
// discarded; when several mappings name the same frame the first one wins.
func (d *Document) Compact() (dropped int) {
	remap := make(map[int]int, len(d.Visualization.Frames))
	kept := make([]Frame, 0, len(d.Visualization.Frames))
	for _, frame := range d.Visualization.Frames {
		if frame.IsBlank() {
			dropped++
			continue
		}
		if _, seen := remap[frame.FrameID]; !seen {
			remap[frame.FrameID] = len(kept)
		}
		frame.FrameID = len(kept)
		kept = append(kept, frame)
	}
	d.Visualization.Frames = kept

	mapped := make(map[int]bool, len(kept))
	mappings := make([]FrameMapping, 0, len(d.LineSync.FrameMappings))
	for _, mapping := range d.LineSync.FrameMappings {
		id, ok := remap[mapping.FrameID]
		if !ok || mapped[id] {
			continue
		}
		mapped[id] = true
		mapping.FrameID = id
		mappings = append(mappings, mapping)
	}
	slices.SortStableFunc(mappings, func(a, b FrameMapping) int { return a.FrameID - b.FrameID })
	d.LineSync.FrameMappings = mappings
	return dropped
}

// Append adds frames and their mappings after the existing ones, continuing
// the numbering. Incoming ids are treated as provisional.
func (d *Document) Append(frames []Frame, mappings []FrameMapping) {
	tail := Document{
		Visualization: Visualization{Frames: frames},
		LineSync:      LineSync{FrameMappings: mappings},
	}
	tail.Compact()
	offset := len(d.Visualization.Frames)
	for _, frame := range tail.Visualization.Frames {
		frame.FrameID += offset
		d.Visualization.Frames = append(d.Visualization.Frames, frame)
	}
	for _, mapping := range tail.LineSync.FrameMappings {
		mapping.FrameID += offset
		d.LineSync.FrameMappings = append(d.LineSync.FrameMappings, mapping)
	}
}

// PinComplexity fixes the complexity label; later Finalize calls keep it.
// An empty label is ignored.
func (d *Document) PinComplexity(label string) {
	if label == "" {
		return
	}
	d.Metadata.Complexity = label
	d.complexityPinned = true
}

// Finalize recomputes metadata from the frames. A pinned complexity label
// is left alone.
func (d *Document) Finalize() {
	frames := d.Visualization.Frames
	d.Metadata.TotalFrames = len(frames)
	if !d.Metadata.IsFallback && !d.complexityPinned {
		d.Metadata.Complexity = ComplexityLabel(len(frames))
	}
	if used := DataStructures(frames); len(used) > 0 {
		d.Metadata.DataStructuresUsed = used
	} else if len(d.Metadata.DataStructuresUsed) == 0 {
		d.Metadata.DataStructuresUsed = []string{string(KindArray)}
	}
}

// ComplexityLabel buckets a frame count.
func ComplexityLabel(frames int) string {
	switch {
	case frames > 30:
		return ComplexityHigh
	case frames > 15:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

// DataStructures lists the distinct panel kinds in order of first appearance.
func DataStructures(frames []Frame) []string {
	var out []string
	for _, frame := range frames {
		for _, panel := range frame.Panels() {
			name := string(panel.Kind())
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	return out
}
