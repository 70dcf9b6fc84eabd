package repair

import (
	"fmt"

	"algoviz/internal/services"
	"algoviz/internal/viz"
)

type wireDocument struct {
	Metadata      *viz.Metadata `json:"metadata"`
	Visualization *struct {
		Frames []viz.Frame `json:"frames"`
	} `json:"visualization"`
	LineSync *viz.LineSync `json:"linesync"`
}

// DecodeDocument recovers a visualization document from structured model
// output. The result is compacted and its counts recomputed, keeping the
// model's complexity label when it supplied one; graph edges
// naming unknown nodes are dropped. Schema failures carry
// services.ErrValidation.
func DecodeDocument(text string) (viz.Document, Stage, error) {
	var wire wireDocument
	stage, err := Decode(text, &wire)
	if err != nil {
		return viz.Document{}, stage, services.Wrap(services.ErrValidation, "parse", "json", "decode document", err)
	}
	if wire.Visualization == nil {
		return viz.Document{}, stage, services.Wrap(services.ErrValidation, "parse", "json", "missing visualization", nil)
	}
	if len(wire.Visualization.Frames) == 0 {
		return viz.Document{}, stage, services.Wrap(services.ErrValidation, "parse", "json", "document has no frames", nil)
	}

	var doc viz.Document
	if wire.Metadata != nil {
		doc.Metadata = *wire.Metadata
	}
	doc.Metadata.IsFallback = false
	doc.Metadata.Error = ""
	doc.Visualization.Frames = wire.Visualization.Frames
	if wire.LineSync != nil {
		doc.LineSync = *wire.LineSync
	}
	for i := range doc.Visualization.Frames {
		pruneDanglingEdges(&doc.Visualization.Frames[i])
	}

	doc.Compact()
	if len(doc.Visualization.Frames) == 0 {
		return viz.Document{}, stage, services.Wrap(services.ErrValidation, "parse", "json", fmt.Sprintf("all %d frames blank", len(wire.Visualization.Frames)), nil)
	}
	label := doc.Metadata.Complexity
	doc.Finalize()
	doc.PinComplexity(label)
	return doc, stage, nil
}

func pruneDanglingEdges(frame *viz.Frame) {
	for g := range frame.Graphs {
		graph := &frame.Graphs[g]
		kept := graph.Edges[:0]
		for _, edge := range graph.Edges {
			if graph.HasNode(edge.From) && graph.HasNode(edge.To) {
				kept = append(kept, edge)
			}
		}
		graph.Edges = kept
	}
}
