package viz

import (
	"encoding/json"
	"fmt"
)

// Frame is one visualization step.
type Frame struct {
	FrameID     int               `json:"frame_id"`
	Description string            `json:"description"`
	Arrays      []ArrayPanel      `json:"arrays"`
	Trees       []TreePanel       `json:"trees"`
	Graphs      []GraphPanel      `json:"graphs"`
	LinkedLists []LinkedListPanel `json:"linked_lists"`
	Stacks      []StackPanel      `json:"stacks"`
	Queues      []QueuePanel      `json:"queues"`
	Variables   []Variable        `json:"variables"`
}

// Add appends a panel to the matching list.
func (f *Frame) Add(p Panel) {
	switch panel := p.(type) {
	case ArrayPanel:
		f.Arrays = append(f.Arrays, panel)
	case TreePanel:
		f.Trees = append(f.Trees, panel)
	case GraphPanel:
		f.Graphs = append(f.Graphs, panel)
	case LinkedListPanel:
		f.LinkedLists = append(f.LinkedLists, panel)
	case StackPanel:
		f.Stacks = append(f.Stacks, panel)
	case QueuePanel:
		f.Queues = append(f.Queues, panel)
	default:
		panic(fmt.Sprintf("viz: unknown panel type %T", p))
	}
}

// Panels returns every panel in canonical kind order.
func (f Frame) Panels() []Panel {
	out := make([]Panel, 0, len(f.Arrays)+len(f.Trees)+len(f.Graphs)+len(f.LinkedLists)+len(f.Stacks)+len(f.Queues))
	for _, p := range f.Arrays {
		out = append(out, p)
	}
	for _, p := range f.Trees {
		out = append(out, p)
	}
	for _, p := range f.Graphs {
		out = append(out, p)
	}
	for _, p := range f.LinkedLists {
		out = append(out, p)
	}
	for _, p := range f.Stacks {
		out = append(out, p)
	}
	for _, p := range f.Queues {
		out = append(out, p)
	}
	return out
}

// IsBlank reports whether the frame carries no panel. Variables alone do not
// make a frame visible.
func (f Frame) IsBlank() bool {
	return len(f.Arrays) == 0 && len(f.Trees) == 0 && len(f.Graphs) == 0 &&
		len(f.LinkedLists) == 0 && len(f.Stacks) == 0 && len(f.Queues) == 0
}

// PrimaryArray returns the first array panel, if any.
func (f Frame) PrimaryArray() (ArrayPanel, bool) {
	if len(f.Arrays) == 0 {
		return ArrayPanel{}, false
	}
	return f.Arrays[0], true
}

// Variable looks up a variable by name.
func (f Frame) Variable(name string) (Variable, bool) {
	for _, v := range f.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// MarshalJSON emits empty lists instead of null.
func (f Frame) MarshalJSON() ([]byte, error) {
	type alias Frame
	out := alias(f)
	out.Arrays = nonNil(out.Arrays)
	out.Trees = nonNil(out.Trees)
	out.Graphs = nonNil(out.Graphs)
	out.LinkedLists = nonNil(out.LinkedLists)
	out.Stacks = nonNil(out.Stacks)
	out.Queues = nonNil(out.Queues)
	out.Variables = nonNil(out.Variables)
	return json.Marshal(out)
}
