package viz

import "encoding/json"

// PanelKind names a panel variant. The values double as the micro-format
// structure_type tokens.
type PanelKind string

const (
	KindArray      PanelKind = "array"
	KindTree       PanelKind = "tree"
	KindGraph      PanelKind = "graph"
	KindLinkedList PanelKind = "linkedlist"
	KindStack      PanelKind = "stack"
	KindQueue      PanelKind = "queue"
)

// PanelKinds lists every panel kind in canonical order.
var PanelKinds = []PanelKind{KindArray, KindTree, KindGraph, KindLinkedList, KindStack, KindQueue}

// ParsePanelKind maps a structure_type token to its kind.
func ParsePanelKind(raw string) (PanelKind, bool) {
	for _, kind := range PanelKinds {
		if string(kind) == raw {
			return kind, true
		}
	}
	return "", false
}

// Panel is one data structure's state inside a frame. The set of
// implementations is closed to this package.
type Panel interface {
	Kind() PanelKind
	isPanel()
}

// Highlights is an overlay of parallel lists referring into a panel's values.
// Indices and Colors are zipped positionally; their lengths may differ.
type Highlights struct {
	Indices []int    `json:"indices"`
	Colors  []string `json:"colors"`
	Labels  []string `json:"labels"`
}

// IsZero reports whether the overlay highlights nothing.
func (h Highlights) IsZero() bool {
	return len(h.Indices) == 0 && len(h.Colors) == 0 && len(h.Labels) == 0
}

// MarshalJSON always emits the three lists, never null.
func (h Highlights) MarshalJSON() ([]byte, error) {
	type alias Highlights
	out := alias(h)
	out.Indices = nonNil(out.Indices)
	out.Colors = nonNil(out.Colors)
	out.Labels = nonNil(out.Labels)
	return json.Marshal(out)
}

type ArrayPanel struct {
	Name       string     `json:"name"`
	Values     []Scalar   `json:"values"`
	Highlights Highlights `json:"highlights"`
}

func (ArrayPanel) Kind() PanelKind { return KindArray }
func (ArrayPanel) isPanel()        {}

// TreeNode ids are indices into the owning panel's node list.
type TreeNode struct {
	ID           int     `json:"id"`
	Value        Scalar  `json:"value"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	LeftChildID  *int    `json:"left_child_id"`
	RightChildID *int    `json:"right_child_id"`
	Highlighted  bool    `json:"highlighted"`
	Color        string  `json:"color"`
}

type TreePanel struct {
	Name  string     `json:"name"`
	Nodes []TreeNode `json:"nodes"`
}

func (TreePanel) Kind() PanelKind { return KindTree }
func (TreePanel) isPanel()        {}

type GraphNode struct {
	ID      int    `json:"id"`
	Label   string `json:"label"`
	Visited bool   `json:"visited"`
	Color   string `json:"color"`
}

type GraphEdge struct {
	From        int     `json:"from"`
	To          int     `json:"to"`
	Weight      float64 `json:"weight"`
	Directed    bool    `json:"directed"`
	Highlighted bool    `json:"highlighted"`
}

type GraphPanel struct {
	Name     string      `json:"name"`
	Directed bool        `json:"directed"`
	Nodes    []GraphNode `json:"nodes"`
	Edges    []GraphEdge `json:"edges"`
}

func (GraphPanel) Kind() PanelKind { return KindGraph }
func (GraphPanel) isPanel()        {}

// HasNode reports whether id is present in the node list.
func (g GraphPanel) HasNode(id int) bool {
	for _, node := range g.Nodes {
		if node.ID == id {
			return true
		}
	}
	return false
}

// ListNode.Next is the index of the following node, nil at the tail.
type ListNode struct {
	ID          int    `json:"id"`
	Value       Scalar `json:"value"`
	Next        *int   `json:"next"`
	Highlighted bool   `json:"highlighted"`
	Color       string `json:"color,omitempty"`
}

type LinkedListPanel struct {
	Name   string     `json:"name"`
	Nodes  []ListNode `json:"nodes"`
	HeadID *int       `json:"head_id"`
	TailID *int       `json:"tail_id"`
}

func (LinkedListPanel) Kind() PanelKind { return KindLinkedList }
func (LinkedListPanel) isPanel()        {}

// StackPanel values run bottom to top; the last value is the top.
type StackPanel struct {
	Name       string     `json:"name"`
	Values     []Scalar   `json:"elements"`
	Highlights Highlights `json:"highlights"`
}

func (StackPanel) Kind() PanelKind { return KindStack }
func (StackPanel) isPanel()        {}

// QueuePanel values run front to rear.
type QueuePanel struct {
	Name       string     `json:"name"`
	Values     []Scalar   `json:"elements"`
	FrontIndex int        `json:"front_index"`
	RearIndex  int        `json:"rear_index"`
	Highlights Highlights `json:"highlights"`
}

func (QueuePanel) Kind() PanelKind { return KindQueue }
func (QueuePanel) isPanel()        {}

// Variable values are kept as the text the model produced.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// UnmarshalJSON tolerates numeric and boolean values from structured output.
func (v *Variable) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
		Type  string          `json:"type"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	v.Name = wire.Name
	v.Type = wire.Type
	v.Value = ""
	if len(wire.Value) == 0 {
		return nil
	}
	var text string
	if err := json.Unmarshal(wire.Value, &text); err == nil {
		v.Value = text
		return nil
	}
	if string(wire.Value) != "null" {
		v.Value = string(wire.Value)
	}
	return nil
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
