package analysis

import (
	"strings"

	"algoviz/internal/viz"
)

var structureHints = []struct {
	kind  viz.PanelKind
	hints []string
}{
	{viz.KindArray, []string{"arr[", "vector<", "int arr", "int a[", "float arr", "array<", "double arr", "char arr"}},
	{viz.KindTree, []string{"node*", "treenode", "left", "right", "root", "struct node", "class node", "parent", "child"}},
	{viz.KindGraph, []string{"adjacency", "edges", "vertices", "graph", "adj[", "visited", "distance", "neighbor"}},
	{viz.KindLinkedList, []string{"listnode", "next", "head", "tail", "->next", "struct node", "prev", "doubly", "singly"}},
	{viz.KindStack, []string{"push", "pop", "top", "stack<", "lifo", ".push(", ".pop(", ".top()"}},
	{viz.KindQueue, []string{"enqueue", "dequeue", "front", "rear", "queue<", "fifo", ".front(", "circular"}},
}

// DetectStructures returns every structure with a hint in the source, in
// canonical order. The result is never empty; arrays are assumed when
// nothing matches.
func DetectStructures(code string) []viz.PanelKind {
	lower := strings.ToLower(code)
	var detected []viz.PanelKind
	for _, entry := range structureHints {
		for _, hint := range entry.hints {
			if strings.Contains(lower, hint) {
				detected = append(detected, entry.kind)
				break
			}
		}
	}
	if len(detected) == 0 {
		detected = append(detected, viz.KindArray)
	}
	return detected
}
