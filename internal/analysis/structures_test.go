package analysis_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"algoviz/internal/analysis"
	"algoviz/internal/viz"
)

func TestDetectStructures(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []viz.PanelKind
	}{
		{"stack only", "s.push(3);\ns.pop();\nint t = s.top();", []viz.PanelKind{viz.KindStack}},
		{"nothing", "int x = 1;", []viz.PanelKind{viz.KindArray}},
		{"array and queue", "int arr[5];\nqueue<int> q;\nq.front();", []viz.PanelKind{viz.KindArray, viz.KindQueue}},
		{"bst", "TreeNode* root = insert(root, 5);", []viz.PanelKind{viz.KindTree}},
		{"graph", "vector<int> adj[5]; bool visited[5];", []viz.PanelKind{viz.KindArray, viz.KindGraph}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, analysis.DetectStructures(tt.code)); diff != "" {
				t.Fatalf("DetectStructures mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
