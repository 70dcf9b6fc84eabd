package analysis_test

import (
	"testing"

	"algoviz/internal/analysis"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		code string
		want analysis.Category
	}{
		{"bubble sort", "void bubbleSort(int arr[], int n) { swap(arr[j], arr[j+1]); }", analysis.Sorting},
		{"binary search", "int binarySearch(int a[], int x) { return -1; }", analysis.Searching},
		{"topological sort is a graph", "void topoSort(vector<int> adj[]) { /* graph */ }", analysis.Graph},
		{"tree before linked list", "struct Node { int data; Node* left; Node* right; };", analysis.Tree},
		{"linked list", "while (head != NULL) head = head->next;", analysis.LinkedList},
		{"stack", "s.push(1); s.pop();", analysis.StackQueue},
		{"no keywords", "int main() { return 0; }", analysis.DefaultCategory},
		{"case insensitive", "// DIJKSTRA", analysis.Graph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analysis.Classify(tt.code); got != tt.want {
				t.Fatalf("Classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyIsDeterministicAndTotal(t *testing.T) {
	inputs := []string{"", "x", "sort tree graph", "queue", "\x00\xff"}
	for _, input := range inputs {
		first := analysis.Classify(input)
		if _, ok := analysis.ProfileFor(first); !ok {
			t.Fatalf("Classify(%q) returned unknown category %q", input, first)
		}
		for range 5 {
			if again := analysis.Classify(input); again != first {
				t.Fatalf("Classify(%q) not deterministic: %q then %q", input, first, again)
			}
		}
	}
}

func TestProfileBudgets(t *testing.T) {
	want := map[analysis.Category]int{
		analysis.Sorting:    80,
		analysis.Searching:  30,
		analysis.Tree:       50,
		analysis.Graph:      70,
		analysis.LinkedList: 40,
		analysis.StackQueue: 35,
	}
	for category, frames := range want {
		profile, ok := analysis.ProfileFor(category)
		if !ok {
			t.Fatalf("missing profile for %q", category)
		}
		if profile.MaxFrames != frames {
			t.Fatalf("%s budget = %d, want %d", category, profile.MaxFrames, frames)
		}
		if profile.Focus == "" {
			t.Fatalf("%s has no focus text", category)
		}
	}
	if _, ok := analysis.ParseCategory(" Stack_Queue "); !ok {
		t.Fatal("expected ParseCategory to accept stack_queue")
	}
	if _, ok := analysis.ParseCategory("hashing"); ok {
		t.Fatal("expected ParseCategory to reject unknown name")
	}
}
