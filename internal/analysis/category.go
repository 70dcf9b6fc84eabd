// Package analysis holds the static heuristics applied to user source before
// and after generation: category classification, data structure detection,
// frame-count sizing and per-category completion checks.
package analysis

import "strings"

// Category is an algorithm family. Every input classifies to exactly one.
type Category string

const (
	Sorting    Category = "sorting"
	Searching  Category = "searching"
	Tree       Category = "tree"
	Graph      Category = "graph"
	LinkedList Category = "linkedlist"
	StackQueue Category = "stack_queue"
)

// DefaultCategory is returned when no keyword matches.
const DefaultCategory = Sorting

// Profile configures generation for one category.
type Profile struct {
	Category  Category
	MaxFrames int
	Focus     string
	Keywords  []string
}

// profiles are checked in order. Domain-specific families come before the
// generic ones so a topological sort is a graph, not a sort.
var profiles = []Profile{
	{
		Category:  Graph,
		MaxFrames: 70,
		Focus:     "Show edge/node visits. For pathfinding, show complete path.",
		Keywords:  []string{"graph", "edge", "vertex", "bfs", "dfs", "dijkstra", "prim", "kruskal"},
	},
	{
		Category:  Tree,
		MaxFrames: 50,
		Focus:     "Show tree structure changes. For traversals, visit EVERY node.",
		Keywords:  []string{"tree", "node", "left", "right", "root", "bst", "traversal"},
	},
	{
		Category:  LinkedList,
		MaxFrames: 40,
		Focus:     "Show pointer movements and node changes.",
		Keywords:  []string{"linked", "list", "next", "head", "tail", "node"},
	},
	{
		Category:  StackQueue,
		MaxFrames: 35,
		Focus:     "Show each push/pop or enqueue/dequeue operation.",
		Keywords:  []string{"stack", "queue", "push", "pop", "enqueue", "dequeue", "top", "front"},
	},
	{
		Category:  Searching,
		MaxFrames: 30,
		Focus:     "Show search progression. Indicate when element is found or not found.",
		Keywords:  []string{"search", "find", "binary", "linear", "fibonacci"},
	},
	{
		Category:  Sorting,
		MaxFrames: 80,
		Focus:     "Show EVERY comparison and swap. For recursive sorts, show EACH partition/merge step.",
		Keywords:  []string{"sort", "swap", "partition", "merge", "bubble", "quick", "heap"},
	},
}

// Classify returns the first category, in priority order, with a keyword
// contained in the lowercased source.
func Classify(code string) Category {
	lower := strings.ToLower(code)
	for _, profile := range profiles {
		for _, keyword := range profile.Keywords {
			if strings.Contains(lower, keyword) {
				return profile.Category
			}
		}
	}
	return DefaultCategory
}

// ProfileFor returns the generation profile for a category. Unknown
// categories report false.
func ProfileFor(category Category) (Profile, bool) {
	for _, profile := range profiles {
		if profile.Category == category {
			return profile, true
		}
	}
	return Profile{}, false
}

// Profiles returns every profile in priority order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// ParseCategory validates a user supplied category name.
func ParseCategory(raw string) (Category, bool) {
	candidate := Category(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := ProfileFor(candidate)
	return candidate, ok
}
