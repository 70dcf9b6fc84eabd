package analysis

import (
	"slices"
	"strings"

	"algoviz/internal/viz"
)

const (
	minTreeFrames       = 10
	minGraphFrames      = 15
	minStackQueueFrames = 10
)

var listDoneWords = []string{"final", "complete", "result", "done", "finished"}

// IsComplete reports whether frames look like a finished run for the
// category. Unknown categories are always complete.
func IsComplete(category Category, frames []viz.Frame) bool {
	switch category {
	case Sorting:
		return sortedAtEnd(frames)
	case Searching:
		return searchConcluded(frames)
	case Tree:
		return len(frames) >= minTreeFrames
	case Graph:
		return len(frames) >= minGraphFrames || graphFullyVisited(frames)
	case LinkedList:
		return listConcluded(frames)
	case StackQueue:
		return len(frames) >= minStackQueueFrames
	default:
		return true
	}
}

func sortedAtEnd(frames []viz.Frame) bool {
	if len(frames) == 0 {
		return false
	}
	primary, ok := frames[len(frames)-1].PrimaryArray()
	if !ok {
		return false
	}
	sorted := slices.Clone(primary.Values)
	slices.SortStableFunc(sorted, viz.Scalar.Compare)
	return slices.EqualFunc(primary.Values, sorted, func(a, b viz.Scalar) bool { return a.Compare(b) == 0 })
}

func searchConcluded(frames []viz.Frame) bool {
	if len(frames) == 0 {
		return false
	}
	last := frames[len(frames)-1]
	if strings.Contains(strings.ToLower(last.Description), "found") {
		return true
	}
	_, ok := last.Variable("found")
	return ok
}

func listConcluded(frames []viz.Frame) bool {
	if len(frames) == 0 {
		return false
	}
	desc := strings.ToLower(frames[len(frames)-1].Description)
	for _, word := range listDoneWords {
		if strings.Contains(desc, word) {
			return true
		}
	}
	return false
}

// graphFullyVisited accepts a short traversal whose last frame shows every
// node of its graph as visited.
func graphFullyVisited(frames []viz.Frame) bool {
	if len(frames) == 0 {
		return false
	}
	graphs := frames[len(frames)-1].Graphs
	if len(graphs) == 0 {
		return false
	}
	for _, graph := range graphs {
		if len(graph.Nodes) == 0 {
			return false
		}
		for _, node := range graph.Nodes {
			if !node.Visited {
				return false
			}
		}
	}
	return true
}
