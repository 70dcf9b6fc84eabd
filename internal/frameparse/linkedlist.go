package frameparse

import (
	"strings"

	"algoviz/internal/viz"
)

const (
	listTerminator = "->NULL"
	listArrow      = "->"
)

// ParseLinkedList reads "1->2->3->NULL highlights:indices=0 colors=green".
// When the chain holds more than one "->NULL" the model produced disjoint
// fragments; only the fragment with the most nodes is kept. An empty chain
// reports false.
func ParseLinkedList(data string) (viz.LinkedListPanel, bool) {
	chain, overlay := splitHighlights(strings.TrimSpace(data))
	chain = strings.TrimSpace(chain)
	if chain == "" || strings.EqualFold(chain, "null") {
		return viz.LinkedListPanel{}, false
	}
	if countFold(chain, listTerminator) > 1 {
		chain = longestFragment(chain)
	}

	values := chainValues(chain)
	if len(values) == 0 {
		return viz.LinkedListPanel{}, false
	}

	highlights := parseHighlights(overlay)
	nodes := make([]viz.ListNode, len(values))
	for i, value := range values {
		nodes[i] = viz.ListNode{ID: i, Value: viz.ParseScalar(value)}
		if i+1 < len(values) {
			next := i + 1
			nodes[i].Next = &next
		}
	}
	for pos, idx := range highlights.Indices {
		if !inRange(idx, len(nodes)) {
			continue
		}
		nodes[idx].Highlighted = true
		if pos < len(highlights.Colors) {
			nodes[idx].Color = highlights.Colors[pos]
		}
	}

	head, tail := 0, len(nodes)-1
	return viz.LinkedListPanel{Name: "list", Nodes: nodes, HeadID: &head, TailID: &tail}, true
}

func longestFragment(chain string) string {
	best, bestCount := "", -1
	for _, fragment := range strings.Fields(chain) {
		count := len(chainValues(fragment))
		if count > bestCount {
			best, bestCount = fragment, count
		}
	}
	return best
}

func chainValues(chain string) []string {
	chain = strings.TrimSpace(chain)
	if idx := indexFold(chain, listTerminator); idx >= 0 {
		chain = chain[:idx]
	}
	var values []string
	for _, part := range strings.Split(chain, listArrow) {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "null") {
			continue
		}
		values = append(values, part)
	}
	return values
}

func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func countFold(s, sub string) int {
	count := 0
	for {
		idx := indexFold(s, sub)
		if idx < 0 {
			return count
		}
		count++
		s = s[idx+len(sub):]
	}
}
