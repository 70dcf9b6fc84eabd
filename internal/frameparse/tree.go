package frameparse

import (
	"strconv"
	"strings"

	"algoviz/internal/viz"
)

// Tree layout constants: root anchor, first-level horizontal offset and row
// height. The horizontal offset halves at every level below the first.
const (
	treeRootX   = 200
	treeRootY   = 50
	treeSpacing = 100
	treeRowStep = 80
)

// ParseTree reads "values:20,8,22 structure:0L1-0R2" or a bare value list.
// NULL values are skipped, so structure indices refer to the surviving
// values. Links to missing indices are ignored. A tree without nodes reports
// false.
func ParseTree(data string) (viz.TreePanel, bool) {
	data = strings.TrimSpace(data)
	if data == "" || strings.EqualFold(data, "null") {
		return viz.TreePanel{}, false
	}

	var rawValues, rawStructure string
	if strings.Contains(data, "values:") {
		for _, part := range strings.Fields(data) {
			if v, ok := strings.CutPrefix(part, "values:"); ok {
				rawValues = v
			} else if s, ok := strings.CutPrefix(part, "structure:"); ok {
				rawStructure = s
			}
		}
	} else {
		rawValues = data
	}

	var nodes []viz.TreeNode
	for _, token := range splitList(rawValues) {
		if strings.EqualFold(token, "null") {
			continue
		}
		nodes = append(nodes, viz.TreeNode{
			ID:    len(nodes),
			Value: viz.ParseScalar(token),
			Color: "default",
		})
	}
	if len(nodes) == 0 {
		return viz.TreePanel{}, false
	}

	for _, link := range strings.Split(rawStructure, "-") {
		link = strings.TrimSpace(link)
		sep := strings.IndexAny(link, "LR")
		if sep <= 0 {
			continue
		}
		parent, errP := strconv.Atoi(link[:sep])
		child, errC := strconv.Atoi(link[sep+1:])
		if errP != nil || errC != nil || !inRange(parent, len(nodes)) || !inRange(child, len(nodes)) || parent == child {
			continue
		}
		if link[sep] == 'L' {
			nodes[parent].LeftChildID = &child
		} else {
			nodes[parent].RightChildID = &child
		}
	}

	layoutTree(nodes, 0, treeRootX, treeRootY, 0, make([]bool, len(nodes)))
	return viz.TreePanel{Name: "Tree", Nodes: nodes}, true
}

func layoutTree(nodes []viz.TreeNode, id int, x, y float64, level int, placed []bool) {
	if !inRange(id, len(nodes)) || placed[id] {
		return
	}
	placed[id] = true
	nodes[id].X = x
	nodes[id].Y = y

	offset := float64(treeSpacing)
	if level > 0 {
		offset = treeSpacing / float64(int(1)<<level)
	}
	if left := nodes[id].LeftChildID; left != nil {
		layoutTree(nodes, *left, x-offset, y+treeRowStep, level+1, placed)
	}
	if right := nodes[id].RightChildID; right != nil {
		layoutTree(nodes, *right, x+offset, y+treeRowStep, level+1, placed)
	}
}

func inRange(idx, n int) bool { return idx >= 0 && idx < n }
