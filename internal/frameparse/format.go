package frameparse

import (
	"strconv"
	"strings"

	"algoviz/internal/viz"
)

// Format renders a frame as one micro-format line. Only the first panel is
// encoded; the grammar carries one structure per line.
func Format(frame viz.Frame, line int) string {
	kind, data := viz.KindArray, ""
	if panels := frame.Panels(); len(panels) > 0 {
		kind = panels[0].Kind()
		data = formatPanel(panels[0])
	}
	vars := make([]string, 0, len(frame.Variables))
	for _, v := range frame.Variables {
		vars = append(vars, v.Name+"="+strings.ReplaceAll(v.Value, " ", "_"))
	}
	desc := strings.Join(strings.Fields(frame.Description), " ")
	return strings.Join([]string{
		framePrefix,
		strconv.Itoa(frame.FrameID),
		string(kind),
		data,
		strings.Join(vars, " "),
		strconv.Itoa(line),
		desc,
	}, "|")
}

func formatPanel(panel viz.Panel) string {
	switch p := panel.(type) {
	case viz.ArrayPanel:
		return withHighlights(joinScalars(p.Values), p.Highlights)
	case viz.StackPanel:
		return withHighlights(joinScalars(p.Values), p.Highlights)
	case viz.QueuePanel:
		data := joinScalars(p.Values) + " front_index:" + strconv.Itoa(p.FrontIndex) + " rear_index:" + strconv.Itoa(p.RearIndex)
		return withHighlights(strings.TrimSpace(data), p.Highlights)
	case viz.TreePanel:
		return formatTree(p)
	case viz.GraphPanel:
		return formatGraph(p)
	case viz.LinkedListPanel:
		return formatList(p)
	default:
		return ""
	}
}

func joinScalars(values []viz.Scalar) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func withHighlights(data string, h viz.Highlights) string {
	if len(h.Indices) == 0 && len(h.Colors) == 0 {
		return data
	}
	out := data + " highlights:indices=" + joinInts(h.Indices) + " colors=" + strings.Join(h.Colors, ",")
	if len(h.Labels) > 0 {
		out += " labels=" + strings.Join(h.Labels, ",")
	}
	return out
}

func formatTree(p viz.TreePanel) string {
	values := make([]string, len(p.Nodes))
	var links []string
	for i, node := range p.Nodes {
		values[i] = node.Value.String()
		if node.LeftChildID != nil {
			links = append(links, strconv.Itoa(i)+"L"+strconv.Itoa(*node.LeftChildID))
		}
		if node.RightChildID != nil {
			links = append(links, strconv.Itoa(i)+"R"+strconv.Itoa(*node.RightChildID))
		}
	}
	return "values:" + strings.Join(values, ",") + " structure:" + strings.Join(links, "-")
}

func formatGraph(p viz.GraphPanel) string {
	nodes := make([]int, 0, len(p.Nodes))
	var visited []int
	for _, node := range p.Nodes {
		nodes = append(nodes, node.ID)
		if node.Visited {
			visited = append(visited, node.ID)
		}
	}
	edges := make([]string, 0, len(p.Edges))
	for _, edge := range p.Edges {
		sep := "-"
		if edge.Directed {
			sep = ">"
		}
		edges = append(edges, strconv.Itoa(edge.From)+sep+strconv.Itoa(edge.To))
	}
	return "nodes:" + joinInts(nodes) + " edges:" + strings.Join(edges, ",") + " visited:" + joinInts(visited)
}

func formatList(p viz.LinkedListPanel) string {
	values := make([]string, 0, len(p.Nodes)+1)
	var h viz.Highlights
	for i, node := range p.Nodes {
		values = append(values, node.Value.String())
		if node.Highlighted {
			h.Indices = append(h.Indices, i)
			color := node.Color
			if color == "" {
				color = "yellow"
			}
			h.Colors = append(h.Colors, color)
		}
	}
	values = append(values, "NULL")
	return withHighlights(strings.Join(values, listArrow), h)
}
