package frameparse

import (
	"fmt"
	"strconv"
	"strings"

	"algoviz/internal/viz"
)

const (
	graphNodeColor    = "#555"
	graphVisitedColor = "#4CAF50"
)

// ParseGraph reads "nodes:0,1,2 edges:0-1,1>2 visited:0". Edges accept '-' or
// '>' between endpoints. Edges naming a node absent from the node list are
// dropped.
func ParseGraph(data string) (viz.GraphPanel, error) {
	panel := viz.GraphPanel{Name: "Graph", Directed: true}
	data = strings.TrimSpace(data)
	if data == "" || strings.EqualFold(data, "null") {
		return panel, nil
	}

	var rawNodes, rawEdges, rawVisited string
	for _, part := range strings.Fields(data) {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "nodes":
			rawNodes = value
		case "edges":
			rawEdges = value
		case "visited":
			rawVisited = value
		}
	}

	for _, token := range splitList(rawNodes) {
		id, err := strconv.Atoi(token)
		if err != nil {
			return viz.GraphPanel{}, fmt.Errorf("node id %q: %w", token, err)
		}
		panel.Nodes = append(panel.Nodes, viz.GraphNode{ID: id, Label: token, Color: graphNodeColor})
	}

	for _, token := range splitList(rawEdges) {
		sep := strings.IndexAny(token, ">-")
		if sep <= 0 {
			continue
		}
		from, errF := strconv.Atoi(strings.TrimSpace(token[:sep]))
		to, errT := strconv.Atoi(strings.TrimSpace(token[sep+1:]))
		if errF != nil || errT != nil {
			return viz.GraphPanel{}, fmt.Errorf("edge %q: malformed endpoints", token)
		}
		if !panel.HasNode(from) || !panel.HasNode(to) {
			continue
		}
		panel.Edges = append(panel.Edges, viz.GraphEdge{
			From:     from,
			To:       to,
			Weight:   1,
			Directed: token[sep] == '>',
		})
	}

	visited := make(map[int]bool)
	for _, token := range splitList(rawVisited) {
		if id, err := strconv.Atoi(token); err == nil {
			visited[id] = true
		}
	}
	for i := range panel.Nodes {
		if visited[panel.Nodes[i].ID] {
			panel.Nodes[i].Visited = true
			panel.Nodes[i].Color = graphVisitedColor
		}
	}
	return panel, nil
}
