package frameparse

import (
	"strconv"
	"strings"

	"algoviz/internal/viz"
)

const highlightsMarker = "highlights:"

// splitHighlights separates "<values> highlights:<overlay>" into its parts.
// The marker must start the text or follow whitespace.
func splitHighlights(data string) (string, string) {
	search := data
	offset := 0
	for {
		idx := strings.Index(search, highlightsMarker)
		if idx < 0 {
			return data, ""
		}
		at := offset + idx
		if at == 0 || data[at-1] == ' ' || data[at-1] == '\t' {
			return data[:at], data[at+len(highlightsMarker):]
		}
		offset = at + len(highlightsMarker)
		search = data[offset:]
	}
}

// parseHighlights reads "indices=0,2 colors=yellow,green [labels=a,b]".
// Unparseable indices are skipped.
func parseHighlights(raw string) viz.Highlights {
	var h viz.Highlights
	for _, segment := range strings.Fields(raw) {
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "indices":
			for _, token := range splitList(value) {
				if idx, err := strconv.Atoi(token); err == nil {
					h.Indices = append(h.Indices, idx)
				}
			}
		case "colors":
			h.Colors = append(h.Colors, splitList(value)...)
		case "labels":
			h.Labels = append(h.Labels, splitList(value)...)
		}
	}
	return h
}

// parseValues reads a comma-separated value list.
func parseValues(raw string) []viz.Scalar {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return nil
	}
	tokens := splitList(raw)
	values := make([]viz.Scalar, 0, len(tokens))
	for _, token := range tokens {
		values = append(values, viz.ParseScalar(token))
	}
	return values
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseArray reads "5,2,8,1 highlights:indices=0,2 colors=yellow,green".
func ParseArray(data string) viz.ArrayPanel {
	values, overlay := splitHighlights(strings.TrimSpace(data))
	return viz.ArrayPanel{
		Name:       "arr",
		Values:     parseValues(values),
		Highlights: parseHighlights(overlay),
	}
}

// ParseStack uses the array grammar; values run bottom to top.
func ParseStack(data string) viz.StackPanel {
	arr := ParseArray(data)
	return viz.StackPanel{Name: "stk", Values: arr.Values, Highlights: arr.Highlights}
}
