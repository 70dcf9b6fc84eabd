package frameparse

import (
	"regexp"
	"strconv"
	"strings"

	"algoviz/internal/viz"
)

var (
	frontIndexPattern = regexp.MustCompile(`front_index:\s*(-?\d+)`)
	rearIndexPattern  = regexp.MustCompile(`rear_index:\s*(-?\d+)`)
)

// ParseQueue reads "5,3,8 front_index:0 rear_index:2 highlights:...". The
// index tokens are removed before the rest is read with the array grammar.
// Missing indices default to the first and last value.
func ParseQueue(data string) viz.QueuePanel {
	front, hasFront := extractIndex(frontIndexPattern, &data)
	rear, hasRear := extractIndex(rearIndexPattern, &data)
	arr := ParseArray(data)

	panel := viz.QueuePanel{Name: "q", Values: arr.Values, Highlights: arr.Highlights}
	panel.FrontIndex = 0
	panel.RearIndex = max(len(arr.Values)-1, 0)
	if hasFront {
		panel.FrontIndex = front
	}
	if hasRear {
		panel.RearIndex = rear
	}
	return panel
}

func extractIndex(pattern *regexp.Regexp, data *string) (int, bool) {
	match := pattern.FindStringSubmatch(*data)
	if match == nil {
		return 0, false
	}
	*data = strings.TrimSpace(pattern.ReplaceAllString(*data, ""))
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return value, true
}
