package frameparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"algoviz/internal/viz"
)

const (
	framePrefix = "FRAME"
	fieldCount  = 7
)

// ErrNoFrames reports a document in which no frame survived parsing.
var ErrNoFrames = errors.New("no frames parsed")

// LineError describes one skipped micro-format line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// Result is the outcome of parsing one model response.
type Result struct {
	Document   viz.Document
	LineErrors []LineError
	// Dropped counts blank frames removed by the filter.
	Dropped int
}

// HasFrameLines reports whether text holds at least one FRAME line.
func HasFrameLines(text string) bool {
	for _, line := range splitLines(Normalize(text)) {
		if strings.HasPrefix(line, framePrefix) {
			return true
		}
	}
	return false
}

// Parse converts a model response into a document. sourceLines is the length
// of the user's program and bounds the default setup lines. Frame ids in the
// text are treated as provisional: survivors are renumbered densely.
func Parse(text string, sourceLines int) (Result, error) {
	var result Result
	doc := &result.Document
	ordinal := 0
	for n, line := range splitLines(Normalize(text)) {
		if !strings.HasPrefix(line, framePrefix) {
			continue
		}
		frame, lineNumber, err := ParseLine(line)
		if err != nil {
			result.LineErrors = append(result.LineErrors, LineError{Line: n + 1, Text: line, Err: err})
			continue
		}
		frame.FrameID = ordinal
		doc.Visualization.Frames = append(doc.Visualization.Frames, frame)
		doc.LineSync.FrameMappings = append(doc.LineSync.FrameMappings, viz.FrameMapping{
			FrameID:       ordinal,
			LineNumbers:   []int{lineNumber},
			CodeSnippet:   "Line " + strconv.Itoa(lineNumber),
			Explanation:   frame.Description,
			HighlightType: viz.HighlightDefault,
		})
		ordinal++
	}
	result.Dropped = doc.Compact()
	if len(doc.Visualization.Frames) == 0 {
		return result, fmt.Errorf("%w: %d frame lines, %d malformed, %d blank", ErrNoFrames, ordinal+len(result.LineErrors), len(result.LineErrors), result.Dropped)
	}
	doc.LineSync.SetupLines = viz.DefaultSetupLines(sourceLines)
	doc.Finalize()
	return result, nil
}

// ParseLine parses a single FRAME line and returns the frame with the source
// line number it reports.
func ParseLine(line string) (viz.Frame, int, error) {
	fields := strings.SplitN(strings.TrimSpace(line), "|", fieldCount)
	if len(fields) < fieldCount {
		return viz.Frame{}, 0, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	if strings.TrimSpace(fields[0]) != framePrefix {
		return viz.Frame{}, 0, fmt.Errorf("unexpected record type %q", fields[0])
	}
	lineNumber, err := strconv.Atoi(strings.TrimSpace(fields[5]))
	if err != nil {
		return viz.Frame{}, 0, fmt.Errorf("line number %q: %w", fields[5], err)
	}

	frame := viz.Frame{
		Description: strings.TrimSpace(fields[6]),
		Variables:   ParseVariables(fields[4]),
	}
	kind, known := viz.ParsePanelKind(strings.ToLower(strings.TrimSpace(fields[2])))
	if !known {
		return frame, lineNumber, nil
	}
	panel, ok, err := parsePanel(kind, fields[3])
	if err != nil {
		return viz.Frame{}, 0, fmt.Errorf("%s data: %w", kind, err)
	}
	if ok {
		frame.Add(panel)
	}
	return frame, lineNumber, nil
}

func parsePanel(kind viz.PanelKind, data string) (viz.Panel, bool, error) {
	switch kind {
	case viz.KindArray:
		return ParseArray(data), true, nil
	case viz.KindTree:
		panel, ok := ParseTree(data)
		return panel, ok, nil
	case viz.KindGraph:
		panel, err := ParseGraph(data)
		if err != nil {
			return nil, false, err
		}
		return panel, len(panel.Nodes) > 0 || len(panel.Edges) > 0, nil
	case viz.KindLinkedList:
		panel, ok := ParseLinkedList(data)
		return panel, ok, nil
	case viz.KindStack:
		return ParseStack(data), true, nil
	case viz.KindQueue:
		return ParseQueue(data), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported structure %q", kind)
	}
}

var lookalikes = strings.NewReplacer("→", "->", "⟶", "->", "\r", "")

// Normalize folds compatibility characters (full-width pipes and digits) to
// their ASCII forms and rewrites arrow glyphs to "->".
func Normalize(text string) string {
	return lookalikes.Replace(norm.NFKC.String(text))
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// ParseVariables reads space-separated name=value tokens. Values stay text.
func ParseVariables(raw string) []viz.Variable {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return nil
	}
	var vars []viz.Variable
	for _, token := range strings.Fields(raw) {
		name, value, ok := strings.Cut(token, "=")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		vars = append(vars, viz.Variable{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	return vars
}
