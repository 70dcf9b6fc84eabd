package viz

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// HighlightType tags how a mapped line affected the frame.
type HighlightType string

const (
	HighlightComparison   HighlightType = "comparison"
	HighlightModification HighlightType = "modification"
	HighlightAssignment   HighlightType = "assignment"
	HighlightCondition    HighlightType = "condition"
	HighlightDefault      HighlightType = "default"
)

const maxSnippetRunes = 60

// LineSync ties frames to 1-indexed source lines.
type LineSync struct {
	SetupLines         []int          `json:"setup_lines"`
	FrameMappings      []FrameMapping `json:"frame_mappings"`
	NonVisualizedLines []int          `json:"non_visualized_lines"`
}

// MarshalJSON emits empty lists instead of null.
func (l LineSync) MarshalJSON() ([]byte, error) {
	type alias LineSync
	out := alias(l)
	out.SetupLines = nonNil(out.SetupLines)
	out.FrameMappings = nonNil(out.FrameMappings)
	out.NonVisualizedLines = nonNil(out.NonVisualizedLines)
	return json.Marshal(out)
}

type FrameMapping struct {
	FrameID       int           `json:"frame_id"`
	LineNumbers   []int         `json:"line_numbers"`
	CodeSnippet   string        `json:"code_snippet"`
	Explanation   string        `json:"explanation"`
	HighlightType HighlightType `json:"highlight_type"`
}

// MarshalJSON emits an empty line list instead of null.
func (m FrameMapping) MarshalJSON() ([]byte, error) {
	type alias FrameMapping
	out := alias(m)
	out.LineNumbers = nonNil(out.LineNumbers)
	if out.HighlightType == "" {
		out.HighlightType = HighlightDefault
	}
	return json.Marshal(out)
}

// LineRangeViolation records one line reference dropped by SanitizeLines.
type LineRangeViolation struct {
	FrameID int
	Line    int
}

// SanitizeLines drops every line reference outside [1, totalLines]. A mapping
// is removed only when none of its lines survive; frames are always kept.
func (d *Document) SanitizeLines(totalLines int) []LineRangeViolation {
	var violations []LineRangeViolation
	inRange := func(frameID int) func(int) bool {
		return func(line int) bool {
			if line >= 1 && line <= totalLines {
				return false
			}
			violations = append(violations, LineRangeViolation{FrameID: frameID, Line: line})
			return true
		}
	}
	d.LineSync.SetupLines = slices.DeleteFunc(d.LineSync.SetupLines, inRange(-1))
	d.LineSync.NonVisualizedLines = slices.DeleteFunc(d.LineSync.NonVisualizedLines, inRange(-1))
	for i := range d.LineSync.FrameMappings {
		mapping := &d.LineSync.FrameMappings[i]
		mapping.LineNumbers = slices.DeleteFunc(mapping.LineNumbers, inRange(mapping.FrameID))
	}
	d.LineSync.FrameMappings = slices.DeleteFunc(d.LineSync.FrameMappings, func(m FrameMapping) bool {
		return len(m.LineNumbers) == 0
	})
	return violations
}

// EnrichLineSync fills placeholder snippets from the source and infers a
// highlight type for mappings left at the default.
func (d *Document) EnrichLineSync(source []string) {
	for i := range d.LineSync.FrameMappings {
		mapping := &d.LineSync.FrameMappings[i]
		if len(mapping.LineNumbers) > 0 && isPlaceholderSnippet(mapping.CodeSnippet) {
			mapping.CodeSnippet = Snippet(source, mapping.LineNumbers[0])
		}
		if mapping.HighlightType == "" || mapping.HighlightType == HighlightDefault {
			mapping.HighlightType = InferHighlight(mapping.Explanation)
		}
	}
}

// DefaultSetupLines returns lines 1 and 2 clipped to the source length.
func DefaultSetupLines(totalLines int) []int {
	out := make([]int, 0, 2)
	for line := 1; line <= 2 && line <= totalLines; line++ {
		out = append(out, line)
	}
	return out
}

// Snippet returns the trimmed source line, or "Line N" when it is missing,
// blank, or too long to show inline.
func Snippet(source []string, line int) string {
	placeholder := "Line " + strconv.Itoa(line)
	if line < 1 || line > len(source) {
		return placeholder
	}
	text := strings.TrimSpace(source[line-1])
	if text == "" || utf8.RuneCountInString(text) > maxSnippetRunes {
		return placeholder
	}
	return text
}

func isPlaceholderSnippet(snippet string) bool {
	snippet = strings.TrimSpace(snippet)
	if snippet == "" {
		return true
	}
	rest, ok := strings.CutPrefix(snippet, "Line ")
	if !ok {
		return false
	}
	_, err := strconv.Atoi(rest)
	return err == nil
}

var highlightKeywords = []struct {
	kind  HighlightType
	words []string
}{
	{HighlightComparison, []string{"compar", "found", "match", "less than", "greater than"}},
	{HighlightModification, []string{"swap", "insert", "delet", "remov", "move", "push", "pop", "enqueue", "dequeue", "updat", "merg", "partition", "link"}},
	{HighlightAssignment, []string{"assign", "init", "set ", "store", "creat"}},
	{HighlightCondition, []string{"check", "condition", "if ", "while", "loop", "terminat"}},
}

// InferHighlight guesses a highlight type from a frame description.
func InferHighlight(description string) HighlightType {
	lower := strings.ToLower(description)
	for _, entry := range highlightKeywords {
		for _, word := range entry.words {
			if strings.Contains(lower, word) {
				return entry.kind
			}
		}
	}
	return HighlightDefault
}
