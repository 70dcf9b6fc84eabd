// Package prompt assembles the instructions sent to the model. Building is
// pure: identical inputs always produce an identical string, which the
// response cache relies on.
package prompt

import (
	"fmt"
	"strings"

	"algoviz/internal/analysis"
	"algoviz/internal/viz"
)

// Input carries everything a generation prompt depends on.
type Input struct {
	Code              string
	InputData         string
	ExecutionOutput   string
	Structures        []viz.PanelKind
	Category          analysis.Category
	RecommendedFrames int
}

// Build composes preamble, structure guides, worked examples, the numbered
// source with its input and the category focus footer, in that order.
func Build(in Input) string {
	var b strings.Builder
	b.WriteString(preamble)

	b.WriteString("\n\nDATA STRUCTURES DETECTED: ")
	b.WriteString(structureList(in.Structures))
	for _, kind := range viz.PanelKinds {
		if !containsKind(in.Structures, kind) {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(guides[kind])
	}

	b.WriteString("\n\n")
	b.WriteString(examples)

	b.WriteString("\n\nCODE (with line numbers):\n")
	b.WriteString(NumberLines(in.Code))
	b.WriteString("\n\nINPUT: ")
	b.WriteString(orDefault(in.InputData, "No input"))
	if output := strings.TrimSpace(in.ExecutionOutput); output != "" {
		b.WriteString("\n\nACTUAL PROGRAM OUTPUT (the trace must be consistent with it):\n")
		b.WriteString(output)
	}

	b.WriteString("\n\n")
	b.WriteString(completionRules)
	b.WriteString("\n\n")
	b.WriteString(footer(in.Category, in.RecommendedFrames))
	return b.String()
}

func footer(category analysis.Category, recommended int) string {
	profile, ok := analysis.ProfileFor(category)
	if !ok {
		profile, _ = analysis.ProfileFor(analysis.DefaultCategory)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CATEGORY: %s\n", strings.ToUpper(string(category)))
	fmt.Fprintf(&b, "FOCUS: %s\n", profile.Focus)
	if recommended > 0 {
		fmt.Fprintf(&b, "Aim for about %d frames; use up to %d if the algorithm needs them to finish.\n", min(recommended, profile.MaxFrames), profile.MaxFrames)
	} else {
		fmt.Fprintf(&b, "Use up to %d frames.\n", profile.MaxFrames)
	}
	b.WriteString("Show COMPLETE algorithm execution from start to FINAL STATE.\n")
	b.WriteString("Return ONLY the FRAME lines, nothing else.")
	return b.String()
}

// NumberLines prefixes each source line with its 1-indexed number.
func NumberLines(code string) string {
	lines := SourceLines(code)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s", i+1, line)
	}
	return b.String()
}

// SourceLines splits code the way line numbers are assigned in prompts.
// Trailing blank lines are not counted.
func SourceLines(code string) []string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.TrimRight(code, "\n\t ")
	if code == "" {
		return nil
	}
	return strings.Split(code, "\n")
}

func structureList(kinds []viz.PanelKind) string {
	if len(kinds) == 0 {
		return string(viz.KindArray)
	}
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}

func containsKind(kinds []viz.PanelKind, kind viz.PanelKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
