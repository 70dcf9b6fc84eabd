package prompt_test

import (
	"strings"
	"testing"

	"algoviz/internal/analysis"
	"algoviz/internal/prompt"
	"algoviz/internal/viz"
)

const bubble = `void bubble(int a[], int n) {
  for (int i = 0; i < n; i++)
    for (int j = 0; j < n - i - 1; j++)
      if (a[j] > a[j+1]) swap(a[j], a[j+1]);
}`

func baseInput() prompt.Input {
	return prompt.Input{
		Code:              bubble,
		InputData:         "5 2 8 1",
		Structures:        []viz.PanelKind{viz.KindArray},
		Category:          analysis.Sorting,
		RecommendedFrames: 20,
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first := prompt.Build(baseInput())
	for range 3 {
		if again := prompt.Build(baseInput()); again != first {
			t.Fatal("Build returned different output for identical input")
		}
	}
}

func TestBuildSectionOrder(t *testing.T) {
	out := prompt.Build(baseInput())
	markers := []string{
		"FRAME|frameId|dataStructureType|data|variables|lineNumber|description",
		"ARRAY FORMAT:",
		"EXAMPLES:",
		"CODE (with line numbers):\n1: void bubble(int a[], int n) {",
		"INPUT: 5 2 8 1",
		"COMPLETION REQUIREMENTS:",
		"CATEGORY: SORTING",
		"FOCUS: Show EVERY comparison and swap.",
	}
	last := -1
	for _, marker := range markers {
		idx := strings.Index(out, marker)
		if idx < 0 {
			t.Fatalf("prompt missing %q", marker)
		}
		if idx <= last {
			t.Fatalf("marker %q out of order", marker)
		}
		last = idx
	}
	if !strings.Contains(out, "Aim for about 20 frames; use up to 80") {
		t.Fatal("expected frame budget in footer")
	}
}

func TestBuildAppendsOnlyDetectedGuides(t *testing.T) {
	out := prompt.Build(baseInput())
	if strings.Contains(out, "QUEUE FORMAT:") || strings.Contains(out, "TREE FORMAT:") {
		t.Fatal("guides for undetected structures must be omitted")
	}

	in := baseInput()
	in.Structures = []viz.PanelKind{viz.KindQueue, viz.KindStack}
	out = prompt.Build(in)
	stack := strings.Index(out, "STACK FORMAT:")
	queue := strings.Index(out, "QUEUE FORMAT:")
	if stack < 0 || queue < 0 || stack > queue {
		t.Fatalf("expected stack then queue guides, got %d %d", stack, queue)
	}
}

func TestBuildExecutionOutputAndDefaults(t *testing.T) {
	in := baseInput()
	in.InputData = "  "
	in.ExecutionOutput = "1 2 5 8"
	out := prompt.Build(in)
	if !strings.Contains(out, "INPUT: No input") {
		t.Fatal("expected placeholder for blank input")
	}
	if !strings.Contains(out, "ACTUAL PROGRAM OUTPUT (the trace must be consistent with it):\n1 2 5 8") {
		t.Fatal("expected execution output block")
	}
	if strings.Contains(prompt.Build(baseInput()), "ACTUAL PROGRAM OUTPUT") {
		t.Fatal("execution output block must be omitted when empty")
	}
}

func TestNumberLines(t *testing.T) {
	got := prompt.NumberLines("a\r\nb\n\n")
	if got != "1: a\n2: b" {
		t.Fatalf("NumberLines = %q", got)
	}
	if n := len(prompt.SourceLines("")); n != 0 {
		t.Fatalf("expected no lines, got %d", n)
	}
}

func TestBuildContinuation(t *testing.T) {
	out := prompt.BuildContinuation(bubble, "FRAME|4|array|2,5,1,8|i=1|4|Compare", 5, analysis.Sorting)
	for _, want := range []string{
		"LAST FRAME WAS:\nFRAME|4|array|2,5,1,8|i=1|4|Compare",
		"Generate 10-15 MORE frames",
		"FULLY SORTED",
		"Start from frame 5.",
		"4:       if (a[j] > a[j+1]) swap(a[j], a[j+1]);",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("continuation prompt missing %q", want)
		}
	}
}
