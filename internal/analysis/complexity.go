package analysis

import (
	"regexp"
	"strings"
)

// Recommended frame counts used to size a generation request.
const (
	FramesLow    = 15
	FramesMedium = 20
	FramesHigh   = 25
)

var (
	loopPattern     = regexp.MustCompile(`\b(for|while)\s*\(`)
	functionPattern = regexp.MustCompile(`(\w+)\s*\([^)]*\)\s*\{`)
	controlWords    = map[string]bool{"if": true, "for": true, "while": true, "switch": true, "catch": true}
)

// Complexity summarizes the static shape of a snippet.
type Complexity struct {
	MaxLoopDepth int
	HasRecursion bool
	LinesOfCode  int
}

// AnalyzeComplexity estimates loop nesting and self recursion. Loop depth
// rises on a for/while header and falls on any line holding a closing brace;
// this is a heuristic over text, not a parse.
func AnalyzeComplexity(code string) Complexity {
	var c Complexity
	depth := 0
	for _, line := range strings.Split(code, "\n") {
		if loopPattern.MatchString(line) {
			depth++
			c.MaxLoopDepth = max(c.MaxLoopDepth, depth)
		}
		if strings.Contains(line, "}") {
			depth = max(0, depth-1)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
			c.LinesOfCode++
		}
	}
	c.HasRecursion = hasSelfCall(code)
	return c
}

func hasSelfCall(code string) bool {
	for _, loc := range functionPattern.FindAllStringSubmatchIndex(code, -1) {
		name := code[loc[2]:loc[3]]
		if controlWords[name] {
			continue
		}
		call := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
		if call.MatchString(code[loc[1]:]) {
			return true
		}
	}
	return false
}

// RecommendedFrames maps complexity onto a frame target.
func (c Complexity) RecommendedFrames() int {
	switch {
	case c.MaxLoopDepth >= 3 || c.HasRecursion:
		return FramesHigh
	case c.MaxLoopDepth == 2:
		return FramesMedium
	default:
		return FramesLow
	}
}
