package visualizer

import (
	"fmt"
	"strings"

	"algoviz/internal/analysis"
	"algoviz/internal/prompt"
	"algoviz/internal/services"
	"algoviz/internal/viz"
)

// Request is one inbound visualization request.
type Request struct {
	Code            string `json:"code"`
	InputData       string `json:"inputData"`
	ExecutionOutput string `json:"executionOutput,omitempty"`
}

// Plan captures everything decided before the first model call.
type Plan struct {
	Category          analysis.Category
	Profile           analysis.Profile
	Structures        []viz.PanelKind
	Complexity        analysis.Complexity
	RecommendedFrames int
	SourceLines       []string
	Prompt            string
	MaxOutputTokens   int
}

const (
	tokensPerFrame  = 96
	minOutputTokens = 2048
)

// Plan validates req and derives the category, structures, frame target and
// prompt. It performs no I/O.
func (s *Service) Plan(req Request) (Plan, error) {
	if strings.TrimSpace(req.Code) == "" {
		return Plan{}, services.Wrap(services.ErrInput, "visualize", "validate", "code is required", nil)
	}
	lines := prompt.SourceLines(req.Code)
	if limit := s.opts.MaxCodeLines; limit > 0 && len(lines) > limit {
		return Plan{}, services.Wrap(services.ErrInput, "visualize", "validate",
			fmt.Sprintf("code has %d lines, limit is %d", len(lines), limit), nil)
	}

	category := analysis.Classify(req.Code)
	profile, ok := analysis.ProfileFor(category)
	if !ok {
		profile, _ = analysis.ProfileFor(analysis.DefaultCategory)
	}
	structures := analysis.DetectStructures(req.Code)
	complexity := analysis.AnalyzeComplexity(req.Code)
	recommended := complexity.RecommendedFrames()

	return Plan{
		Category:          category,
		Profile:           profile,
		Structures:        structures,
		Complexity:        complexity,
		RecommendedFrames: recommended,
		SourceLines:       lines,
		Prompt: prompt.Build(prompt.Input{
			Code:              req.Code,
			InputData:         req.InputData,
			ExecutionOutput:   req.ExecutionOutput,
			Structures:        structures,
			Category:          category,
			RecommendedFrames: recommended,
		}),
		MaxOutputTokens: outputBudget(profile.MaxFrames, s.opts.MaxOutputTokens),
	}, nil
}

// outputBudget sizes the token ceiling from the category's frame budget.
func outputBudget(maxFrames, ceiling int) int {
	if ceiling <= 0 {
		ceiling = DefaultMaxOutputTokens
	}
	budget := maxFrames * tokensPerFrame
	return min(max(budget, min(minOutputTokens, ceiling)), ceiling)
}

// StructureNames returns the detected structures as strings.
func (p Plan) StructureNames() []string {
	names := make([]string, len(p.Structures))
	for i, kind := range p.Structures {
		names[i] = string(kind)
	}
	return names
}
