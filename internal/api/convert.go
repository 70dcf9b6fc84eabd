package api

import "algoviz/internal/visualizer"

// FromPlan converts a generation plan into its classify payload.
func FromPlan(plan visualizer.Plan) ClassifyResponse {
	return ClassifyResponse{
		Category:          string(plan.Category),
		MaxFrames:         plan.Profile.MaxFrames,
		Structures:        plan.StructureNames(),
		RecommendedFrames: plan.RecommendedFrames,
		MaxLoopDepth:      plan.Complexity.MaxLoopDepth,
		HasRecursion:      plan.Complexity.HasRecursion,
	}
}
