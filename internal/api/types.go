package api

// ClassifyRequest is the body of POST /api/classify.
type ClassifyRequest struct {
	Code string `json:"code"`
}

// ClassifyResponse reports the static analysis of a program.
type ClassifyResponse struct {
	Category          string   `json:"category"`
	MaxFrames         int      `json:"max_frames"`
	Structures        []string `json:"structures"`
	RecommendedFrames int      `json:"recommended_frames"`
	MaxLoopDepth      int      `json:"max_loop_depth"`
	HasRecursion      bool     `json:"has_recursion"`
}

// HealthResponse is the body of a successful health check.
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
