package analysis_test

import (
	"testing"

	"algoviz/internal/analysis"
)

func TestAnalyzeComplexity(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		depth     int
		recursion bool
		frames    int
	}{
		{
			name:   "single loop",
			code:   "for (int i = 0; i < n; i++) {\n  sum += a[i];\n}",
			depth:  1,
			frames: analysis.FramesLow,
		},
		{
			name: "bubble sort",
			code: `void bubble(int a[], int n) {
  for (int i = 0; i < n; i++) {
    for (int j = 0; j < n - i - 1; j++) {
      if (a[j] > a[j+1]) swap(a[j], a[j+1]);
    }
  }
}`,
			depth:  2,
			frames: analysis.FramesMedium,
		},
		{
			name: "recursive",
			code: `int fact(int n) {
  if (n <= 1) { return 1; }
  return n * fact(n - 1);
}`,
			recursion: true,
			frames:    analysis.FramesHigh,
		},
		{
			name: "if blocks are not recursion",
			code: `int f(int x) {
  if (x > 0) { x--; }
  if (x < 0) { x++; }
  return x;
}`,
			frames: analysis.FramesLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analysis.AnalyzeComplexity(tt.code)
			if got.MaxLoopDepth != tt.depth {
				t.Fatalf("depth = %d, want %d", got.MaxLoopDepth, tt.depth)
			}
			if got.HasRecursion != tt.recursion {
				t.Fatalf("recursion = %v, want %v", got.HasRecursion, tt.recursion)
			}
			if frames := got.RecommendedFrames(); frames != tt.frames {
				t.Fatalf("frames = %d, want %d", frames, tt.frames)
			}
		})
	}
}
