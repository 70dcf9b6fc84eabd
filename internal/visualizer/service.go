package visualizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"algoviz/internal/analysis"
	"algoviz/internal/cache"
	"algoviz/internal/frameparse"
	"algoviz/internal/logging"
	"algoviz/internal/prompt"
	"algoviz/internal/repair"
	"algoviz/internal/services"
	"algoviz/internal/services/llm"
	"algoviz/internal/viz"
)

// Defaults applied when Options leaves a field zero. BaseDelay is the
// exception: zero runs retries back to back, and DefaultBaseDelay is the value
// the config layer ships.
const (
	DefaultMaxAttempts              = 3
	DefaultBaseDelay                = 2 * time.Second
	DefaultMaxDelay                 = 10 * time.Second
	DefaultMaxOutputTokens          = 8192
	DefaultContinuationOutputTokens = 2048
	DefaultMaxCodeLines             = 100
)

// Options tunes a Service.
type Options struct {
	// Provider names the generator backend; it only feeds the cache key.
	Provider                 string
	MaxAttempts              int
	// BaseDelay seeds the retry backoff. Zero disables the wait.
	BaseDelay                time.Duration
	MaxDelay                 time.Duration
	Continuation             bool
	MaxOutputTokens          int
	ContinuationOutputTokens int
	TopP                     float64
	TopK                     int
	MaxCodeLines             int
}

// ResponseCache stores raw model output keyed by prompt.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, provider, model, response string) error
}

// Option customizes a Service.
type Option func(*Service)

// WithCache enables response caching.
func WithCache(c ResponseCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithSleeper replaces the backoff wait (tests).
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(s *Service) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// Service runs the generation pipeline. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	gen    llm.Generator
	opts   Options
	cache  ResponseCache
	logger *slog.Logger
	sleep  func(context.Context, time.Duration) error
}

// New constructs a Service around gen.
func New(gen llm.Generator, opts Options, logger *slog.Logger, extra ...Option) *Service {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.BaseDelay < 0 {
		opts.BaseDelay = 0
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = DefaultMaxDelay
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if opts.ContinuationOutputTokens <= 0 {
		opts.ContinuationOutputTokens = DefaultContinuationOutputTokens
	}
	if opts.MaxCodeLines == 0 {
		opts.MaxCodeLines = DefaultMaxCodeLines
	}
	s := &Service{
		gen:    gen,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "visualizer"),
		sleep:  sleepContext,
	}
	for _, opt := range extra {
		opt(s)
	}
	return s
}

// Model reports the generator's model identifier.
func (s *Service) Model() string { return s.gen.Model() }

// HealthCheck performs a trivial model round trip.
func (s *Service) HealthCheck(ctx context.Context) error {
	if checker, ok := s.gen.(llm.HealthChecker); ok {
		return checker.HealthCheck(ctx)
	}
	return llm.Ping(ctx, s.gen)
}

type outcomeKind int

const (
	outcomeOK outcomeKind = iota
	outcomeRetryable
	outcomeFatal
)

type outcome struct {
	kind outcomeKind
	doc  viz.Document
	err  error
}

// Generate produces a visualization for req. Input errors carry
// services.ErrInput and caller cancellation services.ErrTimeout; every other
// failure yields a fallback document with a nil error.
func (s *Service) Generate(ctx context.Context, req Request) (viz.Document, error) {
	plan, err := s.Plan(req)
	if err != nil {
		return viz.Document{}, err
	}
	ctx = services.WithCategory(ctx, string(plan.Category))
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("request classified",
		logging.String(logging.FieldEventType, "classified"),
		logging.Any("structures", plan.StructureNames()),
		logging.Int("recommended_frames", plan.RecommendedFrames),
		logging.Int("max_frames", plan.Profile.MaxFrames),
		logging.Int("max_loop_depth", plan.Complexity.MaxLoopDepth),
		logging.Bool("recursion", plan.Complexity.HasRecursion),
		logging.Int("source_lines", len(plan.SourceLines)),
	)

	var last error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return viz.Document{}, timeoutError(err)
		}
		attemptCtx := services.WithAttempt(ctx, attempt)
		result := s.attempt(attemptCtx, plan, attempt == 1)
		attemptLogger := logging.WithContext(attemptCtx, s.logger)

		switch result.kind {
		case outcomeOK:
			doc, err := s.complete(attemptCtx, plan, result.doc)
			if err != nil {
				return viz.Document{}, err
			}
			attemptLogger.Info("visualization generated",
				logging.String(logging.FieldEventType, "generation_complete"),
				logging.Int("frames", doc.Metadata.TotalFrames),
				logging.String("complexity", doc.Metadata.Complexity),
			)
			return doc, nil
		case outcomeFatal:
			if errors.Is(result.err, services.ErrTimeout) {
				return viz.Document{}, result.err
			}
			last = result.err
			logging.ErrorWithContext(attemptLogger, "generation failed permanently", "generation_fatal",
				logging.Error(result.err),
				logging.String(logging.FieldErrorHint, "check llm configuration and credentials"),
			)
			return s.fallback(attemptLogger, plan, last), nil
		}

		last = result.err
		logging.WarnWithContext(attemptLogger, "generation attempt failed", "generation_retry",
			logging.Error(result.err),
			logging.Int("max_attempts", s.opts.MaxAttempts),
			logging.String(logging.FieldImpact, "request will be retried"),
			logging.String(logging.FieldErrorHint, "inspect raw model output at debug level"),
		)
		if attempt == s.opts.MaxAttempts {
			break
		}
		delay := backoff(attempt, s.opts.BaseDelay, s.opts.MaxDelay)
		attemptLogger.Debug("backing off", logging.Duration("delay", delay))
		if err := s.sleep(ctx, delay); err != nil {
			return viz.Document{}, timeoutError(err)
		}
	}
	return s.fallback(logger, plan, last), nil
}

// attempt runs one generate-and-parse cycle.
func (s *Service) attempt(ctx context.Context, plan Plan, useCache bool) outcome {
	logger := logging.WithContext(ctx, s.logger)
	key := cache.Key(s.opts.Provider, s.gen.Model(), prompt.SystemPrompt, plan.Prompt)

	if useCache && s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			logging.WarnWithContext(logger, "cache lookup failed", "cache_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "request goes to the model"),
			)
		case ok:
			doc, parseErr := s.parse(logger, raw, len(plan.SourceLines))
			if parseErr == nil {
				logger.Info("cache hit", logging.String(logging.FieldEventType, "cache_hit"))
				return outcome{kind: outcomeOK, doc: doc}
			}
			logger.Debug("cached response no longer parses", logging.Error(parseErr))
		default:
			logger.Debug("cache miss", logging.String(logging.FieldEventType, "cache_miss"))
		}
	}

	raw, err := s.gen.Generate(ctx, llm.Request{
		SystemPrompt: prompt.SystemPrompt,
		Prompt:       plan.Prompt,
		Config:       s.generationConfig(plan.MaxOutputTokens),
	})
	if err != nil {
		return classify(ctx, err)
	}
	logger.Debug("model response received", logging.Int("bytes", len(raw)), logging.String("snippet", repair.Snippet(raw)))

	doc, err := s.parse(logger, raw, len(plan.SourceLines))
	if err != nil {
		return outcome{kind: outcomeRetryable, err: err}
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, key, s.opts.Provider, s.gen.Model(), raw); err != nil {
			logging.WarnWithContext(logger, "cache store failed", "cache_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "response not cached"),
			)
		}
	}
	return outcome{kind: outcomeOK, doc: doc}
}

func classify(ctx context.Context, err error) outcome {
	if ctx.Err() != nil {
		return outcome{kind: outcomeFatal, err: timeoutError(ctx.Err())}
	}
	if errors.Is(err, services.ErrTimeout) {
		return outcome{kind: outcomeFatal, err: err}
	}
	if !services.Retryable(err) {
		return outcome{kind: outcomeFatal, err: err}
	}
	return outcome{kind: outcomeRetryable, err: err}
}

// parse interprets raw model text. The micro-format wins when FRAME lines are
// present; otherwise text holding a JSON object goes through repair.
func (s *Service) parse(logger *slog.Logger, raw string, sourceLines int) (viz.Document, error) {
	switch {
	case frameparse.HasFrameLines(raw):
		result, err := frameparse.Parse(raw, sourceLines)
		for _, lineErr := range result.LineErrors {
			logger.Debug("skipped malformed frame line",
				logging.Int("line", lineErr.Line),
				logging.String("text", repair.Snippet(lineErr.Text)),
				logging.Error(lineErr.Err),
			)
		}
		if n := len(result.LineErrors); n > 0 {
			logging.WarnWithContext(logger, "malformed frame lines skipped", "frame_parse",
				logging.Int("skipped", n),
				logging.String(logging.FieldImpact, "trace may miss steps"),
			)
		}
		if result.Dropped > 0 {
			logger.Info("blank frames dropped", logging.Int("dropped", result.Dropped))
		}
		if err != nil {
			return viz.Document{}, services.Wrap(services.ErrValidation, "parse", "pipe", "", err)
		}
		return result.Document, nil
	case strings.Contains(raw, "{"):
		doc, stage, err := repair.DecodeDocument(raw)
		if err != nil {
			return viz.Document{}, err
		}
		if stage != repair.StageDirect {
			logger.Info("json response repaired",
				logging.String(logging.FieldEventType, "json_repair"),
				logging.String("repair_stage", stage.String()),
			)
		}
		return doc, nil
	default:
		return viz.Document{}, services.Wrap(services.ErrValidation, "parse", "detect",
			"response has no FRAME lines or JSON object", nil)
	}
}

// complete runs the optional continuation and the final document passes.
func (s *Service) complete(ctx context.Context, plan Plan, doc viz.Document) (viz.Document, error) {
	logger := logging.WithContext(ctx, s.logger)
	if !analysis.IsComplete(plan.Category, doc.Frames()) {
		if !s.opts.Continuation {
			logger.Info("trace looks incomplete; continuation disabled",
				logging.Int("frames", len(doc.Frames())))
		} else if err := s.continueTrace(ctx, plan, &doc); err != nil {
			return viz.Document{}, err
		}
	}

	if err := lineRangeError(doc.SanitizeLines(len(plan.SourceLines)), len(plan.SourceLines)); err != nil {
		logging.WarnWithContext(logger, "out-of-range line numbers dropped", "line_range",
			logging.Error(err),
			logging.String(logging.FieldImpact, "some frames have no source highlight"),
		)
	}
	doc.EnrichLineSync(plan.SourceLines)
	doc.Metadata.Category = string(plan.Category)
	return doc, nil
}

// continueTrace asks once for more frames and appends whatever parses.
// Failures keep the original trace; only cancellation is returned.
func (s *Service) continueTrace(ctx context.Context, plan Plan, doc *viz.Document) error {
	logger := logging.WithContext(services.WithStage(ctx, "continuation"), s.logger)
	frames := doc.Frames()
	last := frames[len(frames)-1]
	lastText := frameparse.Format(last, lastLine(*doc, last.FrameID))
	logger.Info("trace incomplete; requesting continuation",
		logging.String(logging.FieldEventType, "continuation_request"),
		logging.Int("frames", len(frames)),
	)

	raw, err := s.gen.Generate(ctx, llm.Request{
		SystemPrompt: prompt.SystemPrompt,
		Prompt:       prompt.BuildContinuation(strings.Join(plan.SourceLines, "\n"), lastText, len(frames), plan.Category),
		Config:       s.generationConfig(s.opts.ContinuationOutputTokens),
	})
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, services.ErrTimeout) {
			return timeoutError(err)
		}
		logging.WarnWithContext(logger, "continuation request failed", "continuation_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "returning partial trace"),
		)
		return nil
	}

	result, err := frameparse.Parse(raw, len(plan.SourceLines))
	if err != nil {
		logging.WarnWithContext(logger, "continuation response unusable", "continuation_failed",
			logging.Error(err),
			logging.Int("skipped", len(result.LineErrors)),
			logging.String(logging.FieldImpact, "returning partial trace"),
		)
		return nil
	}
	doc.Append(result.Document.Frames(), result.Document.LineSync.FrameMappings)
	doc.Finalize()
	logger.Info("continuation merged",
		logging.String(logging.FieldEventType, "continuation_merged"),
		logging.Int("added", len(result.Document.Frames())),
		logging.Int("frames", len(doc.Frames())),
		logging.Bool("complete", analysis.IsComplete(plan.Category, doc.Frames())),
	)
	return nil
}

// lineRangeError summarizes the references SanitizeLines dropped, or nil.
func lineRangeError(violations []viz.LineRangeViolation, totalLines int) error {
	if len(violations) == 0 {
		return nil
	}
	first := violations[0]
	return services.Wrap(services.ErrLineRange, "sanitize", "linesync",
		fmt.Sprintf("%d reference(s) outside 1..%d, first frame %d line %d", len(violations), totalLines, first.FrameID, first.Line), nil)
}

func lastLine(doc viz.Document, frameID int) int {
	for _, mapping := range doc.LineSync.FrameMappings {
		if mapping.FrameID == frameID && len(mapping.LineNumbers) > 0 {
			return mapping.LineNumbers[0]
		}
	}
	return 1
}

func (s *Service) generationConfig(maxTokens int) llm.GenerationConfig {
	return llm.GenerationConfig{
		Temperature:     0,
		TopP:            s.opts.TopP,
		TopK:            s.opts.TopK,
		MaxOutputTokens: maxTokens,
	}
}

func (s *Service) fallback(logger *slog.Logger, plan Plan, cause error) viz.Document {
	reason := "unknown error"
	if cause != nil {
		reason = cause.Error()
	}
	logging.ErrorWithContext(logger, "returning fallback visualization", "fallback",
		logging.String("reason", reason),
		logging.Int("max_attempts", s.opts.MaxAttempts),
		logging.String(logging.FieldErrorHint, "run `algoviz health` to verify the model connection"),
	)
	doc := viz.Fallback(reason)
	doc.Metadata.Category = string(plan.Category)
	return doc
}

func timeoutError(err error) error {
	if errors.Is(err, services.ErrTimeout) {
		return err
	}
	return services.Wrap(services.ErrTimeout, "visualize", "generate", "request aborted", err)
}
