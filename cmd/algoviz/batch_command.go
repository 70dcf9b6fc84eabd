package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"algoviz/internal/logging"
	"algoviz/internal/services"
	"algoviz/internal/visualizer"
)

const defaultBatchConcurrency = 2

type batchResult struct {
	Source     string        `json:"source"`
	Output     string        `json:"output,omitempty"`
	Category   string        `json:"category,omitempty"`
	Frames     int           `json:"frames"`
	Complexity string        `json:"complexity,omitempty"`
	Fallback   bool          `json:"fallback"`
	Duration   time.Duration `json:"duration_ns"`
	Error      string        `json:"error,omitempty"`
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		outDirFlag      string
		concurrencyFlag int
		extFlag         []string
		jsonFlag        bool
		timeoutFlag     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "batch PATH...",
		Short: "Visualize many programs concurrently",
		Long: "Visualize every source file named on the command line or found in the given " +
			"directories. Input data is read from a sibling FILE.input when present.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			sources, err := collectSources(args, extFlag)
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				return errors.New("no source files found")
			}
			if err := os.MkdirAll(outDirFlag, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			p, err := newPipeline(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer p.Close()

			results := make([]batchResult, len(sources))
			g, gctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(concurrencyFlag, 1))
			for i, source := range sources {
				g.Go(func() error {
					result := visualizeOne(gctx, cmd, p.service, source, outDirFlag, requestTimeout(cfg, timeoutFlag))
					results[i] = result
					return gctx.Err()
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" || r.Fallback {
					failed++
				}
			}
			logger.Info("batch complete",
				logging.String(logging.FieldEventType, "batch_complete"),
				logging.Int("sources", len(results)),
				logging.Int("failed", failed),
			)

			if jsonFlag {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderBatch(results))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d programs did not produce a visualization", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDirFlag, "out", "o", "visualizations", "Directory for the generated JSON documents")
	cmd.Flags().IntVarP(&concurrencyFlag, "concurrency", "j", defaultBatchConcurrency, "Programs processed in parallel")
	cmd.Flags().StringSliceVar(&extFlag, "ext", []string{".c", ".cpp", ".cc", ".java", ".py", ".js", ".ts", ".go"}, "Extensions picked up from directories")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Per-program timeout (default server.request_timeout_seconds)")
	return cmd
}

func visualizeOne(ctx context.Context, cmd *cobra.Command, svc *visualizer.Service, source, outDir string, timeout time.Duration) batchResult {
	result := batchResult{Source: source}
	start := time.Now()

	req, err := buildRequest(cmd, source, "", "")
	if err != nil {
		result.Error = err.Error()
		return result
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	runCtx = services.WithRequestID(runCtx, filepath.Base(source))

	doc, err := svc.Generate(runCtx, req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Category = doc.Metadata.Category
	result.Frames = doc.Metadata.TotalFrames
	result.Complexity = doc.Metadata.Complexity
	result.Fallback = doc.Metadata.IsFallback

	result.Output = filepath.Join(outDir, outputName(source))
	if err := writeDocument(result.Output, doc); err != nil {
		result.Error = err.Error()
		result.Output = ""
	}
	return result
}

// outputName keeps the source extension so a.cpp and a.py do not collide.
func outputName(source string) string {
	return filepath.Base(source) + ".json"
}

// collectSources expands directories (non-recursively) into matching files.
// Two sources that would write the same output file are rejected.
func collectSources(args, exts []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("inspect %q: %w", arg, err)
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read directory %q: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if slices.Contains(exts, strings.ToLower(filepath.Ext(entry.Name()))) {
				out = append(out, filepath.Join(arg, entry.Name()))
			}
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)

	owners := make(map[string]string, len(out))
	for _, source := range out {
		name := outputName(source)
		if prev, ok := owners[name]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s", prev, source, name)
		}
		owners[name] = source
	}
	return out, nil
}

func renderBatch(results []batchResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		switch {
		case r.Error != "":
			status = "error: " + r.Error
		case r.Fallback:
			status = "fallback"
		}
		rows = append(rows, []string{
			filepath.Base(r.Source),
			r.Category,
			strconv.Itoa(r.Frames),
			r.Complexity,
			r.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	return renderTable(
		[]string{"Source", "Category", "Frames", "Complexity", "Duration", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	)
}
