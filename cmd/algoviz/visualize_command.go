package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"algoviz/internal/fileutil"
	"algoviz/internal/viz"
)

func newVisualizeCommand(ctx *commandContext) *cobra.Command {
	var (
		inputFlag      string
		execOutputFlag string
		outputFlag     string
		tableFlag      bool
		timeoutFlag    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "visualize FILE",
		Short: "Generate a visualization for a program (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			req, err := buildRequest(cmd, args[0], inputFlag, execOutputFlag)
			if err != nil {
				return err
			}

			p, err := newPipeline(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer p.Close()

			runCtx, cancel := context.WithTimeout(cmd.Context(), requestTimeout(cfg, timeoutFlag))
			defer cancel()
			doc, err := p.service.Generate(runCtx, req)
			if err != nil {
				return err
			}

			if outputFlag != "" {
				if err := writeDocument(outputFlag, doc); err != nil {
					return err
				}
			}
			if tableFlag {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderDocument(doc, shouldColorize(out)))
				return nil
			}
			if outputFlag != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames to %s\n", doc.Metadata.TotalFrames, outputFlag)
				return nil
			}
			return writeJSON(cmd, doc)
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Input data passed to the program")
	cmd.Flags().StringVar(&execOutputFlag, "execution-output", "", "File holding the program's captured output")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the document JSON to this file")
	cmd.Flags().BoolVar(&tableFlag, "table", false, "Print a frame summary table instead of JSON")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Override server.request_timeout_seconds")
	return cmd
}

func writeDocument(path string, doc viz.Document) error {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
