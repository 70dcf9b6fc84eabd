package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"algoviz/internal/analysis"
	"algoviz/internal/api"
	"algoviz/internal/prompt"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "classify FILE",
		Short: "Show the category, structures and frame budget for a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			req, err := buildRequest(cmd, args[0], "", "")
			if err != nil {
				return err
			}
			plan, err := planner(cfg).Plan(req)
			if err != nil {
				return err
			}
			resp := api.FromPlan(plan)
			if jsonFlag {
				return writeJSON(cmd, resp)
			}
			rows := [][]string{
				{"Category", resp.Category},
				{"Max frames", strconv.Itoa(resp.MaxFrames)},
				{"Recommended frames", strconv.Itoa(resp.RecommendedFrames)},
				{"Structures", strings.Join(resp.Structures, ", ")},
				{"Loop depth", strconv.Itoa(resp.MaxLoopDepth)},
				{"Recursion", yesNo(resp.HasRecursion)},
				{"Source lines", strconv.Itoa(len(plan.SourceLines))},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Property", "Value"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print JSON instead of a table")
	cmd.AddCommand(newCategoriesCommand())
	return cmd
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "categories",
		Short:       "List the supported categories in priority order",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := analysis.Profiles()
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				rows = append(rows, []string{string(p.Category), strconv.Itoa(p.MaxFrames), strings.Join(p.Keywords, ", ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Category", "Max frames", "Keywords"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newPromptCommand(ctx *commandContext) *cobra.Command {
	var (
		inputFlag  string
		systemFlag bool
	)

	cmd := &cobra.Command{
		Use:   "prompt FILE",
		Short: "Print the exact prompt sent to the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			req, err := buildRequest(cmd, args[0], inputFlag, "")
			if err != nil {
				return err
			}
			plan, err := planner(cfg).Plan(req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if systemFlag {
				fmt.Fprintln(out, prompt.SystemPrompt)
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, plan.Prompt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Input data passed to the program")
	cmd.Flags().BoolVar(&systemFlag, "system", false, "Also print the system prompt")
	return cmd
}
