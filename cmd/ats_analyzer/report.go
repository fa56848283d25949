package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/report"
	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/types"
)

type reportOptions struct {
	result string
	out    string
}

func newReportCmd(a *app) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved JSON result as the text report",
		Long:  "Validate a JSON analysis result against the schema and render it as the plain-text report.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runReport(a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.result, "result", "", "Path to a JSON analysis result (required)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default stdout)")

	_ = cmd.MarkFlagRequired("result")

	return cmd
}

func runReport(a *app, opts *reportOptions) error {
	data, err := os.ReadFile(opts.result)
	if err != nil {
		return fmt.Errorf("failed to read result: %w", err)
	}

	if err := schemas.ValidateAnalysisResult(data); err != nil {
		return fmt.Errorf("%s: %w", opts.result, err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}

	var buf bytes.Buffer
	if err := report.WriteText(&buf, &result, a.now()); err != nil {
		return err
	}
	return a.writeOutput(opts.out, buf.Bytes())
}
