package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/analysis"
	"github.com/jonathan/ats-analyzer/internal/observability"
	"github.com/jonathan/ats-analyzer/internal/report"
	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/types"
)

type batchOptions struct {
	job         string
	resumes     []string
	concurrency int
	format      string
	out         string
	verbose     bool
}

func newBatchCmd(a *app) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Rank several résumés against one job description",
		Example: `  ats_analyzer batch --job job.txt --resume alice.pdf --resume bob.docx
  ats_analyzer batch --job job.txt --resume 'resumes/*.pdf' --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Job description source")
	cmd.Flags().StringArrayVarP(&opts.resumes, "resume", "r", nil, "Résumé source; repeat for each résumé, local globs are expanded (required)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 0, "Résumés analysed in parallel (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text or json")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the ranking summary to stderr")

	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func runBatch(cmd *cobra.Command, a *app, opts *batchOptions) error {
	ctx := cmd.Context()

	jobSrc := a.jobSource(opts.job)
	if jobSrc == "" {
		return fmt.Errorf("a job description is required: use --job or set job/job_url in the config")
	}

	format, err := a.outputFormat(opts.format)
	if err != nil {
		return err
	}

	concurrency := opts.concurrency
	if concurrency <= 0 {
		concurrency = a.cfg.Concurrency
	}

	sources, err := expandSources(opts.resumes)
	if err != nil {
		return err
	}

	jobText, err := a.load(ctx, jobSrc)
	if err != nil {
		return err
	}

	docs := make([]types.Document, 0, len(sources))
	for _, source := range sources {
		text, err := a.load(ctx, source)
		if err != nil {
			return err
		}
		docs = append(docs, types.Document{Name: displayName(source), Text: text})
	}

	req := types.BatchRequest{JobDescription: jobText, Resumes: docs}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ranked, err := analysis.AnalyzeBatch(ctx, jobText, docs, concurrency)
	if err != nil {
		return err
	}
	a.log.Info("batch complete", zap.Int("resumes", len(ranked)), zap.Int("concurrency", concurrency))

	var buf bytes.Buffer
	if err := report.WriteRanking(&buf, format, ranked, a.now()); err != nil {
		return err
	}
	if format == report.FormatJSON {
		if err := schemas.ValidateBatchResult(buf.Bytes()); err != nil {
			return fmt.Errorf("generated ranking failed schema validation: %w", err)
		}
	}

	if err := a.writeOutput(opts.out, buf.Bytes()); err != nil {
		return err
	}

	if opts.verbose || a.cfg.Verbose {
		observability.NewPrinter(a.stderr).PrintRanking(ranked)
	}
	return nil
}

// expandSources expands glob patterns in local sources. Patterns that match
// nothing are an error; remote sources pass through unchanged.
func expandSources(sources []string) ([]string, error) {
	var expanded []string
	for _, source := range sources {
		if isRemote(source) || !strings.ContainsAny(source, "*?[") {
			expanded = append(expanded, source)
			continue
		}

		matches, err := filepath.Glob(source)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", source, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", source)
		}
		expanded = append(expanded, matches...)
	}
	return expanded, nil
}

// displayName names a résumé in the ranking: the base name for local files,
// the full reference otherwise.
func displayName(source string) string {
	if isRemote(source) {
		return source
	}
	return filepath.Base(source)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "s3://")
}
