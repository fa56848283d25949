package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/analysis"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/observability"
	"github.com/jonathan/ats-analyzer/internal/report"
	"github.com/jonathan/ats-analyzer/internal/schemas"
)

type analyzeOptions struct {
	resume     string
	job        string
	format     string
	out        string
	useBrowser bool
	verbose    bool
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score one résumé against a job description",
		Long: `Score a résumé against a job description and write the report.

The job description may come from --job, or from 'job' or 'job_url' in the config file.
JSON output is validated against the analysis result schema before it is written.`,
		Example: `  ats_analyzer analyze --resume resume.pdf --job job.txt
  ats_analyzer analyze --resume resume.docx --job https://boards.greenhouse.io/acme/jobs/1 --format json --out result.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Résumé source: file, URL or s3:// URI (required)")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Job description source: file, URL or s3:// URI")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text or json (default from config, else text)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&opts.useBrowser, "use-browser", false, "Render job pages in a headless browser when needed (requires Chrome)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print a score summary to stderr")

	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, opts *analyzeOptions) error {
	ctx := cmd.Context()
	a.cfg.UseBrowser = a.cfg.UseBrowser || opts.useBrowser

	jobSrc := a.jobSource(opts.job)
	if jobSrc == "" {
		return fmt.Errorf("a job description is required: use --job or set job/job_url in the config")
	}

	format, err := a.outputFormat(opts.format)
	if err != nil {
		return err
	}

	resumeText, err := a.load(ctx, opts.resume)
	if err != nil {
		return err
	}
	jobText, err := a.load(ctx, jobSrc)
	if err != nil {
		return err
	}
	if err := validateTexts(resumeText, jobText); err != nil {
		return err
	}

	result := analysis.Analyze(resumeText, jobText)
	a.log.Info("analysis complete", logger.ResultFields(result)...)

	var buf bytes.Buffer
	if err := report.Write(&buf, format, result, a.now()); err != nil {
		return err
	}
	if format == report.FormatJSON {
		if err := schemas.ValidateAnalysisResult(buf.Bytes()); err != nil {
			return fmt.Errorf("generated result failed schema validation: %w", err)
		}
	}

	if err := a.writeOutput(opts.out, buf.Bytes()); err != nil {
		return err
	}

	if opts.verbose || a.cfg.Verbose {
		printer := observability.NewPrinter(a.stderr)
		printer.PrintAnalysis(result)
		printer.PrintFormatChecks(analysis.CheckFormat(resumeText), analysis.MeasureReadability(resumeText))
		printer.PrintSkills(analysis.CompareSkills(resumeText, jobText))
	}

	a.log.Debug("analyze finished", zap.String("format", string(format)))
	return nil
}
