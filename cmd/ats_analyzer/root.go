package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/config"
	"github.com/jonathan/ats-analyzer/internal/fetch"
	"github.com/jonathan/ats-analyzer/internal/ingestion"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/report"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// app holds state shared by every command.
type app struct {
	configPath string
	debug      bool
	logLevel   string
	jsonLogs   bool

	cfg config.Config
	log *zap.Logger

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	// Ingestion dependencies; nil values are built on demand.
	s3         ingestion.ObjectGetter
	httpClient *http.Client
	renderer   fetch.Renderer
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		now:    time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ats_analyzer",
		Short: "Score résumés against job descriptions the way an ATS would",
		Long: `ats_analyzer compares a résumé with a job description and reports keyword,
skills, format and readability scores with recommendations.

Sources may be local files (.txt, .md, .pdf, .docx, .html), http(s) URLs or
s3://bucket/key objects. Settings are read from --config and ATS_* environment variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML or JSON config file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (same as --log-level debug)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.jsonLogs, "json-logs", false, "Write logs as JSON")

	root.AddCommand(
		newAnalyzeCmd(a),
		newBatchCmd(a),
		newReportCmd(a),
		newSkillsCmd(a),
		newServeCmd(a),
		newWorkerCmd(a),
	)

	return root
}

// setup loads configuration and builds the logger before any command runs.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	a.cfg = loaded.MergeWithDefaults(config.Default())

	if a.log == nil {
		level := a.logLevel
		if a.debug {
			level = "debug"
		}
		log, err := logger.New(logger.Options{JSON: a.jsonLogs, Level: level, Output: a.stderr})
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		a.log = log
	}

	a.log.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("format", a.cfg.Format),
		zap.Int("concurrency", a.cfg.Concurrency))
	return nil
}

// ingestOptions returns ingestion options for sources, creating an S3 client
// only when one of them needs it.
func (a *app) ingestOptions(ctx context.Context, sources ...string) (ingestion.Options, error) {
	opts := ingestion.Options{
		UseBrowser: a.cfg.UseBrowser,
		Renderer:   a.renderer,
		HTTPClient: a.httpClient,
		Logger:     logger.Component(a.log, "ingestion"),
	}

	for _, source := range sources {
		if strings.HasPrefix(source, "s3://") {
			if a.s3 == nil {
				client, err := ingestion.NewS3Client(ctx, a.cfg.S3)
				if err != nil {
					return opts, err
				}
				a.s3 = client
			}
			break
		}
	}
	opts.S3 = a.s3

	return opts, nil
}

// load ingests one source and returns its cleaned text.
func (a *app) load(ctx context.Context, source string) (string, error) {
	opts, err := a.ingestOptions(ctx, source)
	if err != nil {
		return "", err
	}

	text, metadata, err := ingestion.Load(ctx, source, opts)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", source, err)
	}

	a.log.Debug("source loaded",
		zap.String(logger.FieldSource, source),
		zap.String("kind", string(metadata.Kind)),
		zap.Int("words", metadata.Words),
		zap.String("hash", metadata.Hash))
	return text, nil
}

// jobSource picks the job description source: the flag, then config job, then config job_url.
func (a *app) jobSource(flag string) string {
	switch {
	case flag != "":
		return flag
	case a.cfg.Job != "":
		return a.cfg.Job
	default:
		return a.cfg.JobURL
	}
}

// outputFormat resolves the report format from the flag or config.
func (a *app) outputFormat(flag string) (report.Format, error) {
	if flag == "" {
		flag = a.cfg.Format
	}
	return report.ParseFormat(flag)
}

// writeOutput writes data to path, or to stdout when path is empty.
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" {
		path = a.cfg.Output
	}
	if path == "" {
		_, err := a.stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	a.log.Info("report written", zap.String("path", path))
	return nil
}

// validateTexts rejects blank inputs before the engine runs.
func validateTexts(resume, job string) error {
	req := types.AnalyzeRequest{Resume: resume, JobDescription: job}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
