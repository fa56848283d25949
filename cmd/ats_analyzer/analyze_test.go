package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/analysis"
	"github.com/jonathan/ats-analyzer/internal/ingestion"
	"github.com/jonathan/ats-analyzer/internal/report"
	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/types"
)

func TestAnalyze_TextToStdout(t *testing.T) {
	_, resume, job := sampleFiles(t)

	res := runCLI(t, "analyze", "--resume", resume, "--job", job)
	require.NoError(t, res.err)

	var want bytes.Buffer
	require.NoError(t, report.WriteText(&want, analysis.Analyze(sampleResume, sampleJob), fixedNow))
	assert.Equal(t, want.String(), res.stdout)
	assert.Contains(t, res.stdout, "Overall Score: 62%\n")
	assert.Empty(t, res.stderr)
}

func TestAnalyze_JSONToFile(t *testing.T) {
	dir, resume, job := sampleFiles(t)
	out := filepath.Join(dir, "reports", "result.json")

	res := runCLI(t, "analyze", "-r", resume, "-j", job, "--format", "json", "--out", out)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateAnalysisResult(data))

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 62, result.OverallScore)
	assert.Equal(t, []string{"looking", "aws"}, result.MissingKeywords)
}

func TestAnalyze_Verbose(t *testing.T) {
	_, resume, job := sampleFiles(t)

	res := runCLI(t, "analyze", "--resume", resume, "--job", job, "--verbose")
	require.NoError(t, res.err)

	assert.Contains(t, res.stderr, "ATS ANALYSIS")
	assert.Contains(t, res.stderr, "FORMAT CHECKS")
	assert.Contains(t, res.stderr, "SKILLS")
	assert.NotContains(t, res.stdout, "ATS ANALYSIS")
}

func TestAnalyze_JobFromConfig(t *testing.T) {
	dir, resume, job := sampleFiles(t)
	cfgPath := writeFile(t, dir, "config.yaml", "job: "+job+"\nformat: json\n")

	res := runCLI(t, "--config", cfgPath, "analyze", "--resume", resume)
	require.NoError(t, res.err)
	assert.NoError(t, schemas.ValidateAnalysisResult([]byte(res.stdout)))

	// Flags override the config file.
	res = runCLI(t, "--config", cfgPath, "analyze", "--resume", resume, "--format", "text")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "ATS Resume Analysis Report")
}

func TestAnalyze_Errors(t *testing.T) {
	dir, resume, job := sampleFiles(t)
	blank := writeFile(t, dir, "blank.txt", "  \n\t \n")
	legacy := writeFile(t, dir, "resume.doc", "binary")

	tests := []struct {
		name     string
		args     []string
		contains string
		is       error
	}{
		{
			name:     "missing resume flag",
			args:     []string{"analyze", "--job", job},
			contains: `required flag(s) "resume" not set`,
		},
		{
			name:     "missing job",
			args:     []string{"analyze", "--resume", resume},
			contains: "a job description is required",
		},
		{
			name:     "unknown format",
			args:     []string{"analyze", "--resume", resume, "--job", job, "--format", "pdf"},
			contains: `unsupported report format "pdf"`,
		},
		{
			name: "blank resume",
			args: []string{"analyze", "--resume", blank, "--job", job},
			is:   ingestion.ErrEmptyDocument,
		},
		{
			name:     "missing file",
			args:     []string{"analyze", "--resume", filepath.Join(dir, "nope.txt"), "--job", job},
			contains: "file not found",
		},
		{
			name:     "unsupported document",
			args:     []string{"analyze", "--resume", legacy, "--job", job},
			contains: ".doc",
		},
		{
			name:     "missing config",
			args:     []string{"--config", filepath.Join(dir, "absent.yaml"), "analyze", "--resume", resume, "--job", job},
			contains: "config file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)
			require.Error(t, res.err)
			if tt.contains != "" {
				assert.Contains(t, res.err.Error(), tt.contains)
			}
			if tt.is != nil {
				assert.ErrorIs(t, res.err, tt.is)
			}
			assert.Empty(t, res.stdout)
		})
	}
}

func TestValidateTexts(t *testing.T) {
	assert.NoError(t, validateTexts("resume", "job"))
	assert.ErrorContains(t, validateTexts(" ", "job"), "validation failed")
	assert.ErrorContains(t, validateTexts("resume", ""), "validation failed")
}
