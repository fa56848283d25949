package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	sampleResume = "Experienced Python developer. Skills: Python, SQL. Contact: a@b.com, 555-123-4567. Education: BS 2020."
	sampleJob    = "Looking for Python and AWS experience."
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes a fresh command tree with captured output.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	a := &app{
		stdout: &stdout,
		stderr: &stderr,
		now:    func() time.Time { return fixedNow },
		log:    zap.NewNop(),
	}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// sampleFiles writes the sample résumé and job description to a temp dir.
func sampleFiles(t *testing.T) (dir, resume, job string) {
	t.Helper()
	dir = t.TempDir()
	resume = writeFile(t, dir, "resume.txt", sampleResume)
	job = writeFile(t, dir, "job.txt", sampleJob)
	return dir, resume, job
}
