package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/fetch"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	calls   []string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls = append(f.calls, *params.Bucket+"/"+*params.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[*params.Bucket+"/"+*params.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_LocalTextFile(t *testing.T) {
	path := writeFile(t, "resume.txt", "Jane   Doe\r\n\r\n\r\n- Python developer\n")

	text, metadata, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\n- Python developer", text)
	assert.Equal(t, path, metadata.Source)
	assert.Equal(t, KindText, metadata.Kind)
	assert.Equal(t, computeHash(text), metadata.Hash)
	assert.Equal(t, 5, metadata.Words)
}

func TestLoad_LocalHTMLFile(t *testing.T) {
	path := writeFile(t, "job.html", `<html><body><article><p>Looking for Python and AWS experience.</p></article></body></html>`)

	text, metadata, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Looking for Python and AWS experience.", text)
	assert.Equal(t, KindHTML, metadata.Format)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, _, err := Load(context.Background(), "/nonexistent/resume.txt", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "file not found")
}

func TestLoad_EmptyDocument(t *testing.T) {
	path := writeFile(t, "empty.txt", "  \n\n\t ")

	_, _, err := Load(context.Background(), path, Options{})
	assert.True(t, errors.Is(err, ErrEmptyDocument))
}

func TestLoad_EmptySource(t *testing.T) {
	_, _, err := Load(context.Background(), "   ", Options{})
	assert.True(t, errors.Is(err, ErrInvalidSource))
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "resume.doc", "binary")

	_, _, err := Load(context.Background(), path, Options{})
	var formatErr *UnsupportedFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestLoad_S3(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"resumes/2024/jane.txt": "Python   developer"}}

	text, metadata, err := Load(context.Background(), "s3://resumes/2024/jane.txt", Options{S3: client})
	require.NoError(t, err)

	assert.Equal(t, "Python developer", text)
	assert.Equal(t, KindS3, metadata.Kind)
	assert.Equal(t, KindText, metadata.Format)
	assert.Equal(t, []string{"resumes/2024/jane.txt"}, client.calls)
}

func TestLoad_S3Errors(t *testing.T) {
	_, _, err := Load(context.Background(), "s3://bucket/cv.txt", Options{})
	assert.True(t, errors.Is(err, ErrInvalidSource), "missing client")

	_, _, err = Load(context.Background(), "s3://bucket/cv.txt", Options{S3: &fakeS3{err: errors.New("AccessDenied")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://bucket/cv.txt")
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri     string
		bucket  string
		key     string
		wantErr bool
	}{
		{"s3://bucket/key.txt", "bucket", "key.txt", false},
		{"s3://bucket/nested/path/cv.pdf", "bucket", "nested/path/cv.pdf", false},
		{"s3://bucket", "", "", true},
		{"s3:///key", "", "", true},
		{"https://bucket/key", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.uri)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSource))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLoad_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body>
<nav>Nav</nav>
<main>
<h1>Job Title</h1>
<p>Job description</p>
</main>
<footer>Footer</footer>
</body></html>`))
	}))
	defer server.Close()

	text, metadata, err := Load(context.Background(), server.URL, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Job Title\nJob description", text)
	assert.Equal(t, KindURL, metadata.Kind)
	assert.Equal(t, string(fetch.PlatformUnknown), metadata.Platform)
}

func TestLoad_URLHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := Load(context.Background(), server.URL, Options{})
	var fetchErr *fetch.Error
	assert.True(t, errors.As(err, &fetchErr))
}

func TestLoad_URLEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>app()</script></body></html>`))
	}))
	defer server.Close()

	_, _, err := Load(context.Background(), server.URL, Options{})
	assert.True(t, errors.Is(err, ErrEmptyDocument))
}

func TestLoad_URLPDFResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4\n1 0 obj << /Type /Catalog >> endobj\n"))
	}))
	defer server.Close()

	text, _, err := Load(context.Background(), server.URL+"/jobs/42", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read pdf")
	assert.Empty(t, text)
}

func TestLoad_URLDocxResponse(t *testing.T) {
	body := buildDocx(t, "Jane Doe", "Go developer")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	source := server.URL + "/files/job.docx"
	text, metadata, err := Load(context.Background(), source, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nGo developer", text)
	assert.Equal(t, KindURL, metadata.Kind)
	assert.Equal(t, KindDOCX, metadata.Format)
	assert.Equal(t, source, metadata.Source)
}

func TestLoad_URLPlainTextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Go  developer\n<b>not markup</b>"))
	}))
	defer server.Close()

	text, metadata, err := Load(context.Background(), server.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Go developer\n<b>not markup</b>", text)
	assert.Equal(t, KindText, metadata.Format)
}

func TestLoad_URLUnsupportedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n"))
	}))
	defer server.Close()

	_, _, err := Load(context.Background(), server.URL+"/logo.png", Options{})
	var formatErr *UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "image/png", formatErr.Format)
}

func TestResponseFormat(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		want        Kind
		wantErr     bool
	}{
		{name: "html", url: "https://example.com/jobs/1", contentType: "text/html; charset=utf-8", want: KindHTML},
		{name: "xhtml", url: "https://example.com/jobs/1", contentType: "application/xhtml+xml", want: KindHTML},
		{name: "pdf", url: "https://example.com/download?id=1", contentType: "application/pdf", want: KindPDF},
		{name: "docx", url: "https://example.com/jd", contentType: docxMediaType, want: KindDOCX},
		{name: "markdown", url: "https://example.com/jd", contentType: "text/markdown", want: KindText},
		{name: "missing type defaults to html", url: "https://example.com/jobs/1", want: KindHTML},
		{name: "missing type with pdf extension", url: "https://example.com/jd.PDF", want: KindPDF},
		{name: "octet stream with docx extension", url: "https://example.com/jd.docx", contentType: "application/octet-stream", want: KindDOCX},
		{name: "octet stream with html extension", url: "https://example.com/jd.html", contentType: "application/octet-stream", want: KindHTML},
		{name: "octet stream without extension", url: "https://example.com/jd", contentType: "application/octet-stream", wantErr: true},
		{name: "legacy word", url: "https://example.com/jd", contentType: "application/msword", wantErr: true},
		{name: "zip", url: "https://example.com/jd", contentType: "application/zip", wantErr: true},
		{name: "unsupported extension", url: "https://example.com/cv.doc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseFormat(tt.url, tt.contentType)
			if tt.wantErr {
				var formatErr *UnsupportedFormatError
				assert.True(t, errors.As(err, &formatErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// buildDocx returns a minimal WordprocessingML package with one paragraph per line.
func buildDocx(t *testing.T, lines ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, line := range lines {
		body.WriteString("<w:p><w:r><w:t>" + line + "</w:t></w:r></w:p>")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml":            "<w:document><w:body>" + body.String() + "</w:body></w:document>",
		"word/_rels/document.xml.rels": "<Relationships></Relationships>",
	}
	for name, content := range files {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}
