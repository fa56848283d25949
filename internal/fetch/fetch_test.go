package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, PlatformUnknown, result.Platform)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "HTTP status 404", fetchErr.Message)
}

func TestURL_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en-US", r.Header.Get("Accept-Language"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"Accept-Language": "en-US"}

	_, err := URL(context.Background(), server.URL, opts)
	assert.NoError(t, err)
}

func TestURL_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, server.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

const jobPage = `<html><body>
<nav>Home | Jobs</nav>
<div class="job-description">
  <h2>Senior Go Engineer</h2>
  <p>We are looking for an engineer with Go and Kubernetes experience.</p>
  <ul><li>Build APIs</li><li>Run Docker in production</li></ul>
</div>
<form id="application-form">Upload your resume</form>
<footer>Copyright</footer>
</body></html>`

func TestExtractJobPosting_ExtractsDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(jobPage))
	}))
	defer server.Close()

	result, err := fetchJobPosting(t, server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer\nWe are looking for an engineer with Go and Kubernetes experience.\nBuild APIs\nRun Docker in production", result.Text)
	assert.False(t, result.Rendered)
}

func TestExtractJobPosting_BrowserFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="root">Loading...</div></body></html>`))
	}))
	defer server.Close()

	long := strings.Repeat("Python and AWS experience required. ", 20)
	var rendered int
	opts := DefaultOptions()
	opts.UseBrowser = true
	opts.Renderer = func(_ context.Context, url string) (string, error) {
		rendered++
		assert.Equal(t, server.URL, url)
		return "<html><body><main>" + long + "</main></body></html>", nil
	}

	result, err := fetchJobPosting(t, server.URL, opts)
	require.NoError(t, err)

	assert.Equal(t, 1, rendered)
	assert.True(t, result.Rendered)
	assert.Equal(t, strings.TrimSpace(long), result.Text)
}

func TestExtractJobPosting_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>Short posting</main></body></html>`))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.UseBrowser = true
	opts.Renderer = func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	result, err := fetchJobPosting(t, server.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", result.Text)
	assert.False(t, result.Rendered)
}

func TestExtractJobPosting_NoBrowserWhenDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>Short posting</main></body></html>`))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Renderer = func(context.Context, string) (string, error) {
		t.Fatal("renderer should not be called")
		return "", nil
	}

	result, err := fetchJobPosting(t, server.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", result.Text)
}

func TestExtractMainText_WithMainElement(t *testing.T) {
	html := `<html><body>
		<header>Site header</header>
		<main><p>Main content here</p></main>
		<script>var x = 1;</script>
	</body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Main content here", text)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	text, err := ExtractMainText(`<html><body><div>Just   a    body</div></body></html>`, []string{".missing"})
	require.NoError(t, err)
	assert.Equal(t, "Just a body", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<html><body><main><p>Role</p><div class="eeo-statement">EEO</div></main></body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors(), NoiseSelectors(PlatformUnknown)...)
	require.NoError(t, err)
	assert.Equal(t, "Role", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength-1)))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}

func fetchJobPosting(t *testing.T, url string, opts *Options) (*Result, error) {
	t.Helper()
	result, err := URL(context.Background(), url, opts)
	require.NoError(t, err)
	return ExtractJobPosting(context.Background(), result, opts)
}
