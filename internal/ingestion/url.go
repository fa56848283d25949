package ingestion

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/fetch"
)

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// IngestFromURL fetches a job posting and returns its cleaned text with metadata.
// HTML pages go through the job board selectors; with opts.UseBrowser set, pages
// that yield little text are rendered in a headless browser. PDF, DOCX and plain
// text responses are decoded like local files.
func IngestFromURL(ctx context.Context, urlStr string, opts Options) (string, *Metadata, error) {
	log := opts.logger()

	fetchOpts := &fetch.Options{
		Timeout:    fetch.DefaultTimeout,
		UserAgent:  fetch.DefaultUserAgent,
		Client:     opts.HTTPClient,
		UseBrowser: opts.UseBrowser,
		Renderer:   opts.Renderer,
		Logger:     log,
	}

	result, err := fetch.URL(ctx, urlStr, fetchOpts)
	if err != nil {
		return "", nil, err
	}

	format, err := responseFormat(urlStr, result.ContentType)
	if err != nil {
		return "", nil, err
	}
	log.Debug("fetched url",
		zap.String("content_type", result.ContentType),
		zap.String("format", string(format)),
		zap.Int("bytes", len(result.HTML)))
	if format != KindHTML {
		return ingestBytes(urlStr, KindURL, format, []byte(result.HTML), opts)
	}

	result, err = fetch.ExtractJobPosting(ctx, result, fetchOpts)
	if err != nil {
		return "", nil, err
	}

	text, err := finish(urlStr, result.Text)
	if err != nil {
		return "", nil, err
	}

	metadata := NewMetadata(text, urlStr, KindURL, KindHTML)
	metadata.Platform = string(result.Platform)

	log.Debug("ingested url",
		zap.String("platform", metadata.Platform),
		zap.Bool("rendered", result.Rendered),
		zap.Int("words", metadata.Words))

	return text, metadata, nil
}

// responseFormat picks the decoder for a fetched body from its Content-Type,
// using the URL path extension when the server sends a generic or empty type.
func responseFormat(urlStr, contentType string) (Kind, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/pdf":
		return KindPDF, nil
	case docxMediaType:
		return KindDOCX, nil
	case "text/html", "application/xhtml+xml":
		return KindHTML, nil
	case "", "application/octet-stream", "binary/octet-stream":
		return extensionFormat(urlStr, mediaType)
	}

	if strings.HasPrefix(mediaType, "text/") {
		return KindText, nil
	}
	return "", &UnsupportedFormatError{Source: urlStr, Format: mediaType, Reason: "no text decoder for this content type"}
}

func extensionFormat(urlStr, mediaType string) (Kind, error) {
	var name string
	if u, err := url.Parse(urlStr); err == nil {
		name = path.Base(u.Path)
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".txt", ".md":
		return KindText, nil
	case ".html", ".htm":
		return KindHTML, nil
	}

	if _, err := FormatFor(name); err != nil {
		return "", err
	}
	if mediaType == "" {
		// Servers commonly omit the type for dynamic pages.
		return KindHTML, nil
	}
	return "", &UnsupportedFormatError{Source: urlStr, Format: mediaType, Reason: "binary response with no recognised extension"}
}

// Options configures Load.
type Options struct {
	UseBrowser bool
	Renderer   fetch.Renderer // Overrides the headless browser, mainly for tests
	HTTPClient *http.Client
	S3         ObjectGetter // Required for s3:// sources
	Logger     *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
