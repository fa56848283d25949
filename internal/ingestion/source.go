// Package ingestion turns résumé and job description sources into clean text.
// A source is a local file path, an http(s) URL or an s3://bucket/key URI.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Load resolves a source and returns its cleaned text with metadata.
func Load(ctx context.Context, source string, opts Options) (string, *Metadata, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return "", nil, fmt.Errorf("%w: empty source", ErrInvalidSource)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return IngestFromURL(ctx, source, opts)
	case strings.HasPrefix(source, "s3://"):
		return IngestFromS3(ctx, source, opts)
	default:
		return IngestFromFile(source, opts)
	}
}

// IngestFromFile reads a local document, decodes it by extension and cleans it.
func IngestFromFile(path string, opts Options) (string, *Metadata, error) {
	format, err := FormatFor(path)
	if err != nil {
		return "", nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ingestBytes(path, format, format, content, opts)
}

// IngestFromS3 downloads an object and decodes it by the key's extension.
func IngestFromS3(ctx context.Context, uri string, opts Options) (string, *Metadata, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return "", nil, err
	}
	if opts.S3 == nil {
		return "", nil, fmt.Errorf("%w: no S3 client configured for %s", ErrInvalidSource, uri)
	}

	format, err := FormatFor(key)
	if err != nil {
		return "", nil, err
	}

	content, err := Download(ctx, opts.S3, bucket, key)
	if err != nil {
		return "", nil, err
	}

	return ingestBytes(uri, KindS3, format, content, opts)
}

func ingestBytes(source string, kind, format Kind, content []byte, opts Options) (string, *Metadata, error) {
	raw, err := ExtractText(source, format, content)
	if err != nil {
		return "", nil, err
	}

	text, err := finish(source, raw)
	if err != nil {
		return "", nil, err
	}

	metadata := NewMetadata(text, source, kind, format)
	opts.logger().Debug("ingested document",
		zap.String("source", source),
		zap.String("format", string(format)),
		zap.Int("bytes", len(content)),
		zap.Int("words", metadata.Words))

	return text, metadata, nil
}

// finish cleans extracted text and rejects documents left empty.
func finish(source, raw string) (string, error) {
	text := CleanText(raw)
	if text == "" {
		return "", fmt.Errorf("%s: %w", source, ErrEmptyDocument)
	}
	return text, nil
}

