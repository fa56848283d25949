package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument is returned when a source yields no text after cleaning.
	ErrEmptyDocument = errors.New("document contains no text")
	// ErrInvalidSource is returned for malformed source strings such as an s3:// URI without a key.
	ErrInvalidSource = errors.New("invalid source")
)

// UnsupportedFormatError is returned for documents whose format cannot be
// turned into text.
type UnsupportedFormatError struct {
	Source string
	Format string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported format %q for %s: %s", e.Format, e.Source, e.Reason)
	}
	return fmt.Sprintf("unsupported format %q for %s", e.Format, e.Source)
}
