// Package schemas provides JSON Schema validation for the analyzer's JSON output.
package schemas

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/ats-analyzer/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateAnalysisResult validates a serialised AnalysisResult against the
// embedded analysis_result schema.
func ValidateAnalysisResult(data []byte) error {
	return ValidateEmbedded(schemafiles.AnalysisResultFile, data)
}

// ValidateBatchResult validates a serialised ranking against the embedded
// batch_result schema.
func ValidateBatchResult(data []byte) error {
	return ValidateEmbedded(schemafiles.BatchResultFile, data)
}

// ValidateEmbedded validates JSON bytes against one of the embedded schema files.
func ValidateEmbedded(schemaFile string, data []byte) error {
	schemaData, err := fs.ReadFile(schemafiles.Files, schemaFile)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaFile,
			Message: "schema not embedded",
			Cause:   err,
		}
	}

	return validate(schemaFile, gojsonschema.NewBytesLoader(schemaData), gojsonschema.NewBytesLoader(data))
}

func validate(schemaName string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Load failures cover both an invalid schema and a malformed document.
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
