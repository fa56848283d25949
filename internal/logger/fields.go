package logger

import (
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// Structured log field keys shared across components.
const (
	FieldComponent = "component"
	FieldSource    = "source"
	FieldRequestID = "request_id"
	FieldOverall   = "overall_score"
	FieldKeyword   = "keyword_match"
	FieldMissing   = "missing_keywords"
)

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// Component returns a child logger tagged with the component name.
func Component(logger *zap.Logger, name string) *zap.Logger {
	return WithFields(logger, zap.String(FieldComponent, name))
}

// ResultFields summarises an analysis result for a log entry.
func ResultFields(result *types.AnalysisResult) []zap.Field {
	if result == nil {
		return nil
	}
	return []zap.Field{
		zap.Int(FieldOverall, result.OverallScore),
		zap.Int(FieldKeyword, result.KeywordMatch),
		zap.Int(FieldMissing, len(result.MissingKeywords)),
	}
}
