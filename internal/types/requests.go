package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest carries the two texts to compare.
type AnalyzeRequest struct {
	Resume         string `json:"resume" validate:"notblank"`
	JobDescription string `json:"job_description" validate:"notblank"`
}

// BatchRequest compares several résumés against one job description.
type BatchRequest struct {
	JobDescription string     `json:"job_description" validate:"notblank"`
	Resumes        []Document `json:"resumes" validate:"required,min=1,max=50,dive"`
}

// AnalyzeResponse wraps a result with an identifier and timestamp for API callers.
type AnalyzeResponse struct {
	ID          string          `json:"id"`
	Result      *AnalysisResult `json:"result"`
	GeneratedAt string          `json:"generated_at"` // RFC3339 format
}

// BatchResponse is the API payload for a ranked batch.
type BatchResponse struct {
	ID          string         `json:"id"`
	Ranked      []RankedResult `json:"ranked"`
	GeneratedAt string         `json:"generated_at"`
}

// NewValidator returns a validator with the custom rules used by request types.
// "notblank" rejects strings that are empty after trimming whitespace. Field
// errors report JSON field names.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return validate
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return NewValidator().Struct(r)
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	return NewValidator().Struct(r)
}
