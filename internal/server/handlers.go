package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/analysis"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/report"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// SkillsResponse lists the skill phrases the engine recognises.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	result := analysis.Analyze(req.Resume, req.JobDescription)
	resp := types.AnalyzeResponse{
		ID:          uuid.NewString(),
		Result:      result,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}

	s.requestLogger(r).Info("analysis complete",
		append(logger.ResultFields(result), zap.String("analysis_id", resp.ID))...)
	s.jsonResponse(w, http.StatusCreated, resp)
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	ranked, err := analysis.AnalyzeBatch(r.Context(), req.JobDescription, req.Resumes, s.concurrency)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("batch analysis failed: %w", err))
		return
	}

	resp := types.BatchResponse{
		ID:          uuid.NewString(),
		Ranked:      ranked,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}

	s.requestLogger(r).Info("batch analysis complete",
		zap.String("analysis_id", resp.ID),
		zap.Int("resumes", len(ranked)),
	)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleReport renders a downloadable report. The optional format query
// parameter selects text (default) or json.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := report.FormatText
	if raw := r.URL.Query().Get("format"); raw != "" {
		parsed, err := report.ParseFormat(raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = parsed
	}

	var req types.AnalyzeRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	result := analysis.Analyze(req.Resume, req.JobDescription)

	var buf bytes.Buffer
	if err := report.Write(&buf, format, result, s.now()); err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType, filename := "text/plain; charset=utf-8", report.DefaultFilename
	if format == report.FormatJSON {
		contentType, filename = "application/json", "ats-analysis-report.json"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.requestLogger(r).Warn("failed to write report", zap.Error(err))
	}
}

func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, SkillsResponse{Skills: analysis.SkillCatalog()})
}

// decodeRequest reads a single JSON value from a size-limited body into dst.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return &ErrBodyTooLarge{Limit: maxBytesErr.Limit}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		default:
			return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
		}
	}

	if dec.More() {
		return &ErrValidation{Field: "body", Message: "unexpected data after JSON object"}
	}
	return nil
}
