package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Kind identifies how a document's text was obtained.
type Kind string

// Document kinds.
const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindHTML Kind = "html"
	KindURL  Kind = "url"
	KindS3   Kind = "s3"
)

// Metadata contains metadata about an ingested document
type Metadata struct {
	Source     string `json:"source"`
	Kind       Kind   `json:"kind"`
	Format     Kind   `json:"format"`             // Decoded format, e.g. pdf for an s3:// PDF
	Platform   string `json:"platform,omitempty"` // Detected job board platform for URLs
	Timestamp  string `json:"timestamp"`          // RFC3339 format
	Hash       string `json:"hash"`               // SHA256 hex digest of the cleaned text
	Characters int    `json:"characters"`
	Words      int    `json:"words"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, source string, kind, format Kind) *Metadata {
	return &Metadata{
		Source:     source,
		Kind:       kind,
		Format:     format,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		Characters: utf8.RuneCountInString(content),
		Words:      countWords(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
