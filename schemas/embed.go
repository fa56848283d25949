// Package schemas embeds the JSON Schemas describing the analyzer's JSON output.
package schemas

import "embed"

// Schema file names within Files.
const (
	AnalysisResultFile = "analysis_result.schema.json"
	BatchResultFile    = "batch_result.schema.json"
)

// Files holds every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS
