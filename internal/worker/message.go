package worker

import (
	"github.com/jonathan/ats-analyzer/internal/types"
)

// Message is an analysis job read from the queue. Resume and JobDescription
// hold text directly; the *Source fields name an http(s) URL or s3:// object to
// ingest when the corresponding text is empty.
type Message struct {
	ID             string `json:"id,omitempty"`
	Resume         string `json:"resume,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
	ResumeSource   string `json:"resume_source,omitempty"`
	JobSource      string `json:"job_source,omitempty"`
}

// Reply is published for every consumed message. Exactly one of Result and
// Error is set.
type Reply struct {
	ID          string                `json:"id"`
	Result      *types.AnalysisResult `json:"result,omitempty"`
	Error       string                `json:"error,omitempty"`
	GeneratedAt string                `json:"generated_at"`
}

// RoutingKey is the key replies for id are published with.
func RoutingKey(id string) string {
	return "analysis." + id
}

// maxIDLength keeps the routing key and message-id well inside the 255 byte
// AMQP short string limit.
const maxIDLength = 128

// validID reports whether id is usable as a message-id and a single routing
// key word: printable ASCII without spaces or the topic separators '.', '*'
// and '#'.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c <= ' ' || c > '~' || c == '.' || c == '*' || c == '#' {
			return false
		}
	}
	return true
}
