package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/interview-prep/internal/stream"
	"github.com/jonathan/interview-prep/internal/types"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteStatus sends a progress status event
func (s *SSEWriter) WriteStatus(message string) {
	s.WriteEvent(stream.EventStatus, map[string]string{"message": message}) //nolint:errcheck
}

// WriteJobAnalysis sends the job analysis event
func (s *SSEWriter) WriteJobAnalysis(analysis *types.JobAnalysis) {
	s.WriteEvent(stream.EventJobAnalysis, analysis) //nolint:errcheck
}

// WriteQuestion sends one generated question
func (s *SSEWriter) WriteQuestion(q types.Question) {
	s.WriteEvent(stream.EventQuestion, q) //nolint:errcheck
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent(stream.EventError, map[string]string{"message": message}) //nolint:errcheck
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(total int) {
	s.WriteEvent(stream.EventComplete, map[string]int{"total": total}) //nolint:errcheck
}
