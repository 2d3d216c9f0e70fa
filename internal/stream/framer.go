// Package stream implements the incremental-results client for question
// generation: it consumes a chunked HTTP response carrying line-oriented
// event frames and merges partial results into session state as they arrive.
package stream

import "strings"

// LineFramer converts a sequence of text chunks, delivered in arrival order
// and not necessarily aligned to any logical boundary, into complete
// newline-separated lines. A trailing partial line is carried across chunk
// boundaries until its terminator arrives.
type LineFramer struct {
	pending string
}

// Feed consumes the next chunk and returns every complete line it resolves,
// in order. Must be called once per chunk in strict arrival order. No line is
// ever returned twice or split across two return batches.
func (f *LineFramer) Feed(chunk string) []string {
	parts := strings.Split(f.pending+chunk, "\n")
	f.pending = parts[len(parts)-1]
	return parts[:len(parts)-1]
}

// Pending returns the unterminated fragment currently buffered.
func (f *LineFramer) Pending() string {
	return f.pending
}

// Reset discards any buffered fragment. Called at session end, so a response
// that terminates without a trailing newline loses its final partial line.
// The backend always closes frames with a separator.
func (f *LineFramer) Reset() {
	f.pending = ""
}
