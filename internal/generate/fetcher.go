// Package generate exposes the "generate questions" capability behind two
// interchangeable strategies: a one-shot request/response fetcher and a
// streaming fetcher that merges results incrementally. Callers pick one by
// configuration; the strategies share no framing or dispatch machinery.
package generate

import (
	"context"

	"github.com/jonathan/interview-prep/internal/stream"
	"github.com/jonathan/interview-prep/internal/types"
)

// Fetcher produces a full ResultSet for a job description.
type Fetcher interface {
	Fetch(ctx context.Context, jobDescription string) (*types.ResultSet, error)
}

// oneShotClient is the slice of the backend client the one-shot strategy needs.
type oneShotClient interface {
	GenerateQuestions(ctx context.Context, jobDescription string) (*types.GenerateQuestionsResponse, error)
}

// OneShotFetcher issues a single request/response call. On success the
// returned ResultSet replaces the caller's state atomically; on failure the
// caller keeps its prior state and reports the error.
type OneShotFetcher struct {
	client oneShotClient
}

// NewOneShotFetcher creates the request/response strategy over a backend client.
func NewOneShotFetcher(client oneShotClient) *OneShotFetcher {
	return &OneShotFetcher{client: client}
}

// Fetch requests the full question set in one call.
func (f *OneShotFetcher) Fetch(ctx context.Context, jobDescription string) (*types.ResultSet, error) {
	resp, err := f.client.GenerateQuestions(ctx, jobDescription)
	if err != nil {
		return nil, err
	}
	return resp.ResultSet(), nil
}

// StreamingFetcher drives a stream.Session to a terminal state and returns
// the accumulated results. Partial results survive a mid-stream failure and
// remain readable through Session().Snapshot().
type StreamingFetcher struct {
	session *stream.Session
}

// NewStreamingFetcher creates the streaming strategy over a transport.
// notice receives backend-reported mid-stream error messages; it may be nil.
func NewStreamingFetcher(transport stream.Transport, notice func(message string)) *StreamingFetcher {
	return &StreamingFetcher{session: stream.NewSession(transport, notice)}
}

// Session exposes the underlying session for live progress rendering and
// cancellation.
func (f *StreamingFetcher) Session() *stream.Session {
	return f.session
}

// Fetch streams the question set, blocking until the session terminates.
func (f *StreamingFetcher) Fetch(ctx context.Context, jobDescription string) (*types.ResultSet, error) {
	if err := f.session.Start(ctx, jobDescription); err != nil {
		return nil, err
	}
	return f.session.Snapshot().Results, nil
}
