package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrEmptyJobDescription is returned by Start before any network call when
// the submitted job description is empty or whitespace-only.
var ErrEmptyJobDescription = errors.New("job description is empty")

// Transport opens the chunked generation response for a job description.
// The returned body delivers the line-oriented event protocol; Open must
// return an error (and no body) on connection failure or a non-success
// response status.
type Transport interface {
	Open(ctx context.Context, jobDescription string) (io.ReadCloser, error)
}

// readBufferSize is the chunk size used when draining the response body.
const readBufferSize = 4096

// Session owns the lifecycle of one streaming generation request: it starts
// the transfer, drives the line framer and event dispatcher over arriving
// chunks, and exposes terminal status. Starting a new request supersedes any
// session still in flight; frames from a superseded transport are discarded.
type Session struct {
	transport Transport

	mu         sync.Mutex
	epoch      int
	cancel     context.CancelFunc
	acc        *Accumulator
	framer     *LineFramer
	dispatcher *Dispatcher
}

// NewSession creates a session over the given transport. notice receives
// backend-reported error messages mid-stream; it may be nil.
func NewSession(transport Transport, notice func(message string)) *Session {
	acc := NewAccumulator()
	return &Session{
		transport:  transport,
		acc:        acc,
		framer:     &LineFramer{},
		dispatcher: NewDispatcher(acc, notice),
	}
}

// Start issues one streaming generation request and blocks until the session
// reaches a terminal state. All accumulated state is reset synchronously
// before any new data is applied, so no late frame from a superseded session
// can leak into the new one.
//
// The returned error is nil for a completed or cancelled session, and
// non-nil for validation failures (no request issued) and transport-level
// failures (partial results already applied remain readable).
func (s *Session) Start(ctx context.Context, jobDescription string) error {
	if strings.TrimSpace(jobDescription) == "" {
		return ErrEmptyJobDescription
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	if s.cancel != nil {
		s.cancel() // supersede the in-flight session
	}
	ctx, s.cancel = context.WithCancel(ctx)
	cancel := s.cancel
	s.acc.Reset()
	s.framer.Reset()
	s.dispatcher.Reset()
	s.acc.SetStatus(StatusConnecting)
	s.mu.Unlock()
	defer cancel()

	body, err := s.transport.Open(ctx, jobDescription)
	if err != nil {
		if ctx.Err() != nil {
			return nil // cancelled or superseded while connecting
		}
		return s.fail(epoch, err)
	}
	defer body.Close()

	buf := make([]byte, readBufferSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if !s.apply(epoch, string(buf[:n])) {
				return nil // superseded or cancelled
			}
		}
		if err == io.EOF {
			s.finish(epoch)
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil // cancelled; Cancel already set the status
			}
			return s.fail(epoch, err)
		}
	}
}

// Cancel aborts the in-flight transfer, marks the session cancelled, and
// discards any pending partial line. It is synchronous with respect to
// session state: no frame is processed after Cancel returns, even if the
// transport later delivers buffered data.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if !s.acc.Status().Terminal() && s.acc.Status() != StatusIdle {
		s.acc.SetStatus(StatusCancelled)
	}
	s.framer.Reset()
	s.dispatcher.Reset()
}

// Snapshot returns a copy of the current session state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acc.Snapshot()
}

// apply feeds one chunk through the framer and dispatcher. It reports false
// when the chunk belongs to a superseded or already-terminated session and
// must be dropped.
func (s *Session) apply(epoch int, chunk string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || s.acc.Status() == StatusCancelled {
		return false
	}
	if s.acc.Status() == StatusConnecting {
		s.acc.SetStatus(StatusStreaming) // first byte received
	}
	for _, line := range s.framer.Feed(chunk) {
		s.dispatcher.Dispatch(line)
	}
	return true
}

// finish handles clean transport end. A stream that closes without an
// explicit complete event is treated as an implicit clean end.
func (s *Session) finish(epoch int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.framer.Reset()
	s.dispatcher.Reset()
	if !s.acc.Status().Terminal() {
		s.acc.SetStatus(StatusComplete)
	}
}

// fail records a transport-level failure. Partial results already applied
// are preserved. A stale epoch means a newer session owns the framer and
// dispatcher now, so their state must not be touched.
func (s *Session) fail(epoch int, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return err
	}
	if !s.acc.Status().Terminal() {
		s.acc.SetStatus(StatusFailed)
	}
	s.framer.Reset()
	s.dispatcher.Reset()
	return err
}
