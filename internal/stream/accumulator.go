package stream

import (
	"github.com/jonathan/interview-prep/internal/types"
)

// Status describes where a generation session is in its lifecycle.
type Status string

// Session lifecycle states.
const (
	StatusIdle       Status = "idle"
	StatusConnecting Status = "connecting"
	StatusStreaming  Status = "streaming"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusFailed || s == StatusCancelled
}

// Accumulator holds the mutable state of one generation session: the
// accumulated ResultSet, the lifecycle status, and the last transient
// progress message. It is a pure state container, mutated only by the
// Dispatcher and reset only by the Session that owns it; the Session
// serializes all access.
type Accumulator struct {
	status        Status
	statusMessage string
	results       *types.ResultSet
}

// NewAccumulator returns an idle accumulator with an empty result set.
func NewAccumulator() *Accumulator {
	return &Accumulator{status: StatusIdle, results: types.NewResultSet()}
}

// Reset discards all accumulated state and returns to idle with empty
// category sequences and no job analysis.
func (a *Accumulator) Reset() {
	a.status = StatusIdle
	a.statusMessage = ""
	a.results = types.NewResultSet()
}

// Status returns the current lifecycle status.
func (a *Accumulator) Status() Status {
	return a.status
}

// SetStatus records a lifecycle transition.
func (a *Accumulator) SetStatus(s Status) {
	a.status = s
}

// StatusMessage returns the last progress message, if any.
func (a *Accumulator) StatusMessage() string {
	return a.statusMessage
}

// SetStatusMessage records a transient human-readable progress string.
func (a *Accumulator) SetStatusMessage(msg string) {
	a.statusMessage = msg
}

// SetJobAnalysis records the structured job summary, overwriting any
// previous value. The backend sends it at most once per session.
func (a *Accumulator) SetJobAnalysis(ja *types.JobAnalysis) {
	a.results.JobAnalysis = ja
}

// Append adds a question to its category's sequence. Sequences only grow
// during a session; arrival order equals display order.
func (a *Accumulator) Append(q types.Question) {
	a.results.Append(q)
}

// Snapshot is a point-in-time copy of session state, safe to read while
// the session continues to mutate the accumulator.
type Snapshot struct {
	Status        Status
	StatusMessage string
	Results       *types.ResultSet
}

// Snapshot returns a deep copy of the current state.
func (a *Accumulator) Snapshot() Snapshot {
	rs := types.NewResultSet()
	for category, questions := range a.results.Categories {
		rs.Categories[category] = append([]types.Question(nil), questions...)
	}
	if a.results.JobAnalysis != nil {
		ja := *a.results.JobAnalysis
		rs.JobAnalysis = &ja
	}
	return Snapshot{
		Status:        a.status,
		StatusMessage: a.statusMessage,
		Results:       rs,
	}
}
