package stream

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/jonathan/interview-prep/internal/types"
)

// Event names pushed by the backend. Unrecognized names are ignored.
const (
	EventStatus      = "status"
	EventJobAnalysis = "job_analysis"
	EventQuestion    = "question"
	EventComplete    = "complete"
	EventError       = "error"
)

const (
	eventPrefix = "event: "
	dataPrefix  = "data: "
)

// Dispatcher interprets consecutive complete lines as event frames and
// applies them to an Accumulator. A frame is an `event: <name>` line followed
// by a `data: <json>` line; the event name is consumed exactly once, so a
// fresh `event:` line is required before the next `data:` line takes effect.
type Dispatcher struct {
	acc      *Accumulator
	pending  string
	notice   func(message string)
	handlers map[string]func(payload []byte) error
}

// NewDispatcher creates a dispatcher that mutates acc. notice is invoked for
// backend-reported `error` events, which are surfaced to the user without
// terminating the session; it may be nil.
func NewDispatcher(acc *Accumulator, notice func(message string)) *Dispatcher {
	d := &Dispatcher{acc: acc, notice: notice}
	d.handlers = map[string]func([]byte) error{
		EventStatus:      d.onStatus,
		EventJobAnalysis: d.onJobAnalysis,
		EventQuestion:    d.onQuestion,
		EventComplete:    d.onComplete,
		EventError:       d.onError,
	}
	return d
}

// Dispatch processes one complete line. Lines that are neither `event:` nor
// `data:` prefixed (including blank separator lines) are ignored. A `data:`
// line with no preceding `event:` line is ignored. Malformed JSON payloads
// are logged and skipped; the stream continues.
func (d *Dispatcher) Dispatch(line string) {
	switch {
	case strings.HasPrefix(line, eventPrefix):
		d.pending = strings.TrimSpace(strings.TrimPrefix(line, eventPrefix))
	case strings.HasPrefix(line, dataPrefix):
		if d.pending == "" {
			return
		}
		name := d.pending
		d.pending = ""

		handler, ok := d.handlers[name]
		if !ok {
			return
		}
		if err := handler([]byte(strings.TrimPrefix(line, dataPrefix))); err != nil {
			log.Printf("stream: dropping malformed %q frame: %v", name, err)
		}
	}
}

// Reset clears any pending event name. Called when a session ends or is
// superseded.
func (d *Dispatcher) Reset() {
	d.pending = ""
}

func (d *Dispatcher) onStatus(payload []byte) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return err
	}
	d.acc.SetStatusMessage(body.Message)
	return nil
}

func (d *Dispatcher) onJobAnalysis(payload []byte) error {
	var ja types.JobAnalysis
	if err := json.Unmarshal(payload, &ja); err != nil {
		return err
	}
	d.acc.SetJobAnalysis(&ja)
	return nil
}

func (d *Dispatcher) onQuestion(payload []byte) error {
	var q types.Question
	if err := json.Unmarshal(payload, &q); err != nil {
		return err
	}
	d.acc.Append(q)
	return nil
}

func (d *Dispatcher) onComplete(payload []byte) error {
	d.acc.SetStatus(StatusComplete)
	return nil
}

func (d *Dispatcher) onError(payload []byte) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return err
	}
	// Backend-reported errors are surfaced but do not by themselves change
	// the session status; transport-level failures handle termination.
	if d.notice != nil {
		d.notice(body.Message)
	}
	return nil
}
