// Package telemetry records a JSONL event stream of every operation applied
// to a forest during a session. Each makeSet, find, union, compression and
// option change becomes one structured JSON line, so a session can be
// audited or replayed step by step.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindSessionStart = "session_start"
	KindSessionDone  = "session_done"
	KindMakeSet      = "make_set"
	KindFind         = "find"
	KindUnion        = "union"
	KindCompress     = "compress"
	KindOptions      = "options"
	KindReset        = "reset"
	KindError        = "error"
)

// Event is a single telemetry record. Session ties events from one run
// together; Data carries the kind-specific payload.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Session   string    `json:"session,omitempty"`
	Seq       int64     `json:"seq"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events as JSONL. It is safe for concurrent use by
// multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	out     io.WriteCloser
	enc     *json.Encoder
	session string
	seq     int64
	now     func() time.Time
	mu      sync.Mutex
}

// NewEmitter creates an Emitter that appends JSONL events to the file at
// path, creating it if needed.
func NewEmitter(path, session string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return NewWriterEmitter(f, session), nil
}

// NewWriterEmitter creates an Emitter over an arbitrary writer. Close closes w.
func NewWriterEmitter(w io.WriteCloser, session string) *Emitter {
	return &Emitter{
		out:     w,
		enc:     json.NewEncoder(w),
		session: session,
		now:     time.Now,
	}
}

// Emit writes a single event. Missing timestamps and sessions are filled in
// and the sequence number is assigned here. Calling Emit on a nil Emitter is
// a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now()
	}
	if evt.Session == "" {
		evt.Session = e.session
	}
	e.seq++
	evt.Seq = e.seq
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record is shorthand for emitting an event of the given kind and payload.
func (e *Emitter) Record(kind string, data any) error {
	return e.Emit(Event{Kind: kind, Data: data})
}

// Close closes the underlying writer. Calling Close on a nil Emitter is a
// no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.out.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
