// Package trace records dispatch events for offline inspection.
//
// A Recorder writes one timestamped line per event, tagged with a short
// run ID so interleaved appends from separate runs stay attributable.
package trace

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chazu/vtab/dispatch"
)

// Recorder writes trace lines to a single destination. Safe for
// concurrent use.
type Recorder struct {
	mu    sync.Mutex
	w     io.Writer
	file  *os.File // non-nil when Recorder owns the destination
	runID string
}

// New returns a Recorder writing to w. The caller retains ownership
// of w; Close is a no-op.
func New(w io.Writer) *Recorder {
	return &Recorder{
		w:     w,
		runID: uuid.New().String()[:8],
	}
}

// Open returns a Recorder writing to the given path, or to stderr when
// path is "stderr". File destinations are opened in append mode and
// owned by the Recorder until Close.
func Open(path string) (*Recorder, error) {
	if path == "stderr" {
		return New(os.Stderr), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace file %s: %w", path, err)
	}
	r := New(f)
	r.file = f
	return r, nil
}

// RunID returns the short identifier tagged onto every line this
// Recorder writes.
func (r *Recorder) RunID() string {
	return r.runID
}

// Event writes a single trace line.
func (r *Recorder) Event(format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "[%s] %s %s\n", timestamp, r.runID, msg)
}

// Hook returns an observer suitable for Env.OnSend that records every
// dispatch as it resolves.
func (r *Recorder) Hook() func(dispatch.SendEvent) {
	return func(ev dispatch.SendEvent) {
		r.Event("DISPATCH %s >> %s payload=%d", ev.Class, ev.Selector, ev.Payload)
	}
}

// Close releases the trace file when the Recorder owns one.
func (r *Recorder) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
