package trace

import (
	"bytes"
	"encoding/json"
	"sync"
	"time"

	"github.com/marcohefti/singlish-lab/internal/redact"
	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
)

const (
	KindStep          = "step"
	KindConsole       = "console"
	KindException     = "exception"
	KindRequest       = "request"
	KindResponse      = "response"
	KindLoadingFailed = "loadingFailed"
	KindLoad          = "load"
)

// maxTextBytes bounds console/exception text per event.
const maxTextBytes = 4 << 10

// Recorder buffers the events of one attempt. Whether they reach disk is decided after the
// attempt finishes (see the trace modes), so nothing is written eagerly.
//
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	mu     sync.Mutex
	now    func() time.Time
	base   schema.TraceEventV1
	events []schema.TraceEventV1
}

func NewRecorder(now func() time.Time, runID, fixtureID string, attempt int) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{
		now: now,
		base: schema.TraceEventV1{
			V:         schema.TraceSchemaV1,
			RunID:     runID,
			FixtureID: fixtureID,
			Attempt:   attempt,
		},
	}
}

func (r *Recorder) Record(ev schema.TraceEventV1) {
	if r == nil {
		return
	}
	ev.V = r.base.V
	ev.RunID = r.base.RunID
	ev.FixtureID = r.base.FixtureID
	ev.Attempt = r.base.Attempt

	var applied []string
	if ev.Text != "" {
		t, a := redact.Text(ev.Text)
		ev.Text = truncate(t, maxTextBytes)
		applied = append(applied, a.Names...)
	}
	if ev.URL != "" {
		u, a := redact.URL(ev.URL)
		ev.URL = u
		applied = append(applied, a.Names...)
	}
	if len(applied) > 0 {
		ev.RedactionsApplied = applied
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.TS == "" {
		ev.TS = r.now().UTC().Format(time.RFC3339Nano)
	}
	r.events = append(r.events, ev)
}

// Step records one protocol step with its duration and outcome.
func (r *Recorder) Step(op string, started time.Time, err error) {
	if r == nil {
		return
	}
	ok := err == nil
	ev := schema.TraceEventV1{
		Kind:       KindStep,
		Op:         op,
		DurationMs: r.now().Sub(started).Milliseconds(),
		OK:         &ok,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	r.Record(ev)
}

func (r *Recorder) Events() []schema.TraceEventV1 {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]schema.TraceEventV1, len(r.events))
	copy(out, r.events)
	return out
}

// WriteJSONL writes every buffered event to path, one JSON object per line.
func (r *Recorder) WriteJSONL(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, ev := range r.Events() {
		if err := enc.Encode(ev); err != nil {
			return err
		}
	}
	return store.WriteFileAtomic(path, buf.Bytes())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary so Sinhala text is never cut mid-sequence.
	cut := max
	for cut > 0 && (s[cut]&0xC0) == 0x80 {
		cut--
	}
	return s[:cut] + "…"
}
