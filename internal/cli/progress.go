package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/marcohefti/singlish-lab/internal/runner"
)

type progressEvent struct {
	V         int            `json:"v"`
	TS        string         `json:"ts"`
	Kind      string         `json:"kind"`
	RunID     string         `json:"runId,omitempty"`
	FixtureID string         `json:"fixtureId,omitempty"`
	Attempt   int            `json:"attempt,omitempty"`
	Status    string         `json:"status,omitempty"`
	Outcome   string         `json:"outcome,omitempty"`
	Error     string         `json:"error,omitempty"`
	OutDir    string         `json:"outDir,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// progressEmitter appends one JSON line per event to a file, or to stderr for "-". Runner
// events arrive from worker goroutines.
type progressEmitter struct {
	mu     sync.Mutex
	path   string
	stderr io.Writer
}

func newProgressEmitter(path string, stderr io.Writer) (*progressEmitter, error) {
	path = filepath.Clean(path)
	if path == "." || path == "" {
		return nil, nil
	}
	if path == "-" {
		return &progressEmitter{path: "-", stderr: stderr}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &progressEmitter{path: path, stderr: stderr}, nil
}

func (e *progressEmitter) Emit(ev progressEvent) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	ev.V = 1
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return err
	}
	if e.path == "-" {
		if e.stderr == nil {
			return nil
		}
		_, err := e.stderr.Write(buf.Bytes())
		return err
	}
	f, err := os.OpenFile(e.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return err
	}
	return f.Sync()
}

// runnerEvent converts a runner callback into a progress line.
func runnerEvent(runID string, ev runner.Event) progressEvent {
	return progressEvent{
		Kind:      string(ev.Kind),
		RunID:     runID,
		FixtureID: ev.FixtureID,
		Attempt:   ev.Attempt,
		Status:    string(ev.Status),
		Outcome:   string(ev.Outcome),
		Error:     ev.Err,
	}
}
