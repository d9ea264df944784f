package trace

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 2, 15, 18, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(10 * time.Millisecond)
		return t
	}
}

func TestRecorder_StampsIdentityAndWritesJSONL(t *testing.T) {
	t.Parallel()

	r := NewRecorder(fixedClock(), "20260215-180012Z-09c5a6", "Pos_Fun_0001", 2)
	r.Step("setInput", time.Date(2026, 2, 15, 18, 0, 0, 0, time.UTC), nil)
	r.Step("waitForOutput", time.Date(2026, 2, 15, 18, 0, 0, 0, time.UTC), errors.New("timed out"))
	r.Record(schema.TraceEventV1{Kind: KindConsole, Op: "log", Text: "ready"})

	path := filepath.Join(t.TempDir(), "trace.jsonl")
	if err := r.WriteJSONL(path); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	var got []schema.TraceEventV1
	err := store.ReadJSONL(path, func(line []byte) error {
		var ev schema.TraceEventV1
		if err := json.Unmarshal(line, &ev); err != nil {
			return err
		}
		got = append(got, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for _, ev := range got {
		if ev.V != schema.TraceSchemaV1 || ev.FixtureID != "Pos_Fun_0001" || ev.Attempt != 2 || ev.TS == "" {
			t.Fatalf("unexpected identity: %+v", ev)
		}
	}
	if got[0].OK == nil || !*got[0].OK {
		t.Fatalf("expected ok step, got %+v", got[0])
	}
	if got[1].OK == nil || *got[1].OK || got[1].Error != "timed out" {
		t.Fatalf("expected failed step, got %+v", got[1])
	}
}

func TestRecorder_RedactsAndBoundsText(t *testing.T) {
	t.Parallel()

	r := NewRecorder(fixedClock(), "run", "Neg_Fun_0001", 1)
	r.Record(schema.TraceEventV1{Kind: KindRequest, URL: "https://example.test/api?token=abcdef123456&q=mama"})
	r.Record(schema.TraceEventV1{Kind: KindConsole, Text: strings.Repeat("අ", 3000)})

	evs := r.Events()
	if strings.Contains(evs[0].URL, "abcdef123456") || !strings.Contains(evs[0].URL, "q=mama") {
		t.Fatalf("expected token redacted and other params kept, got %q", evs[0].URL)
	}
	if len(evs[0].RedactionsApplied) == 0 {
		t.Fatalf("expected redactions recorded")
	}
	if len(evs[1].Text) > maxTextBytes+len("…") || !utf8.ValidString(evs[1].Text) {
		t.Fatalf("expected bounded valid utf-8 text, got %d bytes", len(evs[1].Text))
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.Record(schema.TraceEventV1{Kind: KindLoad})
	r.Step("x", time.Now(), nil)
	if r.Events() != nil {
		t.Fatalf("expected no events")
	}
}
