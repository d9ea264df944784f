package runner

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/engines"
	"github.com/marcohefti/singlish-lab/internal/fixture"
	"github.com/marcohefti/singlish-lab/internal/ids"
	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
	"github.com/marcohefti/singlish-lab/internal/trace"
)

const (
	ScreenshotFile = "screenshot.png"
	TraceFile      = "trace.jsonl"
	ResultFile     = "result.json"
)

// screenshotBudget bounds the capture after a failure; the attempt context may already be
// spent by then.
const screenshotBudget = 5 * time.Second

// AttemptDir is the attempt's artifact directory relative to the run directory.
func AttemptDir(fixtureID string, attempt int) string {
	return filepath.Join("fixtures", ids.AttemptDirName(fixtureID, attempt))
}

// writeAttempt captures the artifacts the configured modes ask for and writes result.json.
// Artifact write failures are dropped; they never change the attempt's status.
func (r *Runner) writeAttempt(f fixture.Fixture, a *Attempt, sess engines.Session, rec *trace.Recorder) {
	if r.opts.RunDir == "" {
		return
	}
	rel := AttemptDir(f.ID, a.Number)
	dir := filepath.Join(r.opts.RunDir, rel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	// A tracked fixture failing the way its defect says is not a failure here.
	failed := wantsRetry(f, *a)

	if sess != nil && r.wantScreenshot(failed) {
		ctx, cancel := context.WithTimeout(context.Background(), screenshotBudget)
		png, err := sess.Screenshot(ctx)
		cancel()
		if err == nil {
			err = store.WriteFileAtomic(filepath.Join(dir, ScreenshotFile), png)
		}
		if err == nil {
			a.Artifacts = append(a.Artifacts, filepath.ToSlash(filepath.Join(rel, ScreenshotFile)))
		}
	}
	if rec != nil && (r.opts.Trace != config.TraceRetainOnFailure || failed) {
		if err := rec.WriteJSONL(filepath.Join(dir, TraceFile)); err == nil {
			a.Artifacts = append(a.Artifacts, filepath.ToSlash(filepath.Join(rel, TraceFile)))
		}
	}

	doc := AttemptJSON(r.opts.RunID, f, *a)
	_ = store.WriteJSONAtomic(filepath.Join(dir, ResultFile), doc)
}

func (r *Runner) wantScreenshot(failed bool) bool {
	switch r.opts.Screenshot {
	case config.ScreenshotOn:
		return true
	case config.ScreenshotOnlyOnFailure:
		return failed
	}
	return false
}

// AttemptJSON renders an attempt as its result.json document.
func AttemptJSON(runID string, f fixture.Fixture, a Attempt) schema.AttemptResultJSONV1 {
	doc := schema.AttemptResultJSONV1{
		SchemaVersion: schema.ArtifactSchemaV1,
		RunID:         runID,
		FixtureID:     f.ID,
		Attempt:       a.Number,
		Partition:     string(f.Partition()),
		Status:        string(a.Status),
		Input:         f.Input,
		Expected:      a.Verdict.Expected,
		Observed:      a.Verdict.Observed,
		Failures:      a.Verdict.Messages(),
		Diff:          a.Verdict.Diff,
		Hint:          a.Verdict.Hint,
		Error:         a.Err,
		StartedAt:     a.StartedAt.UTC().Format(time.RFC3339Nano),
		DurationMs:    a.Duration.Milliseconds(),
		Artifacts:     a.Artifacts,
	}
	if doc.Expected == "" {
		if em, ok := f.Outcome.(fixture.ExactMatch); ok {
			doc.Expected = em.Expected
		}
	}
	return doc
}
