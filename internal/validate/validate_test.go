package validate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/ids"
	"github.com/marcohefti/singlish-lab/internal/report"
	"github.com/marcohefti/singlish-lab/internal/runner"
	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
)

// writeRun lays out a finished one-fixture run with a trace and returns its directory.
func writeRun(t *testing.T) (string, string) {
	t.Helper()
	runID, err := ids.NewRunID(time.Date(2026, 2, 15, 18, 0, 12, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewRunID: %v", err)
	}
	runDir := filepath.Join(t.TempDir(), "runs", runID)
	rel := runner.AttemptDir("Pos_Fun_0001", 1)
	if err := os.MkdirAll(filepath.Join(runDir, rel), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	exit := 0
	summary := schema.SummaryV1{Total: 1, Passed: 1}
	mustWrite(t, filepath.Join(runDir, report.RunFile), schema.RunJSONV1{
		SchemaVersion:         schema.ArtifactSchemaV1,
		ArtifactLayoutVersion: schema.ArtifactLayoutVersionV1,
		RunID:                 runID,
		Summary:               &summary,
		ExitCode:              &exit,
	})
	attempt := schema.AttemptResultJSONV1{
		SchemaVersion: schema.ArtifactSchemaV1,
		RunID:         runID,
		FixtureID:     "Pos_Fun_0001",
		Attempt:       1,
		Status:        "passed",
		Artifacts:     []string{filepath.ToSlash(filepath.Join(rel, runner.TraceFile))},
	}
	mustWrite(t, filepath.Join(runDir, rel, runner.ResultFile), attempt)
	mustWrite(t, filepath.Join(runDir, report.TestResultsFile), schema.TestResultsV1{
		SchemaVersion: schema.ArtifactSchemaV1,
		RunID:         runID,
		Summary:       summary,
		Suites: []schema.SuiteResultV1{{
			Partition: "positive",
			Tests:     []schema.TestResultV1{{ID: "Pos_Fun_0001", Outcome: "passed", Attempts: []schema.AttemptResultJSONV1{attempt}}},
		}},
	})
	trace := `{"v":1,"ts":"2026-02-15T18:00:12Z","runId":"` + runID + `","fixtureId":"Pos_Fun_0001","attempt":1,"kind":"step","op":"fill"}` + "\n"
	if err := os.WriteFile(filepath.Join(runDir, rel, runner.TraceFile), []byte(trace), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}
	return runDir, rel
}

func mustWrite(t *testing.T, path string, v any) {
	t.Helper()
	if err := store.WriteJSONAtomic(path, v); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func hasCode(fs []Finding, code string) bool {
	for _, f := range fs {
		if f.Code == code {
			return true
		}
	}
	return false
}

func TestRun_ValidRun(t *testing.T) {
	runDir, _ := writeRun(t)
	res, err := Run(runDir, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.OK || res.Tests != 1 || res.Attempts != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRun_NotARunDir(t *testing.T) {
	_, err := Run(t.TempDir(), false)
	if !IsCliError(err, codes.Usage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	_, err = Run(filepath.Join(t.TempDir(), "nope"), false)
	if !IsCliError(err, codes.MissingArtifact) {
		t.Fatalf("expected missing artifact, got %v", err)
	}
}

func TestRun_InvalidRunJSON(t *testing.T) {
	runDir, _ := writeRun(t)
	if err := os.WriteFile(filepath.Join(runDir, report.RunFile), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := Run(runDir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OK || !hasCode(res.Errors, codes.InvalidJSON) {
		t.Fatalf("expected invalid json finding: %+v", res)
	}
}

func TestRun_MissingListedArtifact(t *testing.T) {
	runDir, rel := writeRun(t)
	if err := os.Remove(filepath.Join(runDir, rel, runner.TraceFile)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	res, err := Run(runDir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OK || !hasCode(res.Errors, codes.MissingArtifact) {
		t.Fatalf("expected missing artifact finding: %+v", res)
	}
}

func TestRun_TraceIDMismatch(t *testing.T) {
	runDir, rel := writeRun(t)
	line := `{"v":1,"ts":"t","runId":"other","fixtureId":"Pos_Fun_0001","attempt":1,"kind":"step"}` + "\n"
	if err := os.WriteFile(filepath.Join(runDir, rel, runner.TraceFile), []byte(line), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := Run(runDir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OK || !hasCode(res.Errors, codes.IDMismatch) {
		t.Fatalf("expected id mismatch: %+v", res)
	}
}

func TestRun_EmptyTraceIsStrictOnly(t *testing.T) {
	runDir, rel := writeRun(t)
	if err := os.WriteFile(filepath.Join(runDir, rel, runner.TraceFile), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := Run(runDir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.OK || len(res.Warnings) != 1 {
		t.Fatalf("expected a warning only: %+v", res)
	}
	res, err = Run(runDir, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OK {
		t.Fatalf("strict mode should fail on an empty trace: %+v", res)
	}
}

func TestRun_SymlinkEscape(t *testing.T) {
	runDir, rel := writeRun(t)
	outside := filepath.Join(t.TempDir(), "secret.jsonl")
	if err := os.WriteFile(outside, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p := filepath.Join(runDir, rel, runner.TraceFile)
	if err := os.Remove(p); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := os.Symlink(outside, p); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	res, err := Run(runDir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OK || !hasCode(res.Errors, codes.Containment) {
		t.Fatalf("expected containment finding: %+v", res)
	}
}

func TestRun_UnfinishedRun(t *testing.T) {
	runDir, _ := writeRun(t)
	runID := filepath.Base(runDir)
	mustWrite(t, filepath.Join(runDir, report.RunFile), schema.RunJSONV1{
		SchemaVersion:         schema.ArtifactSchemaV1,
		ArtifactLayoutVersion: schema.ArtifactLayoutVersionV1,
		RunID:                 runID,
	})
	res, err := Run(runDir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.OK || !hasCode(res.Warnings, codes.Incomplete) {
		t.Fatalf("expected incomplete warning: %+v", res)
	}
}
