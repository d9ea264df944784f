// Package report turns a finished run into its on-disk evidence: test-results.json, run.json,
// the terminal list and the html bundle.
package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/runner"
	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
)

const (
	TestResultsFile = "test-results.json"
	RunFile         = "run.json"
	HTMLDir         = "report"
)

type CliError struct {
	Code    string
	Message string
}

func (e *CliError) Error() string { return e.Message }

func IsCliError(err error, code string) bool {
	var e *CliError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// BuildTestResults renders rep as test-results.json. Attempts that left a trace under runDir
// get trace metrics; a missing trace is not an error here.
func BuildTestResults(runDir string, rep runner.Report) schema.TestResultsV1 {
	doc := schema.TestResultsV1{
		SchemaVersion: schema.ArtifactSchemaV1,
		RunID:         rep.RunID,
		StartedAt:     formatTime(rep.StartedAt),
		FinishedAt:    formatTime(rep.FinishedAt),
		Summary:       Summary(rep),
		Suites:        make([]schema.SuiteResultV1, 0, len(rep.Groups)),
	}
	for _, g := range rep.Groups {
		suite := schema.SuiteResultV1{
			Title:     g.Partition.Title(),
			Partition: string(g.Partition),
			Tests:     make([]schema.TestResultV1, 0, len(g.Results)),
		}
		for _, r := range g.Results {
			suite.Tests = append(suite.Tests, testResult(runDir, rep.RunID, r))
		}
		doc.Suites = append(doc.Suites, suite)
	}
	return doc
}

func testResult(runDir, runID string, r runner.Result) schema.TestResultV1 {
	f := r.Fixture
	tr := schema.TestResultV1{
		ID:             f.ID,
		Title:          f.Title(),
		Outcome:        string(r.Outcome),
		ExpectedStatus: string(f.ExpectedStatus),
		Observed:       r.Observed(),
		Attempts:       make([]schema.AttemptResultJSONV1, 0, len(r.Attempts)),
	}
	if f.Tracked() || !f.Defect.IsZero() {
		tr.Defect = &schema.DefectStatusV1{
			Summary:         f.Defect.Summary,
			ProductExpected: f.Defect.ProductExpected,
			KnownActual:     f.Defect.KnownActual,
			Drifted:         r.Drifted,
		}
	}
	for _, a := range r.Attempts {
		doc := runner.AttemptJSON(runID, f, a)
		if runDir != "" {
			tracePath := filepath.Join(runDir, runner.AttemptDir(f.ID, a.Number), runner.TraceFile)
			if m, err := TraceMetrics(tracePath, false); err == nil && m.EventsTotal > 0 {
				doc.Metrics = &m
			}
		}
		tr.Attempts = append(tr.Attempts, doc)
	}
	return tr
}

func Summary(rep runner.Report) schema.SummaryV1 {
	s := rep.Summary
	out := schema.SummaryV1{
		Total:    s.Total,
		Passed:   s.Passed,
		Failed:   s.Failed,
		TimedOut: s.TimedOut,
		Tracked:  s.Tracked,
		Fixed:    s.Fixed,
		Flaky:    s.Flaky,
		Skipped:  s.Skipped,
		Drifted:  s.Drifted,
	}
	if !rep.StartedAt.IsZero() && rep.FinishedAt.After(rep.StartedAt) {
		out.DurationMs = rep.FinishedAt.Sub(rep.StartedAt).Milliseconds()
	}
	return out
}

func WriteTestResults(runDir string, doc schema.TestResultsV1) error {
	return store.WriteJSONAtomic(filepath.Join(runDir, TestResultsFile), doc)
}

// LoadTestResults reads a previous run's test-results.json.
func LoadTestResults(runDir string) (schema.TestResultsV1, error) {
	raw, err := os.ReadFile(filepath.Join(runDir, TestResultsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return schema.TestResultsV1{}, &CliError{Code: codes.MissingArtifact, Message: "missing " + TestResultsFile + " in " + runDir}
		}
		return schema.TestResultsV1{}, err
	}
	var doc schema.TestResultsV1
	if err := json.Unmarshal(raw, &doc); err != nil {
		return schema.TestResultsV1{}, &CliError{Code: codes.IO, Message: TestResultsFile + " is not valid json: " + err.Error()}
	}
	if doc.SchemaVersion != schema.ArtifactSchemaV1 {
		return schema.TestResultsV1{}, &CliError{Code: codes.IO, Message: "unsupported " + TestResultsFile + " schemaVersion"}
	}
	return doc, nil
}

// WriteRunJSON writes run.json. It is written once when the run starts and again, with
// summary and exit code, when it finishes.
func WriteRunJSON(runDir string, doc schema.RunJSONV1) error {
	return store.WriteJSONAtomic(filepath.Join(runDir, RunFile), doc)
}

// FinishRunJSON stamps the outcome of rep onto the run.json written at start.
func FinishRunJSON(doc schema.RunJSONV1, rep runner.Report, exitCode int) schema.RunJSONV1 {
	s := Summary(rep)
	doc.FinishedAt = formatTime(rep.FinishedAt)
	doc.Summary = &s
	doc.ExitCode = &exitCode
	return doc
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
