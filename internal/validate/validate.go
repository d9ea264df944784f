// Package validate checks that a run directory is internally consistent: run.json and
// test-results.json agree, every artifact a result lists exists inside the run directory,
// and every trace line is a v1 event belonging to its attempt.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/ids"
	"github.com/marcohefti/singlish-lab/internal/report"
	"github.com/marcohefti/singlish-lab/internal/runner"
	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
)

type CliError struct {
	Code    string
	Message string
	Path    string
}

func (e *CliError) Error() string {
	if e.Path == "" {
		return e.Code + ": " + e.Message
	}
	return e.Code + ": " + e.Message + " (" + e.Path + ")"
}

type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

type Result struct {
	OK       bool      `json:"ok"`
	Strict   bool      `json:"strict"`
	Path     string    `json:"path"`
	RunID    string    `json:"runId,omitempty"`
	Tests    int       `json:"tests"`
	Attempts int       `json:"attempts"`
	Errors   []Finding `json:"errors,omitempty"`
	Warnings []Finding `json:"warnings,omitempty"`
}

// soft records a finding that only strict mode treats as an error.
func (r *Result) soft(code, msg, path string) {
	f := Finding{Code: code, Message: msg, Path: path}
	if r.Strict {
		r.Errors = append(r.Errors, f)
		return
	}
	r.Warnings = append(r.Warnings, f)
}

func (r *Result) fail(code, msg, path string) {
	r.Errors = append(r.Errors, Finding{Code: code, Message: msg, Path: path})
}

// Run validates runDir. Findings land in the Result; the error is reserved for a target
// that is not a run directory at all.
func Run(runDir string, strict bool) (Result, error) {
	abs, err := filepath.Abs(runDir)
	if err != nil {
		return Result{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, &CliError{Code: codes.MissingArtifact, Message: "run directory does not exist", Path: abs}
		}
		return Result{}, err
	}
	if !info.IsDir() {
		return Result{}, &CliError{Code: codes.Usage, Message: "target must be a directory", Path: abs}
	}
	runJSONPath := filepath.Join(abs, report.RunFile)
	if _, err := os.Stat(runJSONPath); err != nil {
		return Result{}, &CliError{Code: codes.Usage, Message: "target does not look like a run directory", Path: abs}
	}

	res := Result{Strict: strict, Path: abs}
	run, ok := checkRunJSON(abs, runJSONPath, &res)
	if ok && run.ExitCode != nil {
		checkResults(abs, run, &res)
	} else if ok {
		res.soft(codes.Incomplete, "run has not finished (run.json has no exitCode)", runJSONPath)
	}
	res.OK = len(res.Errors) == 0
	return res, nil
}

func checkRunJSON(runDir, path string, res *Result) (schema.RunJSONV1, bool) {
	var run schema.RunJSONV1
	if err := readJSON(path, &run); err != nil {
		res.fail(codes.InvalidJSON, "run.json is not valid json", path)
		return run, false
	}
	if run.SchemaVersion != schema.ArtifactSchemaV1 || run.ArtifactLayoutVersion != schema.ArtifactLayoutVersionV1 {
		res.fail(codes.SchemaUnsupported, fmt.Sprintf("unsupported run.json schemaVersion=%d layout=%d", run.SchemaVersion, run.ArtifactLayoutVersion), path)
		return run, false
	}
	res.RunID = run.RunID
	if !ids.IsValidRunID(run.RunID) {
		res.fail(codes.IDMismatch, fmt.Sprintf("invalid runId %q", run.RunID), path)
	} else if base := filepath.Base(runDir); run.RunID != base {
		res.soft(codes.IDMismatch, "runId does not match directory name "+base, path)
	}
	return run, true
}

func checkResults(runDir string, run schema.RunJSONV1, res *Result) {
	path := filepath.Join(runDir, report.TestResultsFile)
	var doc schema.TestResultsV1
	if err := readJSON(path, &doc); err != nil {
		if os.IsNotExist(err) {
			res.fail(codes.MissingArtifact, "finished run has no test-results.json", path)
		} else {
			res.fail(codes.InvalidJSON, "test-results.json is not valid json", path)
		}
		return
	}
	if doc.SchemaVersion != schema.ArtifactSchemaV1 {
		res.fail(codes.SchemaUnsupported, fmt.Sprintf("unsupported test-results.json schemaVersion=%d", doc.SchemaVersion), path)
		return
	}
	if doc.RunID != run.RunID {
		res.fail(codes.IDMismatch, fmt.Sprintf("test-results runId %q != run.json runId %q", doc.RunID, run.RunID), path)
	}

	for _, suite := range doc.Suites {
		for _, t := range suite.Tests {
			res.Tests++
			for _, a := range t.Attempts {
				res.Attempts++
				checkAttempt(runDir, run.RunID, t.ID, a, res)
			}
		}
	}
	if doc.Summary.Total != res.Tests {
		res.fail(codes.Incomplete, fmt.Sprintf("summary total %d != %d listed tests", doc.Summary.Total, res.Tests), path)
	}
	if run.Summary != nil && run.Summary.Total != doc.Summary.Total {
		res.fail(codes.IDMismatch, fmt.Sprintf("run.json summary total %d != test-results total %d", run.Summary.Total, doc.Summary.Total), path)
	}
}

func checkAttempt(runDir, runID, fixtureID string, a schema.AttemptResultJSONV1, res *Result) {
	attemptDir := filepath.Join(runDir, runner.AttemptDir(fixtureID, a.Attempt))
	resultPath := filepath.Join(attemptDir, runner.ResultFile)
	var doc schema.AttemptResultJSONV1
	if err := readJSON(resultPath, &doc); err != nil {
		if os.IsNotExist(err) {
			res.soft(codes.MissingArtifact, "missing attempt result.json", resultPath)
		} else {
			res.fail(codes.InvalidJSON, "result.json is not valid json", resultPath)
		}
	} else if doc.RunID != runID || doc.FixtureID != fixtureID || doc.Attempt != a.Attempt {
		res.fail(codes.IDMismatch, "result.json ids do not match test-results.json", resultPath)
	}

	for _, rel := range a.Artifacts {
		p, err := containedPath(runDir, rel)
		if err != nil {
			res.fail(codes.Containment, err.Error(), rel)
			continue
		}
		if _, err := os.Stat(p); err != nil {
			res.fail(codes.MissingArtifact, "listed artifact is missing", p)
			continue
		}
		if filepath.Base(p) == runner.TraceFile {
			checkTrace(p, runID, fixtureID, a.Attempt, res)
		}
	}
}

func checkTrace(path, runID, fixtureID string, attempt int, res *Result) {
	n := 0
	err := store.ReadJSONL(path, func(line []byte) error {
		var ev schema.TraceEventV1
		if err := json.Unmarshal(line, &ev); err != nil {
			return &CliError{Code: codes.InvalidJSON, Message: fmt.Sprintf("invalid jsonl line %d", n+1)}
		}
		n++
		if ev.V != schema.TraceSchemaV1 {
			return &CliError{Code: codes.SchemaUnsupported, Message: fmt.Sprintf("unsupported trace event version %d", ev.V)}
		}
		if ev.RunID != runID || ev.FixtureID != fixtureID || ev.Attempt != attempt {
			return &CliError{Code: codes.IDMismatch, Message: "trace event ids do not match the attempt"}
		}
		return nil
	})
	var ce *CliError
	switch {
	case errors.As(err, &ce):
		res.fail(ce.Code, ce.Message, path)
	case err != nil:
		res.fail(codes.IO, err.Error(), path)
	case n == 0:
		res.soft(codes.MissingArtifact, "trace.jsonl is empty", path)
	}
}

// containedPath resolves rel under root and rejects anything that escapes it, symlinks
// included.
func containedPath(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("artifact path %q is absolute", rel)
	}
	p := filepath.Join(root, filepath.FromSlash(rel))
	rootEval, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", err
	}
	pEval, err := filepath.EvalSymlinks(p)
	if err != nil {
		if os.IsNotExist(err) {
			pEval = filepath.Clean(p)
			rootEval = filepath.Clean(root)
		} else {
			return "", err
		}
	}
	sep := string(os.PathSeparator)
	if !strings.HasPrefix(pEval, rootEval+sep) {
		return "", fmt.Errorf("artifact path %q escapes the run directory", rel)
	}
	return p, nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func IsCliError(err error, code string) bool {
	var e *CliError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
