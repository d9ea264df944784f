// Package contract describes the stable sgl surface: artifact layout, trace stream,
// commands and error codes. Scripts consume it through `sgl contract --json`.
package contract

import (
	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/schema"
)

type Contract struct {
	Name                  string     `json:"name"`
	Version               string     `json:"version"`
	ArtifactLayoutVersion int        `json:"artifactLayoutVersion"`
	TraceSchemaVersion    int        `json:"traceSchemaVersion"`
	Artifacts             []Artifact `json:"artifacts"`
	Events                []Event    `json:"events"`
	Commands              []Command  `json:"commands"`
	Errors                []Error    `json:"errors"`
}

type Artifact struct {
	ID             string   `json:"id"`
	Kind           string   `json:"kind"` // json|jsonl|png|html|sqlite
	SchemaVersions []int    `json:"schemaVersions"`
	Required       bool     `json:"required"`
	PathPattern    string   `json:"pathPattern"`
	RequiredFields []string `json:"requiredFields"`
}

type Event struct {
	Stream         string   `json:"stream"`
	SchemaVersions []int    `json:"schemaVersions"`
	RequiredFields []string `json:"requiredFields"`
}

type Command struct {
	ID      string `json:"id"`
	Usage   string `json:"usage"`
	Summary string `json:"summary"`
}

type Error struct {
	Code      string `json:"code"`
	Summary   string `json:"summary"`
	Retryable bool   `json:"retryable"`
}

func Build(version string) Contract {
	v1 := []int{schema.ArtifactSchemaV1}
	return Contract{
		Name:                  "sgl",
		Version:               version,
		ArtifactLayoutVersion: schema.ArtifactLayoutVersionV1,
		TraceSchemaVersion:    schema.TraceSchemaV1,
		Artifacts: []Artifact{
			{
				ID:             "run.json",
				Kind:           "json",
				SchemaVersions: v1,
				Required:       true,
				PathPattern:    ".sgl/runs/<runId>/run.json",
				RequiredFields: []string{"schemaVersion", "artifactLayoutVersion", "runId", "createdAt", "baseUrl", "browser", "fixtureSource"},
			},
			{
				ID:             "test-results.json",
				Kind:           "json",
				SchemaVersions: v1,
				Required:       true,
				PathPattern:    ".sgl/runs/<runId>/test-results.json",
				RequiredFields: []string{"schemaVersion", "runId", "startedAt", "finishedAt", "summary", "suites"},
			},
			{
				ID:             "result.json",
				Kind:           "json",
				SchemaVersions: v1,
				Required:       true,
				PathPattern:    ".sgl/runs/<runId>/fixtures/<fixture>/attempt-<n>/result.json",
				RequiredFields: []string{"schemaVersion", "runId", "fixtureId", "attempt", "status", "input", "observed", "startedAt"},
			},
			{
				ID:             "trace.jsonl",
				Kind:           "jsonl",
				SchemaVersions: []int{schema.TraceSchemaV1},
				Required:       false,
				PathPattern:    ".sgl/runs/<runId>/fixtures/<fixture>/attempt-<n>/trace.jsonl",
				RequiredFields: []string{},
			},
			{
				ID:             "screenshot.png",
				Kind:           "png",
				SchemaVersions: []int{},
				Required:       false,
				PathPattern:    ".sgl/runs/<runId>/fixtures/<fixture>/attempt-<n>/screenshot.png",
				RequiredFields: []string{},
			},
			{
				ID:             "report/index.html",
				Kind:           "html",
				SchemaVersions: []int{},
				Required:       false,
				PathPattern:    ".sgl/runs/<runId>/report/index.html",
				RequiredFields: []string{},
			},
			{
				ID:             "history.db",
				Kind:           "sqlite",
				SchemaVersions: []int{2},
				Required:       false,
				PathPattern:    ".sgl/history.db",
				RequiredFields: []string{},
			},
		},
		Events: []Event{
			{
				Stream:         "trace.jsonl",
				SchemaVersions: []int{schema.TraceSchemaV1},
				RequiredFields: []string{"v", "ts", "runId", "fixtureId", "attempt", "kind"},
			},
			{
				Stream:         "progress.jsonl",
				SchemaVersions: []int{1},
				RequiredFields: []string{"v", "ts", "kind", "runId"},
			},
		},
		Commands: []Command{
			{
				ID:      "run",
				Usage:   "sgl run [--fixtures <file>] [--partition positive|negative|ui] [--id <id>] [--grep <pattern>] [--length S|M|L] [--workers N] [--retries N] [--fail-fast] [--allow-tracked] [--headed|--headless] [--reporter list,json,html] [--progress-jsonl <path|->] [--json]",
				Summary: "Drive the page through every selected fixture and write run artifacts, reports and history.",
			},
			{
				ID:      "list",
				Usage:   "sgl list [selection flags] [--json] [--export <file.yaml|file.json>]",
				Summary: "Print or export the selected fixtures without opening a browser.",
			},
			{
				ID:      "lint",
				Usage:   "sgl lint [--fixtures <file>] [--strict] [--json]",
				Summary: "Validate fixtures and warn about contradictory expectations.",
			},
			{
				ID:      "report",
				Usage:   "sgl report [runId|runDir] [--reporter list,json,html] [-v]",
				Summary: "Re-render the reports of a finished run.",
			},
			{
				ID:      "history",
				Usage:   "sgl history [--id <id>] [--changed] [--runs N] [--json]",
				Summary: "Summarize recorded results per fixture and flag observed-output changes.",
			},
			{
				ID:      "validate",
				Usage:   "sgl validate [runId|runDir] [--strict] [--json]",
				Summary: "Check artifact integrity (schemas, ids, containment) with typed error codes.",
			},
			{
				ID:      "gc",
				Usage:   "sgl gc [--max-age-days N] [--keep-runs N] [--max-total-mb N] [--dry-run] [--json]",
				Summary: "Retention cleanup under .sgl/runs; the newest run is always kept.",
			},
			{
				ID:      "doctor",
				Usage:   "sgl doctor [--base-url <url>] [--chrome-path <path>] [--offline] [--json]",
				Summary: "Check write access, config, history store, browser binary and page reachability.",
			},
			{
				ID:      "config init",
				Usage:   "sgl config init [--config sgl.config.json] [--out-root .sgl] [--json]",
				Summary: "Write a project config with every default spelled out.",
			},
			{
				ID:      "config show",
				Usage:   "sgl config show [--json]",
				Summary: "Print the effective settings and their sources.",
			},
			{
				ID:      "contract",
				Usage:   "sgl contract --json",
				Summary: "Print this surface contract.",
			},
			{
				ID:      "version",
				Usage:   "sgl version",
				Summary: "Print the sgl version.",
			},
		},
		Errors: []Error{
			{Code: codes.Usage, Summary: "Invalid CLI usage (unknown command, bad flag, empty selection).", Retryable: false},
			{Code: codes.IO, Summary: "Filesystem I/O error while reading or writing artifacts.", Retryable: true},
			{Code: codes.Config, Summary: "Config file or environment value is invalid.", Retryable: false},
			{Code: codes.Fixture, Summary: "Fixture file failed to parse or validate.", Retryable: false},
			{Code: codes.Browser, Summary: "The browser engine could not be launched.", Retryable: true},
			{Code: codes.Navigation, Summary: "The page under test failed to load.", Retryable: true},
			{Code: codes.Timeout, Summary: "A test exceeded its time budget.", Retryable: true},
			{Code: codes.History, Summary: "history.db could not be opened or written.", Retryable: true},
			{Code: codes.MissingArtifact, Summary: "A required artifact or run directory is missing.", Retryable: false},
			{Code: codes.InvalidJSON, Summary: "Invalid JSON or JSONL in an artifact file.", Retryable: false},
			{Code: codes.SchemaUnsupported, Summary: "Unsupported schema version for an artifact or event.", Retryable: false},
			{Code: codes.IDMismatch, Summary: "IDs in artifacts or events do not match their run or attempt.", Retryable: false},
			{Code: codes.Containment, Summary: "Artifact path escapes the run directory.", Retryable: false},
			{Code: codes.Incomplete, Summary: "The run has not finished or its summary disagrees with its results.", Retryable: true},
			{Code: codes.ExpectExact, Summary: "Rendered output differs from the expected text.", Retryable: false},
			{Code: codes.ExpectNoNative, Summary: "Output contains native-script characters where none are allowed.", Retryable: false},
			{Code: codes.ExpectEmpty, Summary: "Output is not empty where strict emptiness is required.", Retryable: false},
			{Code: codes.ExpectUIPredicate, Summary: "A UI predicate did not hold within its window.", Retryable: false},
		},
	}
}
