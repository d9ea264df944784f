package schema

// Version constants for v1 artifacts/traces.
const (
	ArtifactSchemaV1        = 1
	TraceSchemaV1           = 1
	ArtifactLayoutVersionV1 = 1
)

// RunJSONV1 is written to: <outRoot>/runs/<runId>/run.json
type RunJSONV1 struct {
	SchemaVersion int `json:"schemaVersion"`
	// ArtifactLayoutVersion makes the directory contract explicit in evidence.
	ArtifactLayoutVersion int    `json:"artifactLayoutVersion"`
	RunID                 string `json:"runId"`
	CreatedAt             string `json:"createdAt"` // RFC3339 UTC
	FinishedAt            string `json:"finishedAt,omitempty"`
	BaseURL               string `json:"baseUrl"`
	Browser               string `json:"browser"`
	Headless              bool   `json:"headless"`
	Workers               int    `json:"workers"`
	Retries               int    `json:"retries"`
	// FixtureSource is "builtin" or the fixture file path.
	FixtureSource string     `json:"fixtureSource"`
	Summary       *SummaryV1 `json:"summary,omitempty"`
	ExitCode      *int       `json:"exitCode,omitempty"`
}

type SummaryV1 struct {
	Total      int   `json:"total"`
	Passed     int   `json:"passed"`
	Failed     int   `json:"failed"`
	TimedOut   int   `json:"timedOut"`
	Tracked    int   `json:"tracked"`
	Fixed      int   `json:"fixed"`
	Flaky      int   `json:"flaky"`
	Skipped    int   `json:"skipped"`
	Drifted    int   `json:"drifted"`
	DurationMs int64 `json:"durationMs"`
}

// AttemptResultJSONV1 is written to: <runDir>/fixtures/<id>/attempt-<n>/result.json
type AttemptResultJSONV1 struct {
	SchemaVersion int    `json:"schemaVersion"`
	RunID         string `json:"runId"`
	FixtureID     string `json:"fixtureId"`
	Attempt       int    `json:"attempt"`
	Partition     string `json:"partition"`
	// Status is passed|failed|timedOut.
	Status     string   `json:"status"`
	Input      string   `json:"input"`
	Expected   string   `json:"expected,omitempty"`
	Observed   string   `json:"observed"`
	Failures   []string `json:"failures,omitempty"`
	Diff       string   `json:"diff,omitempty"`
	Hint       string   `json:"hint,omitempty"`
	Error      string   `json:"error,omitempty"`
	StartedAt  string   `json:"startedAt"`
	DurationMs int64    `json:"durationMs"`
	// Artifacts are paths relative to the run directory.
	Artifacts []string `json:"artifacts,omitempty"`
	// Metrics summarizes the attempt's trace.jsonl; only test-results.json carries it.
	Metrics *TraceMetricsV1 `json:"metrics,omitempty"`
}

type TraceMetricsV1 struct {
	EventsTotal  int64            `json:"eventsTotal"`
	EventsByKind map[string]int64 `json:"eventsByKind,omitempty"`
	StepsTotal   int64            `json:"stepsTotal"`
	StepFailures int64            `json:"stepFailures"`
	// StepFailuresByOp counts failing protocol steps (waitForOutput, fill, ...).
	StepFailuresByOp map[string]int64 `json:"stepFailuresByOp,omitempty"`
	ConsoleErrors    int64            `json:"consoleErrors"`
	Exceptions       int64            `json:"exceptions"`
	FailedRequests   int64            `json:"failedRequests"`
	HTTPErrors       int64            `json:"httpErrors"`
	WallTimeMs       int64            `json:"wallTimeMs"`

	StepDurationMsTotal int64 `json:"stepDurationMsTotal"`
	StepDurationMsMin   int64 `json:"stepDurationMsMin"`
	StepDurationMsMax   int64 `json:"stepDurationMsMax"`
	StepDurationMsAvg   int64 `json:"stepDurationMsAvg"`
	StepDurationMsP50   int64 `json:"stepDurationMsP50"`
	StepDurationMsP95   int64 `json:"stepDurationMsP95"`
}

// TestResultsV1 is written to: <runDir>/test-results.json
type TestResultsV1 struct {
	SchemaVersion int             `json:"schemaVersion"`
	RunID         string          `json:"runId"`
	StartedAt     string          `json:"startedAt"`
	FinishedAt    string          `json:"finishedAt"`
	Summary       SummaryV1       `json:"summary"`
	Suites        []SuiteResultV1 `json:"suites"`
}

type SuiteResultV1 struct {
	Title     string         `json:"title"`
	Partition string         `json:"partition"`
	Tests     []TestResultV1 `json:"tests"`
}

type TestResultV1 struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Outcome        string `json:"outcome"`
	ExpectedStatus string `json:"expectedStatus"`
	// Observed is the final attempt's observed output.
	Observed string                `json:"observed"`
	Defect   *DefectStatusV1       `json:"defect,omitempty"`
	Attempts []AttemptResultJSONV1 `json:"attempts"`
}

type DefectStatusV1 struct {
	Summary         string `json:"summary,omitempty"`
	ProductExpected string `json:"productExpected,omitempty"`
	KnownActual     string `json:"knownActual,omitempty"`
	// Drifted is set when KnownActual is recorded and the observed output no longer equals it.
	Drifted bool `json:"drifted"`
}

// TraceEventV1 is one line of: <attemptDir>/trace.jsonl
type TraceEventV1 struct {
	V         int    `json:"v"`
	TS        string `json:"ts"`
	RunID     string `json:"runId,omitempty"`
	FixtureID string `json:"fixtureId,omitempty"`
	Attempt   int    `json:"attempt,omitempty"`
	// Kind is step|console|exception|request|response|loadingFailed|load.
	Kind       string `json:"kind"`
	Op         string `json:"op,omitempty"`
	URL        string `json:"url,omitempty"`
	Status     int64  `json:"status,omitempty"`
	Text       string `json:"text,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
	OK         *bool  `json:"ok,omitempty"`
	Error      string `json:"error,omitempty"`

	RedactionsApplied []string `json:"redactionsApplied,omitempty"`
}
