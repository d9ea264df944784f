package runner

import (
	"time"

	"github.com/marcohefti/singlish-lab/internal/assertion"
	"github.com/marcohefti/singlish-lab/internal/fixture"
)

// Outcome is the per-fixture classification after retries.
type Outcome string

const (
	Passed   Outcome = "passed"
	Failed   Outcome = "failed"
	TimedOut Outcome = "timedOut"
	// Tracked: the fixture declares expectedStatus fail and its assertion failed.
	Tracked Outcome = "tracked"
	// Fixed: the fixture declares expectedStatus fail but passed.
	Fixed Outcome = "fixed"
	// Flaky: failed at least once, then passed on retry.
	Flaky   Outcome = "flaky"
	Skipped Outcome = "skipped"
)

// AttemptStatus is the result of a single attempt, before expectations are applied.
type AttemptStatus string

const (
	AttemptPassed   AttemptStatus = "passed"
	AttemptFailed   AttemptStatus = "failed"
	AttemptTimedOut AttemptStatus = "timedOut"
)

type Attempt struct {
	Number  int
	Status  AttemptStatus
	Verdict assertion.Verdict
	// Err is set when the attempt never reached a verdict (navigation, timeout, browser).
	Err       string
	ErrCode   string
	StartedAt time.Time
	Duration  time.Duration
	// Artifacts are paths relative to the run directory.
	Artifacts []string
}

type Result struct {
	Fixture    fixture.Fixture
	Outcome    Outcome
	Attempts   []Attempt
	SkipReason string
	// Drifted is set for tracked fixtures whose observed output no longer equals the
	// recorded known-actual output.
	Drifted bool
}

func (r Result) Final() (Attempt, bool) {
	if len(r.Attempts) == 0 {
		return Attempt{}, false
	}
	return r.Attempts[len(r.Attempts)-1], true
}

func (r Result) Observed() string {
	a, _ := r.Final()
	return a.Verdict.Observed
}

type GroupResult struct {
	Partition fixture.Partition
	Results   []Result
}

type Summary struct {
	Total    int
	Passed   int
	Failed   int
	TimedOut int
	Tracked  int
	Fixed    int
	Flaky    int
	Skipped  int
	Drifted  int
}

type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Groups     []GroupResult
	Summary    Summary
}

// Failing reports whether outcome o makes a run unsuccessful.
func Failing(o Outcome, allowTracked bool) bool {
	switch o {
	case Passed, Flaky:
		return false
	case Tracked:
		return !allowTracked
	default:
		return true
	}
}

// ExitCode is 0 when every fixture passed (flaky counts as passed) and 1 otherwise.
func (rep Report) ExitCode(allowTracked bool) int {
	for _, g := range rep.Groups {
		for _, r := range g.Results {
			if Failing(r.Outcome, allowTracked) {
				return 1
			}
		}
	}
	return 0
}

func summarize(groups []GroupResult) Summary {
	var s Summary
	for _, g := range groups {
		for _, r := range g.Results {
			s.Total++
			switch r.Outcome {
			case Passed:
				s.Passed++
			case Failed:
				s.Failed++
			case TimedOut:
				s.TimedOut++
			case Tracked:
				s.Tracked++
			case Fixed:
				s.Fixed++
			case Flaky:
				s.Flaky++
			case Skipped:
				s.Skipped++
			}
			if r.Drifted {
				s.Drifted++
			}
		}
	}
	return s
}

// classify applies the fixture's expected status to its attempts.
func classify(f fixture.Fixture, attempts []Attempt) (Outcome, bool) {
	if len(attempts) == 0 {
		return Skipped, false
	}
	last := attempts[len(attempts)-1]
	if !f.Tracked() {
		switch last.Status {
		case AttemptPassed:
			if len(attempts) > 1 {
				return Flaky, false
			}
			return Passed, false
		case AttemptTimedOut:
			return TimedOut, false
		default:
			return Failed, false
		}
	}

	switch {
	case last.Status == AttemptPassed:
		return Fixed, false
	case last.Status == AttemptTimedOut:
		return TimedOut, false
	case last.Err != "":
		// Never reached the assertion, so the defect was not observed.
		return Failed, false
	}
	drifted := f.Defect.KnownActual != "" && last.Verdict.Observed != f.Defect.KnownActual
	return Tracked, drifted
}

// wantsRetry reports whether an attempt's result disagrees with the fixture's expectation.
func wantsRetry(f fixture.Fixture, a Attempt) bool {
	passed := a.Status == AttemptPassed
	if f.Tracked() {
		return passed || a.Err != ""
	}
	return !passed
}
