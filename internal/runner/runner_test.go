package runner

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/engines"
	"github.com/marcohefti/singlish-lab/internal/fixture"
	"github.com/marcohefti/singlish-lab/internal/page"
	"github.com/marcohefti/singlish-lab/internal/page/pagetest"
	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/trace"
)

// fakeEngine hands out sessions backed by pagetest.Fake. newFake is called once per session
// with the 1-based session number for the fixture being opened.
type fakeEngine struct {
	mu      sync.Mutex
	newFake func(opened int) *pagetest.Fake
	navErr  error
	opened  int
	closed  int
}

func (e *fakeEngine) OpenSession(context.Context, *trace.Recorder) (engines.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opened++
	f := &pagetest.Fake{}
	if e.newFake != nil {
		f = e.newFake(e.opened)
	}
	return &fakeSession{engine: e, fake: f}, nil
}

func (e *fakeEngine) Close() error { return nil }

func (e *fakeEngine) counts() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opened, e.closed
}

type fakeSession struct {
	engine *fakeEngine
	fake   *pagetest.Fake
}

func (s *fakeSession) Navigate(context.Context) error {
	if s.engine.navErr != nil {
		return &page.NavigationError{URL: "https://example.test/", Err: s.engine.navErr}
	}
	return nil
}

func (s *fakeSession) Driver() page.Driver { return s.fake }

func (s *fakeSession) Screenshot(context.Context) ([]byte, error) {
	return []byte("\x89PNG fake"), nil
}

func (s *fakeSession) Close() error {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()
	s.engine.closed++
	return nil
}

var table = map[string]string{
	"mama vaeda karanavaa":            "මම වැඩ කරනවා",
	"oyaata badaginidha?":             "ඔයාට බඩගිනිද?",
	"Mee inne mage hodhama yaaluvaa.": "මේ ඉන්නේ mage හොදම යාලුවා.",
}

func translating(int) *pagetest.Fake {
	return &pagetest.Fake{Translate: pagetest.Table(table)}
}

func testOptions() Options {
	return Options{
		RunID:   "20260215-180012Z-09c5a6",
		Workers: 1,
		Retries: 1,
		Timeouts: config.Timeouts{
			OutputWait: 50 * time.Millisecond,
			Navigation: time.Second,
			Test:       5 * time.Second,
		},
		ExpectTimeout: 50 * time.Millisecond,
		PollInterval:  5 * time.Millisecond,
	}
}

func pos(id, input, expected string) fixture.Fixture {
	return fixture.Fixture{ID: id, Input: input, Outcome: fixture.ExactMatch{Expected: expected}, ExpectedStatus: fixture.StatusPass}
}

func neg(id, input string, strict bool) fixture.Fixture {
	return fixture.Fixture{ID: id, Input: input, Outcome: fixture.AbsenceCheck{Strict: strict}, ExpectedStatus: fixture.StatusPass}
}

func groupsOf(fs ...fixture.Fixture) []fixture.Group {
	s, err := fixture.NewStore(fs)
	if err != nil {
		panic(err)
	}
	return s.Select(fixture.Selector{})
}

func outcomes(rep Report) map[string]Outcome {
	out := map[string]Outcome{}
	for _, g := range rep.Groups {
		for _, r := range g.Results {
			out[r.Fixture.ID] = r.Outcome
		}
	}
	return out
}

func TestRun_ClassifiesPositiveAndNegativeFixtures(t *testing.T) {
	eng := &fakeEngine{newFake: translating}
	rep := New(eng, testOptions()).Run(context.Background(), groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා"),
		pos("Pos_Fun_0004", "oyaata badaginidha?", "ඔයාට බඩගිනිද?"),
		neg("Neg_Fun_0001", "", true),
		neg("Neg_Fun_0003", "567844", false),
	))

	assert.Equal(t, map[string]Outcome{
		"Pos_Fun_0001": Passed,
		"Pos_Fun_0004": Passed,
		"Neg_Fun_0001": Passed,
		"Neg_Fun_0003": Passed,
	}, outcomes(rep))
	require.Len(t, rep.Groups, 2)
	assert.Equal(t, fixture.Positive, rep.Groups[0].Partition)
	assert.Equal(t, "Pos_Fun_0001", rep.Groups[0].Results[0].Fixture.ID)
	assert.Equal(t, 0, rep.ExitCode(false))
	assert.Equal(t, Summary{Total: 4, Passed: 4}, rep.Summary)

	opened, closed := eng.counts()
	assert.Equal(t, 4, opened)
	assert.Equal(t, opened, closed)
}

func TestRun_FailureRetriesThenFails(t *testing.T) {
	eng := &fakeEngine{newFake: translating}
	rep := New(eng, testOptions()).Run(context.Background(), groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා."),
	))

	r := rep.Groups[0].Results[0]
	assert.Equal(t, Failed, r.Outcome)
	require.Len(t, r.Attempts, 2)
	assert.Equal(t, AttemptFailed, r.Attempts[1].Status)
	assert.Contains(t, r.Attempts[1].Verdict.Messages()[0], "Pos_Fun_0001")
	assert.Equal(t, 1, rep.ExitCode(true))
}

func TestRun_PassOnRetryIsFlaky(t *testing.T) {
	eng := &fakeEngine{newFake: func(n int) *pagetest.Fake {
		if n == 1 {
			return &pagetest.Fake{Translate: func(string) string { return "මම වැඩ" }}
		}
		return translating(n)
	}}
	rep := New(eng, testOptions()).Run(context.Background(), groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා"),
	))
	assert.Equal(t, Flaky, rep.Groups[0].Results[0].Outcome)
	assert.Equal(t, 0, rep.ExitCode(false))
}

func TestRun_EmptyOutputTimesOutForExactFixtures(t *testing.T) {
	eng := &fakeEngine{newFake: func(int) *pagetest.Fake { return &pagetest.Fake{} }}
	opts := testOptions()
	opts.Retries = 0
	rep := New(eng, opts).Run(context.Background(), groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා"),
	))
	r := rep.Groups[0].Results[0]
	assert.Equal(t, TimedOut, r.Outcome)
	assert.Equal(t, codes.Timeout, r.Attempts[0].ErrCode)
	assert.Equal(t, 1, rep.ExitCode(true))
}

func tracked(id, input, knownActual string) fixture.Fixture {
	f := neg(id, input, true)
	f.ExpectedStatus = fixture.StatusFail
	f.Defect = fixture.Defect{Summary: "partial transliteration", KnownActual: knownActual}
	return f
}

func TestRun_TrackedDefectsAndDrift(t *testing.T) {
	eng := &fakeEngine{newFake: translating}
	rep := New(eng, testOptions()).Run(context.Background(), groupsOf(
		tracked("Neg_Fun_0004", "Mee inne mage hodhama yaaluvaa.", "මේ ඉන්නේ mage හොදම යාලුවා."),
		tracked("Neg_Fun_0005", "mama vaeda karanavaa", "මම වැඩ කරනවා ද"),
	))

	results := rep.Groups[0].Results
	assert.Equal(t, Tracked, results[0].Outcome)
	assert.False(t, results[0].Drifted)
	// Expected failures are not retried.
	assert.Len(t, results[0].Attempts, 1)

	assert.Equal(t, Tracked, results[1].Outcome)
	assert.True(t, results[1].Drifted)
	assert.Equal(t, 2, rep.Summary.Tracked)
	assert.Equal(t, 1, rep.Summary.Drifted)

	assert.Equal(t, 1, rep.ExitCode(false))
	assert.Equal(t, 0, rep.ExitCode(true))
}

func TestRun_TrackedFixtureThatPassesIsFixed(t *testing.T) {
	eng := &fakeEngine{newFake: func(int) *pagetest.Fake { return &pagetest.Fake{Translate: func(string) string { return "" }} }}
	rep := New(eng, testOptions()).Run(context.Background(), groupsOf(
		tracked("Neg_Fun_0002", "@@@", ""),
	))
	r := rep.Groups[0].Results[0]
	assert.Equal(t, Fixed, r.Outcome)
	assert.Len(t, r.Attempts, 2)
	assert.Equal(t, 1, rep.ExitCode(true))
}

func TestRun_NavigationFailure(t *testing.T) {
	eng := &fakeEngine{navErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	opts := testOptions()
	opts.Retries = 0
	rep := New(eng, opts).Run(context.Background(), groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා"),
	))
	r := rep.Groups[0].Results[0]
	assert.Equal(t, Failed, r.Outcome)
	assert.Equal(t, codes.Navigation, r.Attempts[0].ErrCode)
	assert.Contains(t, r.Attempts[0].Err, "ERR_NAME_NOT_RESOLVED")

	opened, closed := eng.counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
}

func TestRun_FailFastSkipsRemainingFixtures(t *testing.T) {
	eng := &fakeEngine{newFake: translating}
	opts := testOptions()
	opts.Retries = 0
	opts.FailFast = true
	rep := New(eng, opts).Run(context.Background(), groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "wrong"),
		pos("Pos_Fun_0004", "oyaata badaginidha?", "ඔයාට බඩගිනිද?"),
		neg("Neg_Fun_0003", "567844", false),
	))
	got := outcomes(rep)
	assert.Equal(t, Failed, got["Pos_Fun_0001"])
	assert.Equal(t, Skipped, got["Pos_Fun_0004"])
	assert.Equal(t, Skipped, got["Neg_Fun_0003"])
	assert.Equal(t, "fail_fast_prior_failure", rep.Groups[1].Results[0].SkipReason)
	assert.Equal(t, 2, rep.Summary.Skipped)
}

func TestRun_ParallelWorkersKeepDeclarationOrder(t *testing.T) {
	eng := &fakeEngine{newFake: translating}
	opts := testOptions()
	opts.Workers = 3
	var fs []fixture.Fixture
	ids := []string{"Pos_Fun_0001", "Pos_Fun_0002", "Pos_Fun_0003", "Pos_Fun_0004", "Pos_Fun_0005"}
	for _, id := range ids {
		fs = append(fs, pos(id, "mama vaeda karanavaa", "මම වැඩ කරනවා"))
	}
	rep := New(eng, opts).Run(context.Background(), groupsOf(fs...))
	require.Len(t, rep.Groups[0].Results, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, rep.Groups[0].Results[i].Fixture.ID)
		assert.Equal(t, Passed, rep.Groups[0].Results[i].Outcome)
	}
	opened, closed := eng.counts()
	assert.Equal(t, len(ids), opened)
	assert.Equal(t, opened, closed)
}

func TestRun_UIFixtures(t *testing.T) {
	eng := &fakeEngine{newFake: translating}
	rep := New(eng, testOptions()).Run(context.Background(), groupsOf(
		fixture.Fixture{
			ID:             "Pos_UI_Fun_0001",
			Input:          "mama vaeda karanavaa",
			Outcome:        fixture.UIPredicate{Kind: fixture.CheckNativeTextVisible, Within: 50 * time.Millisecond, WantVisible: true},
			ExpectedStatus: fixture.StatusPass,
		},
		fixture.Fixture{
			ID:             "Neg_UI_Fun_0001",
			Outcome:        fixture.UIPredicate{Kind: fixture.CheckInputsVisibleAfterResize, Viewport: fixture.Viewport{Width: 250, Height: 350}},
			ExpectedStatus: fixture.StatusFail,
			Defect:         fixture.Defect{Summary: "inverted expectation"},
		},
	))
	got := outcomes(rep)
	assert.Equal(t, Passed, got["Pos_UI_Fun_0001"])
	assert.Equal(t, Tracked, got["Neg_UI_Fun_0001"])
}

func TestRun_CanceledContextSkipsEverything(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep := New(&fakeEngine{newFake: translating}, testOptions()).Run(ctx, groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා"),
	))
	r := rep.Groups[0].Results[0]
	assert.Equal(t, Skipped, r.Outcome)
	assert.Equal(t, "canceled", r.SkipReason)
}

func TestRun_WritesAttemptArtifactsPerMode(t *testing.T) {
	runDir := t.TempDir()
	opts := testOptions()
	opts.RunDir = runDir
	opts.Retries = 0
	opts.Screenshot = config.ScreenshotOnlyOnFailure
	opts.Trace = config.TraceRetainOnFailure

	rep := New(&fakeEngine{newFake: translating}, opts).Run(context.Background(), groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා"),
		pos("Pos_Fun_0002", "mama vaeda karanavaa", "wrong"),
	))

	passDir := filepath.Join(runDir, AttemptDir("Pos_Fun_0001", 1))
	failDir := filepath.Join(runDir, AttemptDir("Pos_Fun_0002", 1))

	assert.FileExists(t, filepath.Join(passDir, ResultFile))
	assert.NoFileExists(t, filepath.Join(passDir, ScreenshotFile))
	assert.NoFileExists(t, filepath.Join(passDir, TraceFile))

	assert.FileExists(t, filepath.Join(failDir, ScreenshotFile))
	assert.FileExists(t, filepath.Join(failDir, TraceFile))

	raw, err := os.ReadFile(filepath.Join(failDir, ResultFile))
	require.NoError(t, err)
	var doc schema.AttemptResultJSONV1
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "failed", doc.Status)
	assert.Equal(t, "wrong", doc.Expected)
	assert.Equal(t, "මම වැඩ කරනවා", doc.Observed)
	assert.Len(t, doc.Artifacts, 2)
	assert.Equal(t, rep.Groups[0].Results[1].Attempts[0].Artifacts, doc.Artifacts)
}

func TestRun_TrackedExpectedFailureCapturesNoFailureArtifacts(t *testing.T) {
	runDir := t.TempDir()
	opts := testOptions()
	opts.RunDir = runDir
	opts.Retries = 0
	opts.Screenshot = config.ScreenshotOnlyOnFailure
	opts.Trace = config.TraceRetainOnFailure

	render := pagetest.Table(map[string]string{
		"Mee inne mage hodhama yaaluvaa.": "මේ ඉන්නේ mage හොදම යාලුවා.",
		"@@@":                             "",
	})
	eng := &fakeEngine{newFake: func(int) *pagetest.Fake { return &pagetest.Fake{Translate: render} }}
	rep := New(eng, opts).Run(context.Background(), groupsOf(
		tracked("Neg_Fun_0004", "Mee inne mage hodhama yaaluvaa.", "මේ ඉන්නේ mage හොදම යාලුවා."),
		tracked("Neg_Fun_0005", "@@@", ""),
	))
	got := outcomes(rep)
	require.Equal(t, Tracked, got["Neg_Fun_0004"])
	require.Equal(t, Fixed, got["Neg_Fun_0005"])

	trackedDir := filepath.Join(runDir, AttemptDir("Neg_Fun_0004", 1))
	assert.FileExists(t, filepath.Join(trackedDir, ResultFile))
	assert.NoFileExists(t, filepath.Join(trackedDir, ScreenshotFile))
	assert.NoFileExists(t, filepath.Join(trackedDir, TraceFile))

	// A tracked fixture that unexpectedly passes is the surprise worth keeping evidence for.
	fixedDir := filepath.Join(runDir, AttemptDir("Neg_Fun_0005", 1))
	assert.FileExists(t, filepath.Join(fixedDir, ScreenshotFile))
	assert.FileExists(t, filepath.Join(fixedDir, TraceFile))
}

func TestRun_EmitsProgressEvents(t *testing.T) {
	var mu sync.Mutex
	var kinds []EventKind
	opts := testOptions()
	opts.OnEvent = func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, ev.Kind)
	}
	New(&fakeEngine{newFake: translating}, opts).Run(context.Background(), groupsOf(
		pos("Pos_Fun_0001", "mama vaeda karanavaa", "මම වැඩ කරනවා"),
	))
	assert.Equal(t, []EventKind{EventTestStarted, EventAttemptFinished, EventTestFinished}, kinds)
}
