package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/marcohefti/singlish-lab/internal/assertion"
	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/engines"
	"github.com/marcohefti/singlish-lab/internal/fixture"
	"github.com/marcohefti/singlish-lab/internal/page"
	"github.com/marcohefti/singlish-lab/internal/protocol"
	"github.com/marcohefti/singlish-lab/internal/trace"
	"github.com/marcohefti/singlish-lab/internal/uicheck"
	"github.com/marcohefti/singlish-lab/internal/wait"
)

type Options struct {
	RunID string
	// RunDir receives per-attempt artifacts. Empty disables artifacts.
	RunDir       string
	Workers      int
	Retries      int
	FailFast     bool
	AllowTracked bool

	Timeouts      config.Timeouts
	ExpectTimeout time.Duration
	PollInterval  time.Duration
	Screenshot    config.ScreenshotMode
	Trace         config.TraceMode

	Now func() time.Time
	// OnEvent receives progress events. It is called from worker goroutines.
	OnEvent func(Event)
}

type EventKind string

const (
	EventTestStarted     EventKind = "test_started"
	EventAttemptFinished EventKind = "attempt_finished"
	EventTestFinished    EventKind = "test_finished"
)

type Event struct {
	Kind      EventKind
	FixtureID string
	Attempt   int
	Status    AttemptStatus
	Outcome   Outcome
	Err       string
}

type Runner struct {
	engine engines.Engine
	opts   Options
}

func New(engine engines.Engine, opts Options) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timeouts.Test <= 0 {
		opts.Timeouts.Test = 60 * time.Second
	}
	if opts.ExpectTimeout <= 0 {
		opts.ExpectTimeout = 10 * time.Second
	}
	if opts.Screenshot == "" {
		opts.Screenshot = config.ScreenshotOff
	}
	if opts.Trace == "" {
		opts.Trace = config.TraceOff
	}
	return &Runner{engine: engine, opts: opts}
}

type slot struct {
	group int
	index int
}

// Run executes groups in order (positive, negative, ui as selected), declaration order
// within a group. With Workers > 1, fixtures run in waves of Workers; each test still gets
// its own session.
func (r *Runner) Run(ctx context.Context, groups []fixture.Group) Report {
	rep := Report{RunID: r.opts.RunID, StartedAt: r.opts.Now()}

	var order []slot
	rep.Groups = make([]GroupResult, len(groups))
	for gi, g := range groups {
		rep.Groups[gi] = GroupResult{Partition: g.Partition, Results: make([]Result, len(g.Fixtures))}
		for fi, f := range g.Fixtures {
			rep.Groups[gi].Results[fi] = Result{Fixture: f, Outcome: Skipped}
			order = append(order, slot{group: gi, index: fi})
		}
	}

	wave := r.opts.Workers
	if wave > len(order) {
		wave = len(order)
	}
	stopReason := ""
	for start := 0; start < len(order); start += wave {
		if ctx.Err() != nil {
			stopReason = "canceled"
		}
		if stopReason != "" {
			markSkipped(rep.Groups, order[start:], stopReason)
			break
		}
		end := start + wave
		if end > len(order) {
			end = len(order)
		}
		var wg sync.WaitGroup
		for _, s := range order[start:end] {
			s := s
			wg.Add(1)
			go func() {
				defer wg.Done()
				res := &rep.Groups[s.group].Results[s.index]
				*res = r.runFixture(ctx, res.Fixture)
			}()
		}
		wg.Wait()
		if r.opts.FailFast {
			for _, s := range order[start:end] {
				if Failing(rep.Groups[s.group].Results[s.index].Outcome, r.opts.AllowTracked) {
					stopReason = "fail_fast_prior_failure"
					break
				}
			}
		}
	}

	rep.FinishedAt = r.opts.Now()
	rep.Summary = summarize(rep.Groups)
	return rep
}

func markSkipped(groups []GroupResult, slots []slot, reason string) {
	for _, s := range slots {
		res := &groups[s.group].Results[s.index]
		res.Outcome = Skipped
		res.SkipReason = reason
	}
}

func (r *Runner) emit(ev Event) {
	if r.opts.OnEvent != nil {
		r.opts.OnEvent(ev)
	}
}

func (r *Runner) runFixture(ctx context.Context, f fixture.Fixture) Result {
	r.emit(Event{Kind: EventTestStarted, FixtureID: f.ID})
	res := Result{Fixture: f}
	for n := 1; n <= r.opts.Retries+1; n++ {
		if ctx.Err() != nil {
			break
		}
		a := r.runAttempt(ctx, f, n)
		res.Attempts = append(res.Attempts, a)
		r.emit(Event{Kind: EventAttemptFinished, FixtureID: f.ID, Attempt: n, Status: a.Status, Err: a.Err})

		if err := protocol.InterTestSettle(ctx, r.opts.Timeouts.BetweenTests); err != nil {
			break
		}
		if !wantsRetry(f, a) {
			break
		}
	}
	res.Outcome, res.Drifted = classify(f, res.Attempts)
	if len(res.Attempts) == 0 {
		res.SkipReason = "canceled"
	}
	r.emit(Event{Kind: EventTestFinished, FixtureID: f.ID, Outcome: res.Outcome})
	return res
}

// runAttempt owns one session from acquisition to release. The session is closed on every
// path, including timeouts.
func (r *Runner) runAttempt(ctx context.Context, f fixture.Fixture, n int) Attempt {
	a := Attempt{Number: n, StartedAt: r.opts.Now()}
	attCtx, cancel := context.WithTimeout(ctx, r.opts.Timeouts.Test)
	defer cancel()

	var rec *trace.Recorder
	if r.recordTrace(n) {
		rec = trace.NewRecorder(r.opts.Now, r.opts.RunID, f.ID, n)
	}

	sess, err := r.engine.OpenSession(attCtx, rec)
	if err != nil {
		r.fail(&a, ctx, attCtx, err, codes.Browser)
		a.Duration = r.opts.Now().Sub(a.StartedAt)
		r.writeAttempt(f, &a, nil, rec)
		return a
	}
	defer func() { _ = sess.Close() }()

	verdict, err := r.evaluate(attCtx, sess, f, rec)
	switch {
	case err != nil:
		code := codes.Browser
		var nav *page.NavigationError
		if errors.As(err, &nav) {
			code = codes.Navigation
		}
		r.fail(&a, ctx, attCtx, err, code)
	case verdict.Pass:
		a.Status = AttemptPassed
	default:
		a.Status = AttemptFailed
	}
	a.Verdict = verdict
	a.Duration = r.opts.Now().Sub(a.StartedAt)
	r.writeAttempt(f, &a, sess, rec)
	return a
}

func (r *Runner) fail(a *Attempt, ctx, attCtx context.Context, err error, code string) {
	a.Status = AttemptFailed
	a.Err = err.Error()
	a.ErrCode = code
	// The test budget expiring surfaces as the attempt context's deadline, not the caller's.
	if wait.IsTimeout(err) || (attCtx.Err() != nil && ctx.Err() == nil) {
		a.Status = AttemptTimedOut
		a.ErrCode = codes.Timeout
		if !wait.IsTimeout(err) {
			a.Err = fmt.Sprintf("test timeout of %s exceeded: %s", r.opts.Timeouts.Test, err.Error())
		}
	}
}

func (r *Runner) evaluate(ctx context.Context, sess engines.Session, f fixture.Fixture, rec *trace.Recorder) (assertion.Verdict, error) {
	if err := sess.Navigate(ctx); err != nil {
		return assertion.Verdict{}, err
	}
	adapter := page.NewAdapter(sess.Driver(), page.Config{
		OutputWait:  r.opts.Timeouts.OutputWait,
		Translation: r.opts.Timeouts.Translation,
		Interval:    r.opts.PollInterval,
	})

	if _, ok := f.Outcome.(fixture.UIPredicate); ok {
		return uicheck.Run(ctx, adapter, f, uicheck.Options{
			ExpectTimeout: r.opts.ExpectTimeout,
			Interval:      r.opts.PollInterval,
			Trace:         rec,
		})
	}

	_, absence := f.Outcome.(fixture.AbsenceCheck)
	out, err := protocol.Translate(ctx, adapter, f.Input, protocol.Options{
		AfterClear: r.opts.Timeouts.AfterClear,
		EmptyOK:    absence,
		Trace:      rec,
	})
	if err != nil {
		return assertion.Verdict{}, err
	}
	return assertion.Evaluate(f, out.Observed)
}

func (r *Runner) recordTrace(attempt int) bool {
	switch r.opts.Trace {
	case config.TraceOn, config.TraceRetainOnFailure:
		return true
	case config.TraceOnFirstRetry:
		return attempt == 2
	}
	return false
}
