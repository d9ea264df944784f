// Package uicheck evaluates structural predicates on the rendered page. Both checks poll
// through wait.Until, the same primitive output readiness uses.
package uicheck

import (
	"context"
	"fmt"
	"time"

	"github.com/marcohefti/singlish-lab/internal/assertion"
	"github.com/marcohefti/singlish-lab/internal/fixture"
	"github.com/marcohefti/singlish-lab/internal/trace"
	"github.com/marcohefti/singlish-lab/internal/wait"
)

type Page interface {
	SetInput(ctx context.Context, text string) error
	NativeTextVisible(ctx context.Context) (bool, error)
	InputVisible(ctx context.Context) (bool, error)
	Resize(ctx context.Context, width, height int64) error
}

type Options struct {
	// ExpectTimeout is the polling window for predicates that do not declare one.
	ExpectTimeout time.Duration
	Interval      time.Duration
	Trace         *trace.Recorder
}

// Run evaluates f's predicate. An unmet predicate is a failing Verdict; errors are reserved
// for the page failing underneath (navigation, detached target, cancellation).
func Run(ctx context.Context, p Page, f fixture.Fixture, opts Options) (assertion.Verdict, error) {
	pred, ok := f.Outcome.(fixture.UIPredicate)
	if !ok {
		return assertion.Verdict{}, fmt.Errorf("fixture %s: not a ui predicate (%T)", f.ID, f.Outcome)
	}
	if opts.ExpectTimeout <= 0 {
		opts.ExpectTimeout = 10 * time.Second
	}
	within := pred.Within
	if within <= 0 {
		within = opts.ExpectTimeout
	}

	switch pred.Kind {
	case fixture.CheckNativeTextVisible:
		return nativeTextVisible(ctx, p, f, pred, within, opts)
	case fixture.CheckInputsVisibleAfterResize:
		return inputsVisibleAfterResize(ctx, p, f, pred, within, opts)
	default:
		return assertion.Verdict{}, fmt.Errorf("fixture %s: unknown ui check kind %q", f.ID, pred.Kind)
	}
}

func nativeTextVisible(ctx context.Context, p Page, f fixture.Fixture, pred fixture.UIPredicate, within time.Duration, opts Options) (assertion.Verdict, error) {
	if err := p.SetInput(ctx, f.Input); err != nil {
		return assertion.Verdict{}, err
	}
	if err := settle(ctx, pred.SettleBefore, opts.Trace); err != nil {
		return assertion.Verdict{}, err
	}

	v := assertion.Verdict{FixtureID: f.ID, Mode: assertion.ModeUI, Expected: "native-script text visible"}
	started := time.Now()
	err := wait.Until(ctx, wait.Options{Op: string(pred.Kind), Timeout: within, Interval: opts.Interval}, p.NativeTextVisible)
	opts.Trace.Step(string(pred.Kind), started, err)
	switch {
	case err == nil:
		v.Pass = true
		v.Observed = "native-script text visible"
	case wait.IsTimeout(err):
		v.Observed = "no visible native-script text"
		v.Failures = []assertion.Failure{{
			Check:   assertion.CheckUI,
			Message: fmt.Sprintf("no element with native-script text became visible within %s of input %q", within, f.Input),
		}}
	default:
		return assertion.Verdict{}, err
	}
	return v, nil
}

func inputsVisibleAfterResize(ctx context.Context, p Page, f fixture.Fixture, pred fixture.UIPredicate, within time.Duration, opts Options) (assertion.Verdict, error) {
	vp := pred.Viewport
	if err := p.Resize(ctx, vp.Width, vp.Height); err != nil {
		return assertion.Verdict{}, err
	}
	if err := settle(ctx, pred.SettleBefore, opts.Trace); err != nil {
		return assertion.Verdict{}, err
	}

	v := assertion.Verdict{
		FixtureID: f.ID,
		Mode:      assertion.ModeUI,
		Expected:  fmt.Sprintf("input visible=%t at %dx%d", pred.WantVisible, vp.Width, vp.Height),
	}
	var last bool
	started := time.Now()
	err := wait.Until(ctx, wait.Options{Op: string(pred.Kind), Timeout: within, Interval: opts.Interval}, func(ctx context.Context) (bool, error) {
		visible, err := p.InputVisible(ctx)
		if err != nil {
			return false, err
		}
		last = visible
		return visible == pred.WantVisible, nil
	})
	opts.Trace.Step(string(pred.Kind), started, err)
	v.Observed = fmt.Sprintf("input visible=%t at %dx%d", last, vp.Width, vp.Height)
	switch {
	case err == nil:
		v.Pass = true
	case wait.IsTimeout(err):
		v.Failures = []assertion.Failure{{
			Check:   assertion.CheckUI,
			Message: fmt.Sprintf("expected input visible=%t after resize to %dx%d, still visible=%t after %s", pred.WantVisible, vp.Width, vp.Height, last, within),
		}}
	default:
		return assertion.Verdict{}, err
	}
	return v, nil
}

func settle(ctx context.Context, d time.Duration, rec *trace.Recorder) error {
	started := time.Now()
	err := wait.Settle(ctx, d)
	rec.Step("settleBeforeCheck", started, err)
	return err
}
