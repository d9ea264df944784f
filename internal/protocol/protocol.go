// Package protocol sequences one translation against the page:
// clear, settle, set, wait for output (which settles again), read.
package protocol

import (
	"context"
	"time"

	"github.com/marcohefti/singlish-lab/internal/trace"
	"github.com/marcohefti/singlish-lab/internal/wait"
)

// Page is the subset of *page.Adapter the protocol drives.
type Page interface {
	ClearInput(ctx context.Context) error
	SetInput(ctx context.Context, text string) error
	WaitForOutput(ctx context.Context) error
	ReadOutput(ctx context.Context) (string, error)
}

type Options struct {
	AfterClear time.Duration
	// EmptyOK turns an output-wait timeout into an observed "" when the region is still
	// empty. Absence checks set it: for them an empty region is an answer, not a hang.
	EmptyOK bool
	Trace   *trace.Recorder
}

type Result struct {
	Observed string
	// OutputTimedOut is set when EmptyOK absorbed a wait timeout.
	OutputTimedOut bool
}

// Translate runs the steps in order and stops at the first error. Timeouts are returned
// as *wait.TimeoutError and never retried here.
func Translate(ctx context.Context, p Page, input string, opts Options) (Result, error) {
	rec := opts.Trace

	if err := p.ClearInput(ctx); err != nil {
		return Result{}, err
	}
	started := time.Now()
	err := wait.Settle(ctx, opts.AfterClear)
	rec.Step("settleAfterClear", started, err)
	if err != nil {
		return Result{}, err
	}

	if err := p.SetInput(ctx, input); err != nil {
		return Result{}, err
	}

	started = time.Now()
	waitErr := p.WaitForOutput(ctx)
	rec.Step("waitForOutput", started, waitErr)
	timedOut := false
	if waitErr != nil {
		if !opts.EmptyOK || !wait.IsTimeout(waitErr) {
			return Result{}, waitErr
		}
		timedOut = true
	}

	observed, err := p.ReadOutput(ctx)
	if err != nil {
		return Result{}, err
	}
	if timedOut && observed != "" {
		return Result{}, waitErr
	}
	return Result{Observed: observed, OutputTimedOut: timedOut}, nil
}

// InterTestSettle is the pause between independent invocations.
func InterTestSettle(ctx context.Context, d time.Duration) error {
	return wait.Settle(ctx, d)
}
