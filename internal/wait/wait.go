// Package wait is the single suspend-until-predicate primitive used for output readiness,
// UI visibility checks and page load: await P within D, else fail with *TimeoutError.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const DefaultInterval = 100 * time.Millisecond

// TimeoutError reports that a predicate never held inside its window.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
	// LastErr is the most recent probe error, if the probe was failing rather than false.
	LastErr error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("%s: condition not met within %s", e.Op, e.Timeout)
	if e.LastErr != nil {
		msg += " (last probe error: " + e.LastErr.Error() + ")"
	}
	return msg
}

func (e *TimeoutError) Unwrap() error { return e.LastErr }

func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// Probe observes the page once. (false, nil) means "not yet"; errors are retried until the
// window closes because a page that is mid-render often rejects evaluation transiently.
type Probe func(ctx context.Context) (bool, error)

type Options struct {
	Op       string
	Timeout  time.Duration
	Interval time.Duration
}

// Until polls probe immediately and then every Interval until it reports true.
// Cancellation of ctx by the caller is returned as ctx.Err(), not as a timeout.
func Until(ctx context.Context, opts Options, probe Probe) error {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Op == "" {
		opts.Op = "wait"
	}
	if opts.Timeout <= 0 {
		return fmt.Errorf("%s: timeout must be > 0", opts.Op)
	}

	wctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	var lastErr error
	for {
		ok, err := probe(wctx)
		if err == nil && ok {
			return nil
		}
		if err != nil {
			lastErr = err
		}

		select {
		case <-wctx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(lastErr, context.DeadlineExceeded) {
				lastErr = nil
			}
			return &TimeoutError{Op: opts.Op, Timeout: opts.Timeout, LastErr: lastErr}
		case <-ticker.C:
		}
	}
}

// Settle blocks for d: a fixed delay used only after an observed condition, to absorb
// trailing render work. A non-positive d returns immediately.
func Settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
