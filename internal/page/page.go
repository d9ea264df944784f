// Package page is the only code that knows how the translator page is built. Everything
// above it sees three operations (set input, wait for output, read output) plus the
// visibility probes the UI checks need.
package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marcohefti/singlish-lab/internal/wait"
)

// Driver is the browser-facing half of the adapter. *Session implements it on top of
// chromedp; tests use in-memory fakes.
type Driver interface {
	// Fill replaces the input control's entire value with text.
	Fill(ctx context.Context, text string) error
	// OutputReady reports whether some element matching the output selector, other than an
	// input control, holds non-blank text.
	OutputReady(ctx context.Context) (bool, error)
	// OutputText is the raw text content of the first element matching the output selector,
	// or "" when there is none.
	OutputText(ctx context.Context) (string, error)
	NativeTextVisible(ctx context.Context) (bool, error)
	InputVisible(ctx context.Context) (bool, error)
	Resize(ctx context.Context, width, height int64) error
}

type Config struct {
	// OutputWait bounds WaitForOutput's condition poll.
	OutputWait time.Duration
	// Translation is settled after the output condition holds; rendering may still be
	// catching up with the last keystroke.
	Translation time.Duration
	Interval    time.Duration
}

type Adapter struct {
	d   Driver
	cfg Config
}

func NewAdapter(d Driver, cfg Config) *Adapter {
	if cfg.OutputWait <= 0 {
		cfg.OutputWait = 12 * time.Second
	}
	return &Adapter{d: d, cfg: cfg}
}

func (a *Adapter) Driver() Driver { return a.d }

// SetInput clears the input control, then sets it to text.
func (a *Adapter) SetInput(ctx context.Context, text string) error {
	if err := a.d.Fill(ctx, ""); err != nil {
		return fmt.Errorf("clear input: %w", err)
	}
	if text == "" {
		return nil
	}
	if err := a.d.Fill(ctx, text); err != nil {
		return fmt.Errorf("set input: %w", err)
	}
	return nil
}

// ClearInput empties the input control.
func (a *Adapter) ClearInput(ctx context.Context) error {
	if err := a.d.Fill(ctx, ""); err != nil {
		return fmt.Errorf("clear input: %w", err)
	}
	return nil
}

// WaitForOutput blocks until the output region holds non-blank text, then settles for the
// translation period. It fails with a *wait.TimeoutError when the region stays blank.
func (a *Adapter) WaitForOutput(ctx context.Context) error {
	err := wait.Until(ctx, wait.Options{
		Op:       "waitForOutput",
		Timeout:  a.cfg.OutputWait,
		Interval: a.cfg.Interval,
	}, a.d.OutputReady)
	if err != nil {
		return err
	}
	return wait.Settle(ctx, a.cfg.Translation)
}

// ReadOutput returns the output region's text with surrounding whitespace trimmed.
// Interior whitespace is returned as rendered.
func (a *Adapter) ReadOutput(ctx context.Context) (string, error) {
	raw, err := a.d.OutputText(ctx)
	if err != nil {
		return "", fmt.Errorf("read output: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

func (a *Adapter) NativeTextVisible(ctx context.Context) (bool, error) {
	return a.d.NativeTextVisible(ctx)
}

func (a *Adapter) InputVisible(ctx context.Context) (bool, error) {
	return a.d.InputVisible(ctx)
}

func (a *Adapter) Resize(ctx context.Context, width, height int64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", width, height)
	}
	return a.d.Resize(ctx, width, height)
}

// NavigationError is returned when a session cannot load the target page. Tests that hit
// it never reach their assertions.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }
