package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultBaseURL          = "https://www.swifttranslator.com/"
	DefaultInputPlaceholder = "Input Your Singlish Text Here."
	DefaultOutputSelector   = "div.w-full.h-80.p-3.rounded-lg.ring-1.ring-slate-300.whitespace-pre-wrap"
	DefaultInputControl     = "textarea"
	DefaultOutRoot          = ".sgl"
	DefaultBrowser          = "chromium"
)

type ScreenshotMode string

const (
	ScreenshotOff           ScreenshotMode = "off"
	ScreenshotOn            ScreenshotMode = "on"
	ScreenshotOnlyOnFailure ScreenshotMode = "only-on-failure"
)

type TraceMode string

const (
	TraceOff             TraceMode = "off"
	TraceOn              TraceMode = "on"
	TraceOnFirstRetry    TraceMode = "on-first-retry"
	TraceRetainOnFailure TraceMode = "retain-on-failure"
)

// Timeouts are the fixed delays and bounded windows of one test. Settles are
// unconditional; waits end early once their predicate holds.
type Timeouts struct {
	PageLoad     time.Duration
	AfterClear   time.Duration
	Translation  time.Duration
	BetweenTests time.Duration
	OutputWait   time.Duration
	Navigation   time.Duration
	Test         time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		PageLoad:     2 * time.Second,
		AfterClear:   1 * time.Second,
		Translation:  3 * time.Second,
		BetweenTests: 2 * time.Second,
		OutputWait:   12 * time.Second,
		Navigation:   30 * time.Second,
		Test:         60 * time.Second,
	}
}

type Viewport struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

type Settings struct {
	OutRoot  string
	BaseURL  string
	Browser  string
	Headless bool
	Workers  int
	Retries  int

	InputPlaceholder string
	OutputSelector   string
	InputControl     string

	Viewport   Viewport
	Timeouts   Timeouts
	Screenshot ScreenshotMode
	Trace      TraceMode
}

func Defaults() Settings {
	return Settings{
		OutRoot:          DefaultOutRoot,
		BaseURL:          DefaultBaseURL,
		Browser:          DefaultBrowser,
		Headless:         true,
		Workers:          1,
		Retries:          1,
		InputPlaceholder: DefaultInputPlaceholder,
		OutputSelector:   DefaultOutputSelector,
		InputControl:     DefaultInputControl,
		Viewport:         Viewport{Width: 1280, Height: 720},
		Timeouts:         DefaultTimeouts(),
		Screenshot:       ScreenshotOnlyOnFailure,
		Trace:            TraceRetainOnFailure,
	}
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.OutRoot) == "" {
		return fmt.Errorf("outRoot is empty")
	}
	if strings.TrimSpace(s.BaseURL) == "" {
		return fmt.Errorf("baseUrl is empty")
	}
	if strings.TrimSpace(s.InputPlaceholder) == "" || strings.TrimSpace(s.OutputSelector) == "" {
		return fmt.Errorf("selectors must be non-empty")
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", s.Workers)
	}
	if s.Retries < 0 {
		return fmt.Errorf("retries must be >= 0 (got %d)", s.Retries)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive (got %dx%d)", s.Viewport.Width, s.Viewport.Height)
	}
	if _, err := ParseScreenshotMode(string(s.Screenshot)); err != nil {
		return err
	}
	if _, err := ParseTraceMode(string(s.Trace)); err != nil {
		return err
	}
	t := s.Timeouts
	if t.OutputWait <= 0 || t.Navigation <= 0 || t.Test <= 0 {
		return fmt.Errorf("outputWait, navigation and test timeouts must be > 0")
	}
	if t.PageLoad < 0 || t.AfterClear < 0 || t.Translation < 0 || t.BetweenTests < 0 {
		return fmt.Errorf("settle timeouts must be >= 0")
	}
	return nil
}

func ParseScreenshotMode(s string) (ScreenshotMode, error) {
	switch m := ScreenshotMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ScreenshotOff, ScreenshotOn, ScreenshotOnlyOnFailure:
		return m, nil
	}
	return "", fmt.Errorf("invalid screenshot mode %q (expected off|on|only-on-failure)", s)
}

func ParseTraceMode(s string) (TraceMode, error) {
	switch m := TraceMode(strings.ToLower(strings.TrimSpace(s))); m {
	case TraceOff, TraceOn, TraceOnFirstRetry, TraceRetainOnFailure:
		return m, nil
	}
	return "", fmt.Errorf("invalid trace mode %q (expected off|on|on-first-retry|retain-on-failure)", s)
}

// File renders s in the config file shape, every key spelled out.
func (s Settings) File() FileV1 {
	ms := func(d time.Duration) *int64 {
		v := d.Milliseconds()
		return &v
	}
	headless, workers, retries, vp := s.Headless, s.Workers, s.Retries, s.Viewport
	return FileV1{
		SchemaVersion: ConfigSchemaV1,
		OutRoot:       s.OutRoot,
		BaseURL:       s.BaseURL,
		Browser:       s.Browser,
		Headless:      &headless,
		Workers:       &workers,
		Retries:       &retries,
		Selectors: &SelectorsV1{
			InputPlaceholder: s.InputPlaceholder,
			Output:           s.OutputSelector,
			InputControl:     s.InputControl,
		},
		TimeoutsMs: &TimeoutsV1{
			PageLoad:     ms(s.Timeouts.PageLoad),
			AfterClear:   ms(s.Timeouts.AfterClear),
			Translation:  ms(s.Timeouts.Translation),
			BetweenTests: ms(s.Timeouts.BetweenTests),
			OutputWait:   ms(s.Timeouts.OutputWait),
			Navigation:   ms(s.Timeouts.Navigation),
			Test:         ms(s.Timeouts.Test),
		},
		Viewport:   &vp,
		Screenshot: string(s.Screenshot),
		Trace:      string(s.Trace),
	}
}
