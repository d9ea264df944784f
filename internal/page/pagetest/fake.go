// Package pagetest provides an in-memory page.Driver for tests above the browser layer.
package pagetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/marcohefti/singlish-lab/internal/script"
)

// Fake renders Translate(input) into its output region. The zero value echoes nothing.
type Fake struct {
	mu sync.Mutex

	// Translate maps the current input to the rendered output text. Nil renders "".
	Translate func(input string) string
	// ReadyAfter makes the first N OutputReady polls report false even when output exists.
	ReadyAfter int
	// HideInputsBelowWidth hides the input control when the viewport is narrower.
	HideInputsBelowWidth int64
	// FailFill, when set, is returned by every Fill.
	FailFill error

	input  string
	polls  int
	width  int64
	height int64
	calls  []string
}

func (f *Fake) Fill(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if text == "" {
		f.calls = append(f.calls, "clear")
	} else {
		f.calls = append(f.calls, "fill:"+text)
	}
	if f.FailFill != nil {
		return f.FailFill
	}
	f.input = text
	f.polls = 0
	return nil
}

func (f *Fake) output() string {
	if f.Translate == nil {
		return ""
	}
	return f.Translate(f.input)
}

func (f *Fake) OutputReady(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.polls <= f.ReadyAfter {
		return false, nil
	}
	for _, r := range f.output() {
		if r != ' ' && r != '\n' && r != '\t' {
			return true, nil
		}
	}
	return false, nil
}

func (f *Fake) OutputText(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "read")
	return f.output(), nil
}

func (f *Fake) NativeTextVisible(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return script.ContainsNative(f.output()), nil
}

func (f *Fake) InputVisible(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width == 0 || f.width >= f.HideInputsBelowWidth, nil
}

func (f *Fake) Resize(_ context.Context, width, height int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("resize:%dx%d", width, height))
	f.width, f.height = width, height
	return nil
}

// Calls returns the recorded driver calls in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Table returns a Translate func backed by a fixed input→output map; unknown inputs render
// as themselves.
func Table(m map[string]string) func(string) string {
	return func(in string) string {
		if out, ok := m[in]; ok {
			return out
		}
		return in
	}
}
