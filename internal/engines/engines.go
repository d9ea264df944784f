// Package engines maps browser names to the code that drives them. The runner only sees
// Engine and Session.
package engines

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcohefti/singlish-lab/internal/page"
	"github.com/marcohefti/singlish-lab/internal/trace"
)

type Name string

const (
	Chromium Name = "chromium"
)

var registered = []Name{
	Chromium,
}

// known lists names users reach for that are recognised but not driven.
var known = []Name{"firefox", "webkit"}

func IsSupported(s string) bool {
	for _, n := range registered {
		if string(n) == s {
			return true
		}
	}
	return false
}

func Names() []Name {
	out := make([]Name, len(registered))
	copy(out, registered)
	return out
}

func CLIUsageValues() string {
	names := make([]string, 0, len(registered))
	for _, n := range registered {
		names = append(names, string(n))
	}
	return strings.Join(names, "|")
}

// Session is one isolated, navigated-on-demand page.
type Session interface {
	Navigate(ctx context.Context) error
	Driver() page.Driver
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

type Engine interface {
	// OpenSession returns a session whose events go to rec (which may be nil).
	OpenSession(ctx context.Context, rec *trace.Recorder) (Session, error)
	Close() error
}

type Options struct {
	Browser page.BrowserOptions
	Session page.SessionOptions
}

// UnsupportedError is returned by Open for names outside the registry.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	for _, k := range known {
		if string(k) == e.Name {
			return fmt.Sprintf("browser %q is not supported by this build (expected %s)", e.Name, CLIUsageValues())
		}
	}
	return fmt.Sprintf("unknown browser %q (expected %s)", e.Name, CLIUsageValues())
}

// Open launches the named engine.
func Open(name string, opts Options) (Engine, error) {
	switch Name(strings.ToLower(strings.TrimSpace(name))) {
	case Chromium:
		e, err := openChromium(opts)
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, &UnsupportedError{Name: name}
	}
}
