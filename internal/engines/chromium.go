package engines

import (
	"context"

	"github.com/marcohefti/singlish-lab/internal/page"
	"github.com/marcohefti/singlish-lab/internal/trace"
)

type chromiumEngine struct {
	browser *page.Browser
	session page.SessionOptions
}

func openChromium(opts Options) (*chromiumEngine, error) {
	b, err := page.Launch(opts.Browser)
	if err != nil {
		return nil, err
	}
	return &chromiumEngine{browser: b, session: opts.Session}, nil
}

func (e *chromiumEngine) OpenSession(_ context.Context, rec *trace.Recorder) (Session, error) {
	so := e.session
	so.Trace = rec
	s, err := e.browser.NewSession(so)
	if err != nil {
		return nil, err
	}
	return chromiumSession{s}, nil
}

func (e *chromiumEngine) Close() error { return e.browser.Close() }

type chromiumSession struct {
	*page.Session
}

func (s chromiumSession) Driver() page.Driver { return s.Session }
