package page

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	cdpage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/trace"
	"github.com/marcohefti/singlish-lab/internal/wait"
)

// networkQuiet is how long the page must go without in-flight requests to count as idle.
const networkQuiet = 500 * time.Millisecond

type BrowserOptions struct {
	Headless bool
	// ExecPath overrides chromedp's Chrome lookup.
	ExecPath string
	// NoSandbox is needed when running as root inside containers.
	NoSandbox     bool
	WindowWidth   int
	WindowHeight  int
	ExtraFlagsCSV string
}

// Browser is one Chromium process. Sessions opened on it do not share cookies, storage or
// cache.
type Browser struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func Launch(opts BrowserOptions) (*Browser, error) {
	execOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	execOpts = append(execOpts,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("ignore-certificate-errors", true),
	)
	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		execOpts = append(execOpts, chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight))
	}
	if opts.ExecPath != "" {
		execOpts = append(execOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.NoSandbox {
		execOpts = append(execOpts, chromedp.NoSandbox)
	}
	for _, f := range strings.Split(opts.ExtraFlagsCSV, ",") {
		f = strings.TrimLeft(strings.TrimSpace(f), "-")
		if f == "" {
			continue
		}
		name, val, hasVal := strings.Cut(f, "=")
		if hasVal {
			execOpts = append(execOpts, chromedp.Flag(name, val))
		} else {
			execOpts = append(execOpts, chromedp.Flag(name, true))
		}
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), execOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	// The first Run starts the process. Its context must outlive the browser, so no deadline.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &Browser{allocCancel: allocCancel, browserCtx: browserCtx, browserCancel: browserCancel}, nil
}

func (b *Browser) Close() error {
	if b == nil {
		return nil
	}
	err := chromedp.Cancel(b.browserCtx)
	b.browserCancel()
	b.allocCancel()
	return err
}

type SessionOptions struct {
	BaseURL          string
	InputPlaceholder string
	OutputSelector   string
	// InputControl selects the control whose visibility the resize check inspects.
	InputControl   string
	ViewportWidth  int64
	ViewportHeight int64
	PageLoadSettle time.Duration
	Navigation     time.Duration
	// Action bounds how long Fill waits for the input control to exist.
	Action time.Duration
	Trace  *trace.Recorder
}

// Session is one isolated page. It implements Driver.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   SessionOptions
	rec    *trace.Recorder
	net    *netTracker
}

var _ Driver = (*Session)(nil)

// NewSession opens a tab in a fresh browser context and starts recording its events. It does
// not navigate; call Navigate.
func (b *Browser) NewSession(opts SessionOptions) (*Session, error) {
	if opts.Action <= 0 {
		opts.Action = 5 * time.Second
	}
	if opts.Navigation <= 0 {
		opts.Navigation = 30 * time.Second
	}
	tabCtx, cancel := chromedp.NewContext(b.browserCtx, chromedp.WithNewBrowserContext())
	s := &Session{
		ctx:    tabCtx,
		cancel: cancel,
		opts:   opts,
		rec:    opts.Trace,
		net:    newNetTracker(),
	}
	chromedp.ListenTarget(tabCtx, s.onEvent)
	// Attach with the session's own context so the tab lives until Close.
	if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
		cancel()
		return nil, fmt.Errorf("open session: %w", err)
	}
	return s, nil
}

func (s *Session) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	return err
}

// run executes actions on the tab while honouring ctx's cancellation and deadline.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	if dl, ok := ctx.Deadline(); ok {
		var cancelDL context.CancelFunc
		runCtx, cancelDL = context.WithDeadline(runCtx, dl)
		defer cancelDL()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *Session) eval(ctx context.Context, expr string, out any) error {
	return s.run(ctx, chromedp.Evaluate(expr, out))
}

// Navigate loads the base URL at the configured viewport, waits for the load state
// (document complete and network idle), then settles for the page-load period.
func (s *Session) Navigate(ctx context.Context) error {
	started := time.Now()
	err := s.navigate(ctx)
	s.rec.Step("navigate", started, err)
	if err != nil {
		return &NavigationError{URL: s.opts.BaseURL, Err: err}
	}
	return nil
}

func (s *Session) navigate(ctx context.Context) error {
	navCtx, cancel := context.WithTimeout(ctx, s.opts.Navigation)
	defer cancel()

	var actions []chromedp.Action
	if s.opts.ViewportWidth > 0 && s.opts.ViewportHeight > 0 {
		actions = append(actions, chromedp.EmulateViewport(s.opts.ViewportWidth, s.opts.ViewportHeight))
	}
	actions = append(actions, chromedp.Navigate(s.opts.BaseURL))
	if err := s.run(navCtx, actions...); err != nil {
		return err
	}

	err := wait.Until(navCtx, wait.Options{Op: "loadState", Timeout: s.opts.Navigation}, func(ctx context.Context) (bool, error) {
		var complete bool
		if err := s.eval(ctx, readyStateJS, &complete); err != nil {
			return false, err
		}
		return complete && s.net.idleFor(time.Now(), networkQuiet), nil
	})
	if err != nil {
		return err
	}
	return wait.Settle(ctx, s.opts.PageLoadSettle)
}

func (s *Session) Fill(ctx context.Context, text string) error {
	started := time.Now()
	op := "fill"
	if text == "" {
		op = "clear"
	}
	err := wait.Until(ctx, wait.Options{Op: op, Timeout: s.opts.Action}, func(ctx context.Context) (bool, error) {
		var ok bool
		if err := s.eval(ctx, fillJS(s.opts.InputPlaceholder, text), &ok); err != nil {
			return false, err
		}
		return ok, nil
	})
	if wait.IsTimeout(err) {
		err = fmt.Errorf("no input control with placeholder %q: %w", s.opts.InputPlaceholder, err)
	}
	s.rec.Step(op, started, err)
	return err
}

func (s *Session) OutputReady(ctx context.Context) (bool, error) {
	var ready bool
	err := s.eval(ctx, outputReadyJS(s.opts.OutputSelector), &ready)
	return ready, err
}

func (s *Session) OutputText(ctx context.Context) (string, error) {
	started := time.Now()
	var text string
	err := s.eval(ctx, outputTextJS(s.opts.OutputSelector), &text)
	s.rec.Step("readOutput", started, err)
	return text, err
}

func (s *Session) NativeTextVisible(ctx context.Context) (bool, error) {
	var ok bool
	err := s.eval(ctx, nativeTextVisibleJS, &ok)
	return ok, err
}

func (s *Session) InputVisible(ctx context.Context) (bool, error) {
	sel := s.opts.InputControl
	if sel == "" {
		sel = "textarea"
	}
	var ok bool
	err := s.eval(ctx, firstVisibleJS(sel), &ok)
	return ok, err
}

func (s *Session) Resize(ctx context.Context, width, height int64) error {
	started := time.Now()
	err := s.run(ctx, chromedp.EmulateViewport(width, height))
	s.rec.Step(fmt.Sprintf("resize %dx%d", width, height), started, err)
	return err
}

// Screenshot captures the current viewport as PNG.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// onEvent runs on chromedp's event loop and must not block.
func (s *Session) onEvent(ev any) {
	switch e := ev.(type) {
	case *runtime.EventConsoleAPICalled:
		parts := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			switch {
			case len(a.Value) > 0:
				parts = append(parts, string(a.Value))
			case a.Description != "":
				parts = append(parts, a.Description)
			}
		}
		s.rec.Record(schema.TraceEventV1{Kind: trace.KindConsole, Op: string(e.Type), Text: strings.Join(parts, " ")})
	case *runtime.EventExceptionThrown:
		if e.ExceptionDetails == nil {
			return
		}
		text := e.ExceptionDetails.Text
		if ex := e.ExceptionDetails.Exception; ex != nil && ex.Description != "" {
			text = ex.Description
		}
		s.rec.Record(schema.TraceEventV1{Kind: trace.KindException, Text: text})
	case *network.EventRequestWillBeSent:
		s.net.start(string(e.RequestID))
		if e.Request != nil {
			s.rec.Record(schema.TraceEventV1{Kind: trace.KindRequest, Op: e.Request.Method, URL: e.Request.URL})
		}
	case *network.EventResponseReceived:
		if e.Response != nil {
			s.rec.Record(schema.TraceEventV1{Kind: trace.KindResponse, URL: e.Response.URL, Status: e.Response.Status})
		}
	case *network.EventLoadingFinished:
		s.net.done(string(e.RequestID))
	case *network.EventLoadingFailed:
		s.net.done(string(e.RequestID))
		s.rec.Record(schema.TraceEventV1{Kind: trace.KindLoadingFailed, Error: e.ErrorText})
	case *cdpage.EventLoadEventFired:
		s.rec.Record(schema.TraceEventV1{Kind: trace.KindLoad})
	}
}

type netTracker struct {
	mu       sync.Mutex
	inflight map[string]struct{}
	last     time.Time
}

func newNetTracker() *netTracker {
	return &netTracker{inflight: map[string]struct{}{}, last: time.Now()}
}

func (n *netTracker) start(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inflight[id] = struct{}{}
	n.last = time.Now()
}

func (n *netTracker) done(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.inflight, id)
	n.last = time.Now()
}

func (n *netTracker) idleFor(now time.Time, quiet time.Duration) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.inflight) == 0 && now.Sub(n.last) >= quiet
}
