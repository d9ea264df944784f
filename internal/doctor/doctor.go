package doctor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/engines"
	"github.com/marcohefti/singlish-lab/internal/history"
	"github.com/marcohefti/singlish-lab/internal/page"
)

type Check struct {
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type Result struct {
	OK      bool              `json:"ok"`
	OutRoot string            `json:"outRoot"`
	BaseURL string            `json:"baseUrl"`
	Checks  []Check           `json:"checks"`
	Sources map[string]string `json:"sources,omitempty"`
}

type Options struct {
	Overrides config.Overrides
	// ChromePath is an explicit browser binary; empty searches PATH.
	ChromePath string
	// Offline skips the base URL probe.
	Offline bool
	Client  *http.Client
}

func (r *Result) add(c Check) {
	if !c.OK {
		r.OK = false
	}
	r.Checks = append(r.Checks, c)
}

// Run reports whether a suite run could start here. Only a config that fails to load is
// returned as an error; everything else is a failing check.
func Run(ctx context.Context, opts Options) (Result, error) {
	m, err := config.LoadMerged(opts.Overrides)
	if err != nil {
		return Result{}, err
	}
	s := m.Settings
	res := Result{OK: true, OutRoot: s.OutRoot, BaseURL: s.BaseURL, Sources: m.Sources}

	// Write access: create and remove a temp file under outRoot.
	if err := os.MkdirAll(filepath.Join(s.OutRoot, "runs"), 0o755); err != nil {
		res.add(Check{ID: "write_access", OK: false, Message: err.Error()})
	} else {
		tmp := filepath.Join(s.OutRoot, ".doctor.tmp")
		if err := os.WriteFile(tmp, []byte("ok\n"), 0o644); err != nil {
			res.add(Check{ID: "write_access", OK: false, Message: err.Error()})
		} else {
			_ = os.Remove(tmp)
			res.add(Check{ID: "write_access", OK: true})
		}
	}

	if _, err := os.Stat(config.DefaultProjectConfigPath); err == nil {
		res.add(Check{ID: "project_config", OK: true, Message: config.DefaultProjectConfigPath})
	} else {
		res.add(Check{ID: "project_config", OK: true, Message: "missing (ok)"})
	}

	hist, err := history.Open(filepath.Join(s.OutRoot, history.FileName))
	if err != nil {
		res.add(Check{ID: "history_db", OK: false, Message: err.Error()})
	} else {
		_ = hist.Close()
		res.add(Check{ID: "history_db", OK: true})
	}

	if engines.IsSupported(s.Browser) {
		res.add(Check{ID: "engine", OK: true, Message: s.Browser})
	} else {
		res.add(Check{ID: "engine", OK: false, Message: (&engines.UnsupportedError{Name: s.Browser}).Error()})
	}

	if p, ok := page.FindChrome(opts.ChromePath); ok {
		res.add(Check{ID: "chrome_binary", OK: true, Message: p})
	} else if opts.ChromePath != "" {
		res.add(Check{ID: "chrome_binary", OK: false, Message: "not found: " + opts.ChromePath})
	} else {
		res.add(Check{ID: "chrome_binary", OK: false, Message: "no chromium/chrome binary on PATH (set SGL_CHROME_PATH)"})
	}

	if opts.Offline {
		res.add(Check{ID: "base_url", OK: true, Message: "skipped (offline)"})
	} else {
		res.add(probe(ctx, opts.Client, s.BaseURL, s.Timeouts.Navigation))
	}
	return res, nil
}

func probe(ctx context.Context, client *http.Client, url string, timeout time.Duration) Check {
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Check{ID: "base_url", OK: false, Message: err.Error()}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Check{ID: "base_url", OK: false, Message: err.Error()}
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Check{ID: "base_url", OK: false, Message: fmt.Sprintf("%s returned %s", url, resp.Status)}
	}
	return Check{ID: "base_url", OK: true, Message: fmt.Sprintf("%s (%d)", url, resp.StatusCode)}
}
