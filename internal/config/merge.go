package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Merged carries the effective settings plus, per key, where the value came from.
type Merged struct {
	Settings

	// Sources is informational for operator UX/debugging (`sgl doctor`, `sgl config show`).
	Sources map[string]string
}

// Overrides are command-line values. Zero values (and nil pointers) mean "not set".
type Overrides struct {
	OutRoot    string
	BaseURL    string
	Browser    string
	Headless   *bool
	Workers    *int
	Retries    *int
	Screenshot string
	Trace      string
}

func DefaultGlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sgl", "config.json"), nil
}

// FileV1 is shared by the project file (sgl.config.json) and the global file
// (~/.sgl/config.json). Every key is optional.
type FileV1 struct {
	SchemaVersion int          `json:"schemaVersion"`
	OutRoot       string       `json:"outRoot,omitempty"`
	BaseURL       string       `json:"baseUrl,omitempty"`
	Browser       string       `json:"browser,omitempty"`
	Headless      *bool        `json:"headless,omitempty"`
	Workers       *int         `json:"workers,omitempty"`
	Retries       *int         `json:"retries,omitempty"`
	Selectors     *SelectorsV1 `json:"selectors,omitempty"`
	TimeoutsMs    *TimeoutsV1  `json:"timeoutsMs,omitempty"`
	Viewport      *Viewport    `json:"viewport,omitempty"`
	Screenshot    string       `json:"screenshot,omitempty"`
	Trace         string       `json:"trace,omitempty"`
}

type SelectorsV1 struct {
	InputPlaceholder string `json:"inputPlaceholder,omitempty"`
	Output           string `json:"output,omitempty"`
	InputControl     string `json:"inputControl,omitempty"`
}

type TimeoutsV1 struct {
	PageLoad     *int64 `json:"pageLoad,omitempty"`
	AfterClear   *int64 `json:"afterClear,omitempty"`
	Translation  *int64 `json:"translation,omitempty"`
	BetweenTests *int64 `json:"betweenTests,omitempty"`
	OutputWait   *int64 `json:"outputWait,omitempty"`
	Navigation   *int64 `json:"navigation,omitempty"`
	Test         *int64 `json:"test,omitempty"`
}

func LoadMerged(flags Overrides) (Merged, error) {
	// Precedence:
	// 1) CLI flags
	// 2) env vars (SGL_*)
	// 3) project config (sgl.config.json)
	// 4) global config (~/.sgl/config.json)
	// 5) defaults
	res := Merged{Settings: Defaults(), Sources: map[string]string{}}
	for _, k := range sourceKeys {
		res.Sources[k] = "default"
	}

	globalPath, err := DefaultGlobalConfigPath()
	if err != nil {
		return Merged{}, err
	}
	if g, ok, err := loadFile(globalPath); err != nil {
		return Merged{}, fmt.Errorf("global config: %w", err)
	} else if ok {
		res.applyFile(g, globalPath)
	}
	if p, ok, err := loadFile(DefaultProjectConfigPath); err != nil {
		return Merged{}, fmt.Errorf("project config: %w", err)
	} else if ok {
		res.applyFile(p, DefaultProjectConfigPath)
	}
	if err := res.applyEnv(); err != nil {
		return Merged{}, err
	}
	if err := res.applyFlags(flags); err != nil {
		return Merged{}, err
	}
	if err := res.Settings.Validate(); err != nil {
		return Merged{}, err
	}
	return res, nil
}

var sourceKeys = []string{
	"outRoot", "baseUrl", "browser", "headless", "workers", "retries",
	"selectors", "timeouts", "viewport", "screenshot", "trace",
}

func loadFile(path string) (FileV1, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileV1{}, false, nil
		}
		return FileV1{}, false, err
	}
	var cfg FileV1
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return FileV1{}, false, err
	}
	if cfg.SchemaVersion != ConfigSchemaV1 {
		return FileV1{}, false, fmt.Errorf("unsupported schemaVersion=%d", cfg.SchemaVersion)
	}
	return cfg, true, nil
}

func (m *Merged) applyFile(f FileV1, src string) {
	s := &m.Settings
	if v := strings.TrimSpace(f.OutRoot); v != "" {
		s.OutRoot, m.Sources["outRoot"] = v, src
	}
	if v := strings.TrimSpace(f.BaseURL); v != "" {
		s.BaseURL, m.Sources["baseUrl"] = v, src
	}
	if v := strings.TrimSpace(f.Browser); v != "" {
		s.Browser, m.Sources["browser"] = strings.ToLower(v), src
	}
	if f.Headless != nil {
		s.Headless, m.Sources["headless"] = *f.Headless, src
	}
	if f.Workers != nil {
		s.Workers, m.Sources["workers"] = *f.Workers, src
	}
	if f.Retries != nil {
		s.Retries, m.Sources["retries"] = *f.Retries, src
	}
	if sel := f.Selectors; sel != nil {
		if v := strings.TrimSpace(sel.InputPlaceholder); v != "" {
			s.InputPlaceholder = v
		}
		if v := strings.TrimSpace(sel.Output); v != "" {
			s.OutputSelector = v
		}
		if v := strings.TrimSpace(sel.InputControl); v != "" {
			s.InputControl = v
		}
		m.Sources["selectors"] = src
	}
	if t := f.TimeoutsMs; t != nil {
		setMs(&s.Timeouts.PageLoad, t.PageLoad)
		setMs(&s.Timeouts.AfterClear, t.AfterClear)
		setMs(&s.Timeouts.Translation, t.Translation)
		setMs(&s.Timeouts.BetweenTests, t.BetweenTests)
		setMs(&s.Timeouts.OutputWait, t.OutputWait)
		setMs(&s.Timeouts.Navigation, t.Navigation)
		setMs(&s.Timeouts.Test, t.Test)
		m.Sources["timeouts"] = src
	}
	if f.Viewport != nil {
		s.Viewport, m.Sources["viewport"] = *f.Viewport, src
	}
	if v := strings.TrimSpace(f.Screenshot); v != "" {
		s.Screenshot, m.Sources["screenshot"] = ScreenshotMode(strings.ToLower(v)), src
	}
	if v := strings.TrimSpace(f.Trace); v != "" {
		s.Trace, m.Sources["trace"] = TraceMode(strings.ToLower(v)), src
	}
}

func setMs(dst *time.Duration, ms *int64) {
	if ms != nil {
		*dst = time.Duration(*ms) * time.Millisecond
	}
}

func (m *Merged) applyEnv() error {
	s := &m.Settings
	if v := strings.TrimSpace(os.Getenv("SGL_OUT_ROOT")); v != "" {
		s.OutRoot, m.Sources["outRoot"] = v, "env:SGL_OUT_ROOT"
	}
	if v := strings.TrimSpace(os.Getenv("SGL_BASE_URL")); v != "" {
		s.BaseURL, m.Sources["baseUrl"] = v, "env:SGL_BASE_URL"
	}
	if v := strings.TrimSpace(os.Getenv("SGL_BROWSER")); v != "" {
		s.Browser, m.Sources["browser"] = strings.ToLower(v), "env:SGL_BROWSER"
	}
	if v := strings.TrimSpace(os.Getenv("SGL_HEADLESS")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SGL_HEADLESS=%q: %w", v, err)
		}
		s.Headless, m.Sources["headless"] = b, "env:SGL_HEADLESS"
	}
	for _, e := range []struct {
		name string
		key  string
		dst  *int
	}{
		{"SGL_WORKERS", "workers", &s.Workers},
		{"SGL_RETRIES", "retries", &s.Retries},
	} {
		v := strings.TrimSpace(os.Getenv(e.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", e.name, v, err)
		}
		*e.dst, m.Sources[e.key] = n, "env:"+e.name
	}
	if v := strings.TrimSpace(os.Getenv("SGL_SCREENSHOT")); v != "" {
		mode, err := ParseScreenshotMode(v)
		if err != nil {
			return fmt.Errorf("SGL_SCREENSHOT: %w", err)
		}
		s.Screenshot, m.Sources["screenshot"] = mode, "env:SGL_SCREENSHOT"
	}
	if v := strings.TrimSpace(os.Getenv("SGL_TRACE")); v != "" {
		mode, err := ParseTraceMode(v)
		if err != nil {
			return fmt.Errorf("SGL_TRACE: %w", err)
		}
		s.Trace, m.Sources["trace"] = mode, "env:SGL_TRACE"
	}
	return nil
}

func (m *Merged) applyFlags(f Overrides) error {
	s := &m.Settings
	if v := strings.TrimSpace(f.OutRoot); v != "" {
		s.OutRoot, m.Sources["outRoot"] = v, "flag"
	}
	if v := strings.TrimSpace(f.BaseURL); v != "" {
		s.BaseURL, m.Sources["baseUrl"] = v, "flag"
	}
	if v := strings.TrimSpace(f.Browser); v != "" {
		s.Browser, m.Sources["browser"] = strings.ToLower(v), "flag"
	}
	if f.Headless != nil {
		s.Headless, m.Sources["headless"] = *f.Headless, "flag"
	}
	if f.Workers != nil {
		s.Workers, m.Sources["workers"] = *f.Workers, "flag"
	}
	if f.Retries != nil {
		s.Retries, m.Sources["retries"] = *f.Retries, "flag"
	}
	if v := strings.TrimSpace(f.Screenshot); v != "" {
		mode, err := ParseScreenshotMode(v)
		if err != nil {
			return err
		}
		s.Screenshot, m.Sources["screenshot"] = mode, "flag"
	}
	if v := strings.TrimSpace(f.Trace); v != "" {
		mode, err := ParseTraceMode(v)
		if err != nil {
			return err
		}
		s.Trace, m.Sources["trace"] = mode, "flag"
	}
	return nil
}
