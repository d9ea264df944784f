package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	home := filepath.Join(dir, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv("HOME", home)
	for _, k := range []string{"SGL_OUT_ROOT", "SGL_BASE_URL", "SGL_BROWSER", "SGL_HEADLESS", "SGL_WORKERS", "SGL_RETRIES", "SGL_SCREENSHOT", "SGL_TRACE"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeGlobal(t *testing.T, body string) {
	t.Helper()
	globalPath, err := DefaultGlobalConfigPath()
	if err != nil {
		t.Fatalf("DefaultGlobalConfigPath: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(globalPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(globalPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadMerged_PrecedenceFlagEnvProjectGlobalDefault(t *testing.T) {
	chdirTemp(t)

	// Default
	m, err := LoadMerged(Overrides{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if m.OutRoot != ".sgl" || m.Sources["outRoot"] != "default" {
		t.Fatalf("unexpected default: %+v", m)
	}

	// Global
	writeGlobal(t, `{"schemaVersion":1,"outRoot":".sgl-global"}`)
	m, err = LoadMerged(Overrides{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if m.OutRoot != ".sgl-global" {
		t.Fatalf("unexpected global: %+v", m)
	}

	// Project overrides global
	if err := os.WriteFile(DefaultProjectConfigPath, []byte(`{"schemaVersion":1,"outRoot":".sgl-project"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err = LoadMerged(Overrides{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if m.OutRoot != ".sgl-project" || m.Sources["outRoot"] != DefaultProjectConfigPath {
		t.Fatalf("unexpected project: %+v", m)
	}

	// Env overrides project
	t.Setenv("SGL_OUT_ROOT", ".sgl-env")
	m, err = LoadMerged(Overrides{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if m.OutRoot != ".sgl-env" || m.Sources["outRoot"] != "env:SGL_OUT_ROOT" {
		t.Fatalf("unexpected env: %+v", m)
	}

	// Flag overrides env
	m, err = LoadMerged(Overrides{OutRoot: ".sgl-flag"})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if m.OutRoot != ".sgl-flag" || m.Sources["outRoot"] != "flag" {
		t.Fatalf("unexpected flag: %+v", m)
	}
}

func TestLoadMerged_DefaultsMatchTheHostedPage(t *testing.T) {
	chdirTemp(t)

	m, err := LoadMerged(Overrides{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	want := DefaultTimeouts()
	if m.Timeouts != want {
		t.Fatalf("timeouts: got %+v want %+v", m.Timeouts, want)
	}
	if m.Timeouts.OutputWait != 12*time.Second || m.Timeouts.AfterClear != time.Second || m.Timeouts.Translation != 3*time.Second {
		t.Fatalf("unexpected protocol timeouts: %+v", m.Timeouts)
	}
	if m.BaseURL != DefaultBaseURL || m.InputPlaceholder != DefaultInputPlaceholder || m.OutputSelector != DefaultOutputSelector {
		t.Fatalf("unexpected target: %+v", m.Settings)
	}
	if m.Workers != 1 || m.Retries != 1 || !m.Headless {
		t.Fatalf("unexpected execution defaults: %+v", m.Settings)
	}
}

func TestLoadMerged_ProjectTimeoutsAndSelectors(t *testing.T) {
	chdirTemp(t)

	body := `{"schemaVersion":1,"timeoutsMs":{"outputWait":500,"betweenTests":0},"selectors":{"output":"#out"},"viewport":{"width":320,"height":480},"workers":3}`
	if err := os.WriteFile(DefaultProjectConfigPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := LoadMerged(Overrides{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if m.Timeouts.OutputWait != 500*time.Millisecond || m.Timeouts.BetweenTests != 0 {
		t.Fatalf("unexpected timeouts: %+v", m.Timeouts)
	}
	// Unset keys keep their defaults.
	if m.Timeouts.AfterClear != time.Second {
		t.Fatalf("afterClear should keep default, got %v", m.Timeouts.AfterClear)
	}
	if m.OutputSelector != "#out" || m.InputPlaceholder != DefaultInputPlaceholder {
		t.Fatalf("unexpected selectors: %+v", m.Settings)
	}
	if m.Viewport != (Viewport{Width: 320, Height: 480}) || m.Workers != 3 {
		t.Fatalf("unexpected settings: %+v", m.Settings)
	}
}

func TestLoadMerged_EnvAndFlagsForExecution(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SGL_HEADLESS", "false")
	t.Setenv("SGL_WORKERS", "2")
	t.Setenv("SGL_TRACE", "on")
	m, err := LoadMerged(Overrides{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if m.Headless || m.Workers != 2 || m.Trace != TraceOn {
		t.Fatalf("unexpected env merge: %+v", m.Settings)
	}

	headless := true
	retries := 0
	m, err = LoadMerged(Overrides{Headless: &headless, Retries: &retries, Screenshot: "off"})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if !m.Headless || m.Retries != 0 || m.Screenshot != ScreenshotOff || m.Sources["retries"] != "flag" {
		t.Fatalf("unexpected flag merge: %+v", m)
	}
}

func TestLoadMerged_RejectsInvalidValues(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SGL_WORKERS", "many")
	if _, err := LoadMerged(Overrides{}); err == nil {
		t.Fatalf("expected error for non-numeric SGL_WORKERS")
	}
	t.Setenv("SGL_WORKERS", "0")
	if _, err := LoadMerged(Overrides{}); err == nil {
		t.Fatalf("expected error for zero workers")
	}
	t.Setenv("SGL_WORKERS", "")

	if _, err := LoadMerged(Overrides{Trace: "sometimes"}); err == nil {
		t.Fatalf("expected error for invalid trace mode")
	}

	writeGlobal(t, `{"schemaVersion":2}`)
	if _, err := LoadMerged(Overrides{}); err == nil {
		t.Fatalf("expected error for unsupported schemaVersion")
	}
}
