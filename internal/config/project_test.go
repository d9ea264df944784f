package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestInitProject_CreatesConfigAndOutRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sgl.config.json")
	outRoot := filepath.Join(dir, ".sgl")

	res, err := InitProject(cfgPath, outRoot)
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	if !res.OK || !res.Created || len(res.Problems) != 0 {
		t.Fatalf("unexpected result: %+v", *res)
	}
	if _, err := os.Stat(filepath.Join(outRoot, "runs")); err != nil {
		t.Fatalf("missing runs dir: %v", err)
	}

	raw, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var cfg FileV1
	if err := json.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if cfg.SchemaVersion != ConfigSchemaV1 || cfg.OutRoot != outRoot {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TimeoutsMs == nil || cfg.TimeoutsMs.OutputWait == nil || *cfg.TimeoutsMs.OutputWait != 12000 {
		t.Fatalf("expected spelled-out timeouts, got %+v", cfg.TimeoutsMs)
	}
	if cfg.Selectors == nil || cfg.Selectors.InputPlaceholder != DefaultInputPlaceholder {
		t.Fatalf("expected spelled-out selectors, got %+v", cfg.Selectors)
	}
}

func TestInitProject_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sgl.config.json")
	outRoot := filepath.Join(dir, ".sgl")

	if _, err := InitProject(cfgPath, outRoot); err != nil {
		t.Fatalf("InitProject (first): %v", err)
	}
	res, err := InitProject(cfgPath, outRoot)
	if err != nil {
		t.Fatalf("InitProject (second): %v", err)
	}
	if !res.OK || res.Created {
		t.Fatalf("unexpected result: %+v", *res)
	}
}

func TestInitProject_ErrorsOnOutRootMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sgl.config.json")

	if _, err := InitProject(cfgPath, filepath.Join(dir, ".sgl-a")); err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	if _, err := InitProject(cfgPath, filepath.Join(dir, ".sgl-b")); err == nil {
		t.Fatalf("expected error on outRoot mismatch")
	}
}

func TestInitProject_ReportsInvalidExistingConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sgl.config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"schemaVersion":1,"workers":0}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := InitProject(cfgPath, filepath.Join(dir, ".sgl"))
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	if res.OK || res.Created || len(res.Problems) != 1 {
		t.Fatalf("expected a reported problem, got %+v", *res)
	}

	if err := os.WriteFile(cfgPath, []byte(`{"schemaVersion":7}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := InitProject(cfgPath, filepath.Join(dir, ".sgl")); err == nil {
		t.Fatalf("expected unsupported schemaVersion error")
	}
}
