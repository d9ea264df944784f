package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcohefti/singlish-lab/internal/store"
)

const (
	ConfigSchemaV1           = 1
	DefaultProjectConfigPath = "sgl.config.json"
)

type InitResult struct {
	OK         bool   `json:"ok"`
	ConfigPath string `json:"configPath"`
	OutRoot    string `json:"outRoot"`
	Created    bool   `json:"created"`
	// Problems lists settings in an existing config that would fail validation on the next run.
	Problems []string `json:"problems,omitempty"`
}

// InitProject writes a project config that spells out every default, so operators can
// edit selectors and timeouts without reading the source. An existing config is kept and
// checked instead.
func InitProject(configPath string, outRoot string) (*InitResult, error) {
	if strings.TrimSpace(configPath) == "" {
		configPath = DefaultProjectConfigPath
	}
	if strings.TrimSpace(outRoot) == "" {
		outRoot = DefaultOutRoot
	}
	res := &InitResult{OK: true, ConfigPath: configPath, OutRoot: outRoot}

	existing, ok, err := loadFile(configPath)
	switch {
	case err != nil:
		return nil, fmt.Errorf("%s: %w", configPath, err)
	case ok:
		if existing.OutRoot != "" && existing.OutRoot != outRoot {
			return nil, fmt.Errorf("existing config outRoot=%q does not match requested outRoot=%q", existing.OutRoot, outRoot)
		}
		m := Merged{Settings: Defaults(), Sources: map[string]string{}}
		m.applyFile(existing, configPath)
		if err := m.Settings.Validate(); err != nil {
			res.OK = false
			res.Problems = append(res.Problems, err.Error())
		}
	default:
		if err := store.WriteJSONAtomic(configPath, templateFile(outRoot)); err != nil {
			return nil, err
		}
		res.Created = true
	}

	if err := os.MkdirAll(filepath.Join(outRoot, "runs"), 0o755); err != nil {
		return nil, err
	}
	return res, nil
}

func templateFile(outRoot string) FileV1 {
	f := Defaults().File()
	f.OutRoot = outRoot
	return f
}
