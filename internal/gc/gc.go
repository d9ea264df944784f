// Package gc prunes finished run directories under <outRoot>/runs. The newest run is
// never deleted so `sgl report` always has something to render.
package gc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/ids"
	"github.com/marcohefti/singlish-lab/internal/report"
	"github.com/marcohefti/singlish-lab/internal/schema"
)

type RunInfo struct {
	RunID     string    `json:"runId"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
	Finished  bool      `json:"finished"`
	Bytes     int64     `json:"bytes"`
}

type Result struct {
	OK          bool      `json:"ok"`
	OutRoot     string    `json:"outRoot"`
	DryRun      bool      `json:"dryRun"`
	Deleted     []RunInfo `json:"deleted,omitempty"`
	Kept        []RunInfo `json:"kept,omitempty"`
	Errors      []string  `json:"errors,omitempty"`
	TotalBefore int64     `json:"totalBeforeBytes"`
	TotalAfter  int64     `json:"totalAfterBytes"`
}

type Opts struct {
	OutRoot       string
	Now           time.Time
	MaxAgeDays    int
	KeepRuns      int
	MaxTotalBytes int64
	DryRun        bool
}

// Run applies the three limits in order: age, run count, then total size (oldest first).
// Runs that never wrote an exitCode are kept unless they are older than MaxAgeDays; they
// may still be in progress.
func Run(opts Opts) (Result, error) {
	outRoot := opts.OutRoot
	if outRoot == "" {
		outRoot = config.DefaultOutRoot
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	runsDir := filepath.Join(outRoot, "runs")
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{OK: true, OutRoot: outRoot, DryRun: opts.DryRun}, nil
		}
		return Result{}, err
	}

	var runs []RunInfo
	for _, e := range entries {
		if !e.IsDir() || !ids.IsValidRunID(e.Name()) {
			continue
		}
		runDir := filepath.Join(runsDir, e.Name())
		raw, err := os.ReadFile(filepath.Join(runDir, report.RunFile))
		if err != nil {
			continue
		}
		var meta schema.RunJSONV1
		if err := json.Unmarshal(raw, &meta); err != nil {
			continue
		}
		if meta.SchemaVersion != schema.ArtifactSchemaV1 || meta.ArtifactLayoutVersion != schema.ArtifactLayoutVersionV1 {
			continue
		}
		createdAt, err := time.Parse(time.RFC3339Nano, meta.CreatedAt)
		if err != nil {
			createdAt, _ = time.Parse(time.RFC3339, meta.CreatedAt)
		}
		size, _ := dirSize(runDir)
		runs = append(runs, RunInfo{
			RunID:     e.Name(),
			Path:      runDir,
			CreatedAt: createdAt,
			Finished:  meta.ExitCode != nil,
			Bytes:     size,
		})
	}

	// Run ids sort by start time.
	sort.Slice(runs, func(i, j int) bool { return runs[i].RunID < runs[j].RunID })

	var total int64
	for _, r := range runs {
		total += r.Bytes
	}
	res := Result{OK: true, OutRoot: outRoot, DryRun: opts.DryRun, TotalBefore: total, TotalAfter: total}
	if len(runs) == 0 {
		return res, nil
	}
	newest := runs[len(runs)-1].RunID

	shouldDelete := make(map[string]bool)
	if opts.MaxAgeDays > 0 {
		cutoff := now.Add(-time.Duration(opts.MaxAgeDays) * 24 * time.Hour)
		for _, r := range runs {
			if r.RunID != newest && !r.CreatedAt.IsZero() && r.CreatedAt.Before(cutoff) {
				shouldDelete[r.RunID] = true
			}
		}
	}

	if opts.KeepRuns > 0 {
		finished := 0
		for i := len(runs) - 1; i >= 0; i-- {
			r := runs[i]
			if !r.Finished {
				continue
			}
			finished++
			if finished > opts.KeepRuns {
				shouldDelete[r.RunID] = true
			}
		}
	}

	remaining := total
	for _, r := range runs {
		if shouldDelete[r.RunID] {
			remaining -= r.Bytes
		}
	}
	if opts.MaxTotalBytes > 0 {
		for _, r := range runs {
			if remaining <= opts.MaxTotalBytes {
				break
			}
			if shouldDelete[r.RunID] || !r.Finished || r.RunID == newest {
				continue
			}
			shouldDelete[r.RunID] = true
			remaining -= r.Bytes
		}
	}

	for _, r := range runs {
		if !shouldDelete[r.RunID] {
			res.Kept = append(res.Kept, r)
			continue
		}
		if !opts.DryRun {
			if err := os.RemoveAll(r.Path); err != nil {
				res.OK = false
				res.Errors = append(res.Errors, err.Error())
				res.Kept = append(res.Kept, r)
				continue
			}
		}
		res.Deleted = append(res.Deleted, r)
		res.TotalAfter -= r.Bytes
	}
	return res, nil
}

func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
