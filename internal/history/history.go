// Package history keeps every fixture result across runs in a SQLite file under the out
// root, so flaky fixtures and changed renderings can be spotted between runs.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/marcohefti/singlish-lab/internal/runner"
)

const FileName = "history.db"

const schemaVersion = 2

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS runs (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL UNIQUE,
	started_at TEXT NOT NULL,
	base_url   TEXT NOT NULL,
	exit_code  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_seq     INTEGER NOT NULL REFERENCES runs(seq),
	fixture_id  TEXT NOT NULL,
	partition   TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	observed    TEXT NOT NULL,
	unobserved  INTEGER NOT NULL DEFAULT 0,
	attempts    INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	PRIMARY KEY (run_seq, fixture_id)
);
CREATE INDEX IF NOT EXISTS results_fixture ON results(fixture_id, run_seq);
`

type DB struct {
	db *sql.DB
}

// Open creates or opens the history database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	if err := checkVersion(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func checkVersion(db *sql.DB) error {
	var v int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		return err
	case err != nil:
		return err
	case v == 1:
		return migrateV1(db)
	case v != schemaVersion:
		return fmt.Errorf("history schema version %d is not supported (want %d)", v, schemaVersion)
	}
	return nil
}

// migrateV1 adds the unobserved flag; v1 rows all count as real renderings.
func migrateV1(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec("ALTER TABLE results ADD COLUMN unobserved INTEGER NOT NULL DEFAULT 0"); err != nil {
		return fmt.Errorf("migrate history schema: %w", err)
	}
	if _, err := tx.Exec("UPDATE schema_version SET version = ?", schemaVersion); err != nil {
		return err
	}
	return tx.Commit()
}

func (h *DB) Close() error { return h.db.Close() }

type Run struct {
	ID        string
	StartedAt time.Time
	BaseURL   string
	ExitCode  int
}

type Entry struct {
	FixtureID  string
	Partition  string
	Outcome    string
	Observed   string
	// Unobserved marks a final attempt that never read the output region (navigation or
	// browser failure, test timeout). Its empty Observed is not a rendering.
	Unobserved bool
	Attempts   int
	DurationMs int64
}

// Entries flattens a run report into one entry per fixture.
func Entries(rep runner.Report) []Entry {
	var out []Entry
	for _, g := range rep.Groups {
		for _, r := range g.Results {
			var dur time.Duration
			for _, a := range r.Attempts {
				dur += a.Duration
			}
			final, ok := r.Final()
			out = append(out, Entry{
				FixtureID:  r.Fixture.ID,
				Partition:  string(g.Partition),
				Outcome:    string(r.Outcome),
				Observed:   r.Observed(),
				Unobserved: ok && final.Err != "",
				Attempts:   len(r.Attempts),
				DurationMs: dur.Milliseconds(),
			})
		}
	}
	return out
}

// Record stores one run and its entries in a single transaction. Recording the same run id
// twice fails.
func (h *DB) Record(ctx context.Context, run Run, entries []Entry) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO runs (run_id, started_at, base_url, exit_code) VALUES (?, ?, ?, ?)",
		run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.BaseURL, run.ExitCode)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO results (run_seq, fixture_id, partition, outcome, observed, unobserved, attempts, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, seq, e.FixtureID, e.Partition, e.Outcome, e.Observed, e.Unobserved, e.Attempts, e.DurationMs); err != nil {
			return fmt.Errorf("record %s: %w", e.FixtureID, err)
		}
	}
	return tx.Commit()
}

// FixtureStats aggregates one fixture over every recorded run.
type FixtureStats struct {
	FixtureID string `json:"fixtureId"`
	Partition string `json:"partition"`
	Runs      int    `json:"runs"`
	// Passed counts passed and flaky; Failed counts failed, timedOut and fixed.
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Flaky   int `json:"flaky"`
	Tracked int `json:"tracked"`
	Skipped int `json:"skipped"`

	LastOutcome  string `json:"lastOutcome"`
	LastRunID    string `json:"lastRunId"`
	LastObserved string `json:"lastObserved"`
	// LastObserved and PrevObserved come from the last two runs that actually read the output
	// region; skipped and unobserved rows are passed over. Changed is set when they differ.
	PrevObserved string `json:"prevObserved,omitempty"`
	Changed      bool   `json:"changed"`
}

// Stats returns per-fixture aggregates sorted by fixture id. An empty ids slice means all
// fixtures.
func (h *DB) Stats(ctx context.Context, ids []string) ([]FixtureStats, error) {
	rows, err := h.db.QueryContext(ctx, `
SELECT r.fixture_id, r.partition, r.outcome, r.observed, r.unobserved, runs.run_id
FROM results r JOIN runs ON runs.seq = r.run_seq
ORDER BY r.fixture_id, r.run_seq DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}

	byID := map[string]*FixtureStats{}
	// rendered counts the rows seen so far per fixture that carry a real observation, newest first.
	rendered := map[string]int{}
	for rows.Next() {
		var id, partition, outcome, observed, runID string
		var unobserved bool
		if err := rows.Scan(&id, &partition, &outcome, &observed, &unobserved, &runID); err != nil {
			return nil, err
		}
		if len(want) > 0 && !want[id] {
			continue
		}
		st, ok := byID[id]
		if !ok {
			st = &FixtureStats{FixtureID: id, Partition: partition, LastOutcome: outcome, LastRunID: runID}
			byID[id] = st
		}
		st.Runs++
		switch runner.Outcome(outcome) {
		case runner.Passed:
			st.Passed++
		case runner.Flaky:
			st.Passed++
			st.Flaky++
		case runner.Tracked:
			st.Tracked++
		case runner.Skipped:
			st.Skipped++
		default:
			st.Failed++
		}
		if runner.Outcome(outcome) == runner.Skipped || unobserved {
			continue
		}
		switch rendered[id] {
		case 0:
			st.LastObserved = observed
		case 1:
			st.PrevObserved = observed
			st.Changed = observed != st.LastObserved
		}
		rendered[id]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]FixtureStats, 0, len(byID))
	for _, st := range byID {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FixtureID < out[j].FixtureID })
	return out, nil
}

type RunRow struct {
	RunID     string `json:"runId"`
	StartedAt string `json:"startedAt"`
	BaseURL   string `json:"baseUrl"`
	ExitCode  int    `json:"exitCode"`
	Fixtures  int    `json:"fixtures"`
}

// Runs lists the most recent runs, newest first.
func (h *DB) Runs(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx, `
SELECT runs.run_id, runs.started_at, runs.base_url, runs.exit_code, COUNT(r.fixture_id)
FROM runs LEFT JOIN results r ON r.run_seq = runs.seq
GROUP BY runs.seq
ORDER BY runs.seq DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		if err := rows.Scan(&rr.RunID, &rr.StartedAt, &rr.BaseURL, &rr.ExitCode, &rr.Fixtures); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
