package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ownerFile = "owner.json"
	// A browser run holds the history lock only for one batch insert.
	lockStaleAfter = 2 * time.Minute
	lockPoll       = 25 * time.Millisecond
)

// LockTimeoutError is returned when another sgl process keeps a dir lock past the wait budget.
type LockTimeoutError struct {
	LockDir string
	Wait    time.Duration
	// Owner describes the holder when its owner.json was readable.
	Owner string
}

func (e *LockTimeoutError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("timeout acquiring lock after %s: %s (held by %s)", e.Wait, e.LockDir, e.Owner)
	}
	return fmt.Sprintf("timeout acquiring lock after %s: %s", e.Wait, e.LockDir)
}

func IsLockTimeout(err error) bool {
	var lt *LockTimeoutError
	return errors.As(err, &lt)
}

// WithDirLock runs fn while holding lockDir. The lock is a directory created with Mkdir, so
// it works across processes on any filesystem that makes Mkdir atomic.
func WithDirLock(lockDir string, wait time.Duration, fn func() error) error {
	release, err := acquireDirLock(lockDir, wait, time.Now)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()
	return fn()
}

type lockOwner struct {
	V         int    `json:"v"`
	PID       int    `json:"pid"`
	Host      string `json:"host,omitempty"`
	StartedAt string `json:"startedAt"`
}

func (o lockOwner) String() string {
	if o.Host == "" {
		return fmt.Sprintf("pid %d since %s", o.PID, o.StartedAt)
	}
	return fmt.Sprintf("pid %d on %s since %s", o.PID, o.Host, o.StartedAt)
}

func readLockOwner(lockDir string) (lockOwner, bool) {
	raw, err := os.ReadFile(filepath.Join(lockDir, ownerFile))
	if err != nil {
		return lockOwner{}, false
	}
	var owner lockOwner
	if err := json.Unmarshal(raw, &owner); err != nil || owner.PID <= 0 {
		return lockOwner{}, false
	}
	return owner, true
}

// isStale reports whether a lock older than staleAfter may be broken. A live owner on this
// host keeps it; an owner on another host (shared out root) cannot be probed and only ages out.
func isStale(lockDir string, staleAfter time.Duration, now time.Time) bool {
	info, err := os.Stat(lockDir)
	if err != nil || now.Sub(info.ModTime()) <= staleAfter {
		return false
	}
	owner, ok := readLockOwner(lockDir)
	if !ok {
		return true
	}
	if host, _ := os.Hostname(); owner.Host != "" && owner.Host != host {
		return true
	}
	return !processAlive(owner.PID)
}

func acquireDirLock(lockDir string, wait time.Duration, now func() time.Time) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(lockDir), 0o755); err != nil {
		return nil, err
	}
	deadline := now().Add(wait)
	for {
		err := os.Mkdir(lockDir, 0o755)
		if err == nil {
			host, _ := os.Hostname()
			owner := lockOwner{V: 1, PID: os.Getpid(), Host: host, StartedAt: now().UTC().Format(time.RFC3339Nano)}
			if b, err := json.Marshal(owner); err == nil {
				_ = os.WriteFile(filepath.Join(lockDir, ownerFile), b, 0o644)
			}
			return func() error { return os.RemoveAll(lockDir) }, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}
		if isStale(lockDir, lockStaleAfter, now()) {
			_ = os.RemoveAll(lockDir)
			continue
		}
		if now().After(deadline) {
			lt := &LockTimeoutError{LockDir: lockDir, Wait: wait}
			if owner, ok := readLockOwner(lockDir); ok {
				lt.Owner = owner.String()
			}
			return nil, lt
		}
		time.Sleep(lockPoll)
	}
}
