//go:build !windows

package store

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// replaceFile renames tmpPath over finalPath and fsyncs the parent so the new entry survives
// a crash.
func replaceFile(tmpPath, finalPath string) error {
	if err := unix.Rename(tmpPath, finalPath); err != nil {
		return &os.LinkError{Op: "rename", Old: tmpPath, New: finalPath, Err: err}
	}
	dir, err := os.Open(filepath.Dir(finalPath))
	if err != nil {
		return nil
	}
	_ = unix.Fsync(int(dir.Fd()))
	_ = dir.Close()
	return nil
}
