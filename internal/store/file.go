package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// WriteFileAtomic writes b to a sibling temp file and swaps it into place, so readers of
// run artifacts never observe a half-written report.
func WriteFileAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp-%d", path, time.Now().UnixNano())
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(tmp)
	}()

	if _, err := f.Write(b); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return replaceFile(tmp, path)
}

// CopyFile copies src into dst (atomically on the destination side). Used to bundle
// failure screenshots and traces into the html report directory.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	b, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	return WriteFileAtomic(dst, b)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
