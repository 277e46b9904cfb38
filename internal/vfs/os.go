package vfs

import (
	"os"
	"path/filepath"
)

// OSFS implements FS using the operating system's file system.
type OSFS struct{}

// NewOSFS creates a new OS file system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Ensure OSFS implements FS.
var _ FS = (*OSFS)(nil)

// Read reads the entire file content.
func (f *OSFS) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Write writes data to a file, keeping the mode of an existing file.
func (f *OSFS) Write(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, data, perm)
}

// Exists returns true if the path exists.
func (f *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory returns true if the path is a directory.
func (f *OSFS) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsReadOnly returns true if the file exists without any write bit.
func (f *OSFS) IsReadOnly(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o222 == 0
}

// Canonical returns the absolute path with symlinks resolved.
func (f *OSFS) Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// Equivalent returns true if both paths name the same file.
func (f *OSFS) Equivalent(a, b string) bool {
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(ia, ib)
	}
	return f.Canonical(a) == f.Canonical(b)
}

// ScanDirectory walks dir using os.ReadDir.
func (f *OSFS) ScanDirectory(dir string, fn ScanFunc) error {
	_, err := f.scan(dir, fn)
	return err
}

func (f *OSFS) scan(dir string, fn ScanFunc) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		recurse, more := fn(p, e.IsDir())
		if !more {
			return false, nil
		}
		if recurse && e.IsDir() {
			more, err := f.scan(p, fn)
			if err != nil || !more {
				return more, err
			}
		}
	}
	return true, nil
}
