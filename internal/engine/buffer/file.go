package buffer

import (
	"bytes"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSystem is the file access a buffer needs at load and save time.
type FileSystem interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
	Exists(path string) bool
	IsDirectory(path string) bool
	Canonical(path string) string
	Equivalent(a, b string) bool
}

// FilePath returns the path the buffer loads from and saves to.
func (b *Buffer) FilePath() string {
	return b.path
}

// SetFilePath changes the buffer's path. Existing paths are canonicalized;
// an equivalent path leaves the stored one untouched.
func (b *Buffer) SetFilePath(path string) {
	if b.fs == nil {
		b.path = path
		return
	}
	if b.fs.Exists(path) {
		path = b.fs.Canonical(path)
	}
	if b.path == "" || !b.fs.Equivalent(path, b.path) {
		b.path = path
	}
}

// Load reads path into the buffer. A missing file leaves the buffer cleared
// with the path remembered, so a later Save creates it.
func (b *Buffer) Load(path string) error {
	if b.fs == nil {
		return ErrNoFileSystem
	}

	if base := filepath.Base(path); base != "." && base != string(filepath.Separator) {
		b.name = base
	} else {
		b.name = path
	}

	if !b.fs.Exists(path) {
		b.Clear()
		b.path = path
		b.log.Debug("load missing file", zap.String("path", path))
		return nil
	}

	b.path = b.fs.Canonical(path)
	data, err := b.fs.Read(path)
	if err != nil {
		b.Clear()
		return fmt.Errorf("load %s: %w", path, err)
	}
	if len(data) > 0 {
		b.SetText(string(data), true)
	} else {
		b.Clear()
		b.ClearFlags(FlagDirty)
	}

	b.log.Debug("loaded",
		zap.String("path", b.path),
		zap.Int("bytes", len(data)),
		zap.Stringer("flags", b.flags))
	return nil
}

// Save writes the buffer to its path. Locked and read-only buffers are
// refused. Line endings stripped on load are restored and the appended
// sentinel is not written. It returns the number of bytes written.
func (b *Buffer) Save() (int, error) {
	if b.TestFlags(FlagLocked) {
		return 0, ErrLocked
	}
	if b.TestFlags(FlagReadOnly) {
		return 0, ErrReadOnly
	}
	if b.fs == nil {
		return 0, ErrNoFileSystem
	}
	if b.path == "" {
		return 0, ErrNoPath
	}

	data := b.text.Bytes()
	if b.TestFlags(FlagStrippedCR) {
		data = bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n"))
	}

	size := len(data)
	if b.TestFlags(FlagTerminatedWithZero) {
		size--
	}
	size = max(size, 0)

	if err := b.fs.Write(b.path, data[:size]); err != nil {
		return 0, fmt.Errorf("save %s: %w", b.path, err)
	}
	b.ClearFlags(FlagDirty)

	b.log.Debug("saved", zap.String("path", b.path), zap.Int("bytes", size))
	return size, nil
}
