package vfs

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemFS implements FS using an in-memory file system.
// It is primarily used for testing.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile
}

type memFile struct {
	content  []byte
	readOnly bool
	modTime  time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memFile)}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

func (m *MemFS) cleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Read reads the entire file content.
func (m *MemFS) Read(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	f, ok := m.files[filePath]
	if !ok {
		if m.isDirLocked(filePath) {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: errIsDir}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	// Return a copy to prevent modification
	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// Write writes data to a file, creating it if necessary.
func (m *MemFS) Write(filePath string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if m.isDirLocked(filePath) {
		return &fs.PathError{Op: "write", Path: filePath, Err: errIsDir}
	}
	f, ok := m.files[filePath]
	if ok && f.readOnly {
		return &fs.PathError{Op: "write", Path: filePath, Err: fs.ErrPermission}
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[filePath] = &memFile{content: content, modTime: time.Now()}
	return nil
}

// SetReadOnly marks an existing file read-only or writable.
func (m *MemFS) SetReadOnly(filePath string, readOnly bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.files[m.cleanPath(filePath)]; ok {
		f.readOnly = readOnly
	}
}

// Remove deletes a file.
func (m *MemFS) Remove(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if _, ok := m.files[filePath]; !ok {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	delete(m.files, filePath)
	return nil
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	if _, ok := m.files[filePath]; ok {
		return true
	}
	return m.isDirLocked(filePath)
}

// IsDirectory returns true if the path is a directory. Directories exist
// implicitly as parents of files.
func (m *MemFS) IsDirectory(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isDirLocked(m.cleanPath(filePath))
}

func (m *MemFS) isDirLocked(dir string) bool {
	if dir == "/" {
		return true
	}
	prefix := dir + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// IsReadOnly returns true if the file was marked read-only.
func (m *MemFS) IsReadOnly(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[m.cleanPath(filePath)]
	return ok && f.readOnly
}

// Canonical returns the cleaned absolute path.
func (m *MemFS) Canonical(filePath string) string {
	return m.cleanPath(filePath)
}

// Equivalent returns true if both paths clean to the same name.
func (m *MemFS) Equivalent(a, b string) bool {
	return m.cleanPath(a) == m.cleanPath(b)
}

// ScanDirectory visits files and implied directories below dir.
func (m *MemFS) ScanDirectory(dir string, fn ScanFunc) error {
	m.mu.RLock()
	dir = m.cleanPath(dir)
	if !m.isDirLocked(dir) {
		m.mu.RUnlock()
		return &fs.PathError{Op: "scan", Path: dir, Err: fs.ErrNotExist}
	}
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	m.mu.RUnlock()

	sort.Strings(paths)
	m.scan(dir, paths, fn)
	return nil
}

func (m *MemFS) scan(dir string, paths []string, fn ScanFunc) bool {
	prefix := dir + "/"
	if dir == "/" {
		prefix = "/"
	}

	var children []string
	isDir := make(map[string]bool)
	for _, p := range paths {
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok || rest == "" {
			continue
		}
		name, _, nested := strings.Cut(rest, "/")
		child := prefix + name
		if _, seen := isDir[child]; !seen {
			children = append(children, child)
		}
		isDir[child] = isDir[child] || nested
	}

	for _, child := range children {
		recurse, more := fn(child, isDir[child])
		if !more {
			return false
		}
		if recurse && isDir[child] && !m.scan(child, paths, fn) {
			return false
		}
	}
	return true
}
