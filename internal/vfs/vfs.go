// Package vfs provides the file system abstraction used at buffer load and
// save time.
//
// The FS interface allows swapping the underlying implementation, so tests
// run against an in-memory file system while hosts use the OS.
package vfs

// FS is a file system as seen by the editor core.
type FS interface {
	// Read returns the whole content of path.
	Read(path string) ([]byte, error)

	// Write replaces the content of path, creating it if necessary.
	Write(path string, data []byte) error

	// Exists returns true if the path exists.
	Exists(path string) bool

	// IsDirectory returns true if the path is a directory.
	IsDirectory(path string) bool

	// IsReadOnly returns true if the file exists and cannot be written.
	IsReadOnly(path string) bool

	// Canonical returns the absolute, cleaned path with links resolved.
	// Paths that cannot be resolved are returned cleaned.
	Canonical(path string) string

	// Equivalent returns true if both paths name the same file.
	Equivalent(a, b string) bool

	// ScanDirectory visits the entries of dir in name order.
	ScanDirectory(dir string, fn ScanFunc) error
}

// ScanFunc is called for each entry found by ScanDirectory. Returning
// recurse descends into a directory entry; returning more=false stops the
// whole scan.
type ScanFunc func(path string, isDir bool) (recurse, more bool)
