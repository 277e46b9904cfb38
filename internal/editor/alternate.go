package editor

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// alternateFolders are the sibling folders searched for an alternate file,
// in priority order.
var alternateFolders = []string{"source", "include", "src", "inc", "lib"}

// ignoredFolders are never descended into.
var ignoredFolders = map[string]bool{
	"build":   true,
	".git":    true,
	"obj":     true,
	"debug":   true,
	"release": true,
}

// alternateDepth is how many ancestors of the file's folder are searched.
const alternateDepth = 3

// SwapAlternate shows the file that shares the current file's stem with a
// different extension, such as the header of a source file. The current
// folder is searched first, then the well-known source folders beside it
// and beside its ancestors.
func (s *Session) SwapAlternate() error {
	w := s.ActiveWindow()
	if w == nil || s.fs == nil {
		return ErrNoAlternate
	}
	cur := w.buf.FilePath()
	if cur == "" || !s.fs.Exists(cur) {
		return ErrNoAlternate
	}

	path, ok := s.findAlternate(cur)
	if !ok {
		return ErrNoAlternate
	}
	b, err := s.FileBuffer(path)
	if err != nil {
		return err
	}
	s.log.Debug("alternate", zap.String("from", cur), zap.String("to", path))
	w.SetBuffer(b)
	s.events.Broadcast(Message{Kind: WindowChanged, Buffer: b})
	return nil
}

func (s *Session) findAlternate(path string) (string, bool) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	parent := filepath.Dir(path)

	searched := make(map[string]bool)
	root := parent
	for range alternateDepth {
		folders := []string{parent}
		for _, name := range alternateFolders {
			_ = s.fs.ScanDirectory(root, func(p string, isDir bool) (bool, bool) {
				if isDir && strings.ToLower(filepath.Base(p)) == name {
					folders = append(folders, p)
				}
				return false, true
			})
		}

		for _, dir := range folders {
			if searched[dir] {
				continue
			}
			searched[dir] = true
			if found, ok := s.scanForStem(dir, stem, ext); ok {
				return found, true
			}
		}

		next := filepath.Dir(root)
		if next == root {
			break
		}
		root = next
	}
	return "", false
}

// scanForStem searches dir and its subfolders for a file named stem with
// an extension other than ext.
func (s *Session) scanForStem(dir, stem, ext string) (string, bool) {
	var found string
	_ = s.fs.ScanDirectory(dir, func(p string, isDir bool) (bool, bool) {
		name := filepath.Base(p)
		if isDir {
			return !ignoredFolders[strings.ToLower(name)], true
		}
		e := filepath.Ext(name)
		if e != ext && strings.TrimSuffix(name, e) == stem {
			found = p
			return false, false
		}
		return false, true
	})
	return found, found != ""
}
