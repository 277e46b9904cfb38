package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/marker"
)

// Buffers returns the open buffers, most recently created first.
func (s *Session) Buffers() []*buffer.Buffer {
	return slices.Clone(s.buffers)
}

// NewBuffer creates an empty buffer called name.
func (s *Session) NewBuffer(name string) *buffer.Buffer {
	opts := []buffer.Option{
		buffer.WithName(name),
		buffer.WithTabWidth(s.cfg.Editor.TabWidth),
		buffer.WithNotifier(s.bus),
		buffer.WithLogger(s.log),
	}
	if s.fs != nil {
		opts = append(opts, buffer.WithFileSystem(s.fs))
	}
	b := buffer.New(opts...)
	s.buffers = slices.Insert(s.buffers, 0, b)
	s.events.Broadcast(Message{Kind: BufferOpened, Buffer: b})
	return b
}

// FileBuffer returns the buffer for path. A buffer whose path is
// equivalent is reused; otherwise a new one is loaded. A missing file
// gives an empty buffer that Save creates.
func (s *Session) FileBuffer(path string) (*buffer.Buffer, error) {
	if s.fs == nil {
		return nil, ErrNoFileSystem
	}
	if s.fs.Exists(path) {
		path = s.fs.Canonical(path)
	}
	if b := s.findFileBuffer(path); b != nil {
		return b, nil
	}

	b := s.NewBuffer(filepath.Base(path))
	if err := b.Load(path); err != nil {
		s.RemoveBuffer(b)
		return nil, err
	}
	if s.fs.IsReadOnly(b.FilePath()) {
		b.SetFlags(buffer.FlagReadOnly)
	}
	s.watchBuffer(b)
	s.log.Debug("file buffer", zap.String("path", b.FilePath()))
	return b, nil
}

// OpenFile returns the buffer for path, loading it if needed.
func (s *Session) OpenFile(path string) (*buffer.Buffer, error) {
	return s.FileBuffer(path)
}

func (s *Session) findFileBuffer(path string) *buffer.Buffer {
	for _, b := range s.buffers {
		if b.FilePath() != "" && s.fs.Equivalent(b.FilePath(), path) {
			return b
		}
	}
	return nil
}

// InitWithText shows a new buffer called name holding text in the active
// window.
func (s *Session) InitWithText(name, text string) *buffer.Buffer {
	b := s.NewBuffer(name)
	b.SetText(text, false)
	s.show(b)
	return b
}

// InitWithFileOrDir opens path. A directory becomes the working directory
// and leaves the scratch buffer in view; a file is loaded and shown in the
// active window.
func (s *Session) InitWithFileOrDir(path string) (*buffer.Buffer, error) {
	if s.fs == nil {
		return nil, ErrNoFileSystem
	}
	if s.fs.IsDirectory(path) {
		s.workingDir = s.fs.Canonical(path)
		return s.ActiveBuffer(), nil
	}
	b, err := s.FileBuffer(path)
	if err != nil {
		return nil, err
	}
	s.show(b)
	s.workingDir = filepath.Dir(b.FilePath())
	return b, nil
}

// WorkingDirectory returns the directory the session was opened on.
func (s *Session) WorkingDirectory() string { return s.workingDir }

// show puts b in the active window, dropping an untouched scratch buffer
// it replaces.
func (s *Session) show(b *buffer.Buffer) {
	w := s.ActiveWindow()
	if w == nil {
		s.Split(b)
		return
	}
	prev := w.buf
	w.SetBuffer(b)
	if prev != b && isUntouchedDefault(prev) {
		s.RemoveBuffer(prev)
	}
	s.events.Broadcast(Message{Kind: WindowChanged, Buffer: b})
}

func isUntouchedDefault(b *buffer.Buffer) bool {
	return b != nil && b.TestFlags(buffer.FlagDefaultBuffer) &&
		!b.TestFlags(buffer.FlagDirty) && b.IsEmpty()
}

// RemoveBuffer forgets b with its history and markers. Windows showing b
// switch to the most recent other buffer, or a new scratch buffer.
func (s *Session) RemoveBuffer(b *buffer.Buffer) {
	i := slices.Index(s.buffers, b)
	if i < 0 {
		return
	}
	s.buffers = slices.Delete(s.buffers, i, i+1)
	delete(s.histories, b.ID())
	delete(s.markers, b.ID())
	s.unwatchBuffer(b)

	for _, w := range s.windows {
		w.forget(b)
		if w.buf != b {
			continue
		}
		if len(s.buffers) == 0 {
			def := s.NewBuffer(DefaultBufferName)
			def.SetFlags(buffer.FlagDefaultBuffer)
		}
		w.buf = nil
		w.SetBuffer(s.buffers[0])
	}
	s.events.Broadcast(Message{Kind: BufferRemoved, Buffer: b})
}

// SaveBuffer writes b to its file and reports the outcome on the status
// line.
func (s *Session) SaveBuffer(b *buffer.Buffer) (int, error) {
	n, err := b.Save()
	switch {
	case errors.Is(err, buffer.ErrReadOnly):
		s.SetCommandText("Failed to save, Read Only: " + b.DisplayName())
	case errors.Is(err, buffer.ErrLocked):
		s.SetCommandText("Failed to save, Locked: " + b.DisplayName())
	case errors.Is(err, buffer.ErrNoPath):
		s.SetCommandText("Error: No file name")
	case err != nil:
		s.SetCommandText("Failed to save: " + err.Error())
	default:
		s.SetCommandText(fmt.Sprintf("Wrote %s, %d bytes", b.FilePath(), n))
	}
	if err != nil {
		s.log.Warn("save failed", zap.String("buffer", b.DisplayName()), zap.Error(err))
	}
	return n, err
}

// History returns b's history, creating it on first use.
func (s *Session) History(b *buffer.Buffer) *history.History {
	h, ok := s.histories[b.ID()]
	if !ok {
		h = history.New(
			history.WithMaxEntries(s.cfg.Undo.MaxEntries),
			history.WithLogger(s.log),
		)
		s.histories[b.ID()] = h
	}
	return h
}

// Markers returns b's marker index, creating and tracking it on first use.
func (s *Session) Markers(b *buffer.Buffer) *marker.Index {
	idx, ok := s.markers[b.ID()]
	if !ok {
		idx = marker.NewIndex(b.NotifyMarkersChanged)
		b.AddTracker(idx)
		s.markers[b.ID()] = idx
	}
	return idx
}

// AddMessage marks r in b with a message marker in the configured color.
func (s *Session) AddMessage(b *buffer.Buffer, r buffer.Range, name, description string) marker.ID {
	m := marker.New(r, marker.TypeMessage)
	m.Name = name
	m.Description = description
	if msg, _, err := s.cfg.Markers.Colors(); err == nil {
		m.BackgroundColor = msg
		m.HighlightColor = msg
	}
	b.SetFlags(buffer.FlagHasErrors)
	return s.Markers(b).Add(m)
}

// colorSearchMarkers paints search hits in the configured color as the
// modes add them. It never consumes the message.
func (s *Session) colorSearchMarkers(msg buffer.Message) bool {
	if msg.Kind != buffer.MarkersChanged || msg.Buffer == nil {
		return false
	}
	idx, ok := s.markers[msg.Buffer.ID()]
	if !ok {
		return false
	}
	_, search, err := s.cfg.Markers.Colors()
	if err != nil {
		return false
	}
	idx.ForEach(marker.TypeSearch, buffer.Forward, 0, msg.Buffer.EndLocation(), func(m *marker.Marker) bool {
		m.BackgroundColor = search
		return true
	})
	return false
}
