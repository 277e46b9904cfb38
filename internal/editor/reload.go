package editor

import (
	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/marker"
)

// reload is a change reported by the watcher. The watcher calls back on
// its own goroutine, so changes are queued and applied by ProcessReloads
// on the session's goroutine.
type reload struct {
	path   string
	config bool
	cfg    config.Config
	err    error
}

func (s *Session) queue(r reload) {
	select {
	case s.reloads <- r:
	default:
		s.log.Warn("reload queue full, dropping change", zap.String("path", r.path))
	}
}

func (s *Session) watchBuffer(b *buffer.Buffer) {
	path := b.FilePath()
	if s.watcher == nil || path == "" || !s.fs.Exists(path) {
		return
	}
	if err := s.watcher.Add(path, func(string) { s.queue(reload{path: path}) }); err != nil {
		s.log.Debug("not watching", zap.String("path", path), zap.Error(err))
	}
}

func (s *Session) unwatchBuffer(b *buffer.Buffer) {
	path := b.FilePath()
	if s.watcher != nil && path != "" && s.watcher.IsWatching(path) {
		_ = s.watcher.Remove(path)
	}
}

// LoadConfig reads the configuration file at path and applies it. A
// missing file applies the defaults.
func (s *Session) LoadConfig(path string) error {
	if s.fs == nil {
		return ErrNoFileSystem
	}
	cfg, err := config.Load(s.fs, path)
	if err != nil {
		return err
	}
	s.configPath = path
	return s.ApplyConfig(cfg)
}

// WatchConfig loads the configuration file at path and applies it again
// whenever it changes. It needs a watcher.
func (s *Session) WatchConfig(path string) error {
	if err := s.LoadConfig(path); err != nil {
		return err
	}
	if s.watcher == nil {
		return nil
	}
	if s.cfgWatch != nil {
		_ = s.cfgWatch.Stop()
	}
	cw, err := config.Watch(s.watcher, s.fs, path, func(cfg config.Config, err error) {
		s.queue(reload{path: path, config: true, cfg: cfg, err: err})
	}, s.log)
	if err != nil {
		return err
	}
	s.cfgWatch = cw
	return nil
}

// ProcessReloads applies the file and config changes seen since the last
// call and returns how many it applied. Hosts call it from their event
// loop.
func (s *Session) ProcessReloads() int {
	n := 0
	for {
		select {
		case r := <-s.reloads:
			if s.apply(r) {
				n++
			}
		default:
			return n
		}
	}
}

func (s *Session) apply(r reload) bool {
	if s.closed {
		return false
	}
	if r.config {
		if r.err != nil {
			s.SetCommandText(r.err.Error())
			return false
		}
		return s.ApplyConfig(r.cfg) == nil
	}

	b := s.findFileBuffer(r.path)
	if b == nil {
		return false
	}
	if b.TestFlags(buffer.FlagDirty) {
		s.SetCommandText("File changed on disk: " + b.DisplayName())
		return false
	}

	disk := buffer.New(buffer.WithFileSystem(s.fs), buffer.WithTabWidth(s.cfg.Editor.TabWidth))
	if err := disk.Load(r.path); err != nil {
		s.log.Warn("reload failed", zap.String("path", r.path), zap.Error(err))
		return false
	}
	if disk.Text() == b.Text() {
		return false
	}

	if err := b.Load(r.path); err != nil {
		s.log.Warn("reload failed", zap.String("path", r.path), zap.Error(err))
		return false
	}
	if h, ok := s.histories[b.ID()]; ok {
		h.Clear()
	}
	if idx, ok := s.markers[b.ID()]; ok {
		idx.Clear(marker.TypeAll)
	}
	for _, w := range s.windows {
		if w.buf == b {
			w.SetCursor(w.cursor)
		}
	}
	s.log.Info("buffer reloaded", zap.String("path", b.FilePath()))
	s.events.Broadcast(Message{Kind: BufferReloaded, Buffer: b})
	return true
}
