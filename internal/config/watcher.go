package config

import (
	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/watch"
)

// ReloadFunc receives the freshly loaded configuration. On a parse error
// cfg holds the defaults and err is a *ParseError; callers normally keep
// their current configuration in that case.
type ReloadFunc func(cfg Config, err error)

// Watcher reloads a configuration file when it changes.
type Watcher struct {
	fs   FileSystem
	path string
	w    *watch.Watcher
	log  *zap.Logger
}

// Watch starts watching path through w and calls fn after each change.
func Watch(w *watch.Watcher, fs FileSystem, path string, fn ReloadFunc, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cw := &Watcher{fs: fs, path: path, w: w, log: log.Named("config")}

	err := w.Add(path, func(string) {
		cfg, err := Load(cw.fs, cw.path)
		if err != nil {
			cw.log.Warn("config reload failed", zap.String("path", cw.path), zap.Error(err))
		} else {
			cw.log.Info("config reloaded", zap.String("path", cw.path))
		}
		fn(cfg, err)
	})
	if err != nil {
		return nil, err
	}
	return cw, nil
}

// Path returns the watched file.
func (cw *Watcher) Path() string { return cw.path }

// Stop stops watching the file.
func (cw *Watcher) Stop() error {
	return cw.w.Remove(cw.path)
}
