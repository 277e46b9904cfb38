// Package editor assembles the engine into an editing session.
//
// A Session owns everything that would otherwise be global: the buffers
// with their histories and marker indexes, the registers, the mode
// registry, the notification buses and the configuration. It implements
// mode.Host so the input modes edit through it, and several sessions can
// live side by side in one process.
//
//	s, err := editor.New(editor.WithFileSystem(vfs.NewOSFS()))
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if _, err := s.InitWithFileOrDir("main.go"); err != nil {
//	    return err
//	}
//	s.AddCommandText("dwjp")
package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/marker"
	"github.com/dshills/modalcore/internal/event"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/register"
	"github.com/dshills/modalcore/internal/input/standard"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/vfs"
	"github.com/dshills/modalcore/internal/watch"
)

// DefaultBufferName names the scratch buffer every session starts with.
const DefaultBufferName = "[Default]"

// Errors returned by Session.
var (
	ErrNoFileSystem = errors.New("session has no file system")
	ErrNoAlternate  = errors.New("no alternate file")
	ErrClosed       = errors.New("session is closed")
)

// Session is one editor instance.
type Session struct {
	log *zap.Logger
	fs  vfs.FS
	cfg config.Config

	regs  *register.Store
	modes *mode.Registry
	vim   *vim.Vim
	std   *standard.Standard

	bus    *event.Bus[buffer.Message]
	events *event.Bus[Message]

	// buffers is in most recently created order.
	buffers   []*buffer.Buffer
	histories map[uuid.UUID]*history.History
	markers   map[uuid.UUID]*marker.Index

	windows []*Window
	active  int

	workingDir  string
	commandText string
	fontSize    float64
	quit        bool
	closed      bool

	watcher    *watch.Watcher
	ownWatcher bool
	reloads    chan reload
	configPath string
	cfgWatch   *config.Watcher
}

var _ mode.Host = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFileSystem sets the file system buffers load from and save to.
func WithFileSystem(fs vfs.FS) Option {
	return func(s *Session) {
		s.fs = fs
	}
}

// WithConfig sets the initial configuration.
func WithConfig(cfg config.Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithClipboard proxies the + and * registers to c.
func WithClipboard(c register.ClipboardProvider) Option {
	return func(s *Session) {
		s.regs.SetClipboard(c)
	}
}

// WithWatcher reloads loaded files and the config file through w when
// they change on disk. The session does not close w.
func WithWatcher(w *watch.Watcher) Option {
	return func(s *Session) {
		s.watcher = w
	}
}

// WithFileWatching creates and owns a watcher as WithWatcher would.
func WithFileWatching() Option {
	return func(s *Session) {
		s.ownWatcher = true
	}
}

// New creates a session showing an empty scratch buffer in Vim mode.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		log:       zap.NewNop(),
		cfg:       config.Default(),
		regs:      register.New(),
		bus:       event.NewBus[buffer.Message](),
		events:    event.NewBus[Message](),
		histories: make(map[uuid.UUID]*history.History),
		markers:   make(map[uuid.UUID]*marker.Index),
		reloads:   make(chan reload, 64),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	s.log = s.log.Named("editor")
	s.fontSize = s.cfg.Editor.ClampedFontSize()

	if s.ownWatcher && s.watcher == nil {
		w, err := watch.New(watch.WithLogger(s.log))
		if err != nil {
			return nil, fmt.Errorf("starting file watcher: %w", err)
		}
		s.watcher = w
	} else {
		s.ownWatcher = false
	}

	s.bus.Subscribe(s.colorSearchMarkers)

	s.modes = mode.NewRegistry(s.log)
	s.vim = vim.New(s, vim.WithLogger(s.log), vim.WithSettings(vimSettings(s.cfg)))
	s.std = standard.New(s, standard.WithLogger(s.log), standard.WithTabWidth(s.cfg.Editor.TabWidth))
	s.modes.RegisterGlobalMode(s.vim)
	s.modes.RegisterGlobalMode(s.std)

	def := s.NewBuffer(DefaultBufferName)
	def.SetFlags(buffer.FlagDefaultBuffer)
	s.windows = []*Window{newWindow(def)}

	if err := s.modes.SetGlobalMode(vim.Name); err != nil {
		return nil, err
	}
	return s, nil
}

func vimSettings(cfg config.Config) vim.Settings {
	st := vim.DefaultSettings()
	st.ShowNormalModeKeyStrokes = cfg.Vim.ShowNormalModeKeyStrokes
	st.InsertEscape = cfg.Vim.InsertEscape
	st.InsertEscapeTimeout = cfg.Vim.InsertEscapeTimeout.Duration
	if cfg.Editor.TabWidth > 0 {
		st.TabWidth = cfg.Editor.TabWidth
		st.ShiftWidth = cfg.Editor.TabWidth
	}
	return st
}

// Config returns the active configuration.
func (s *Session) Config() config.Config { return s.cfg }

// ApplyConfig makes cfg the active configuration. Existing buffers keep
// their text; new buffers, histories and the modes pick up the settings.
func (s *Session) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.vim.SetSettings(vimSettings(cfg))
	s.SetFontSize(cfg.Editor.FontSize)
	s.log.Info("config applied")
	s.events.Broadcast(Message{Kind: ConfigChanged})
	return nil
}

// Registers returns the register store.
func (s *Session) Registers() *register.Store { return s.regs }

// Modes returns the mode registry.
func (s *Session) Modes() *mode.Registry { return s.modes }

// Vim returns the Vim mode.
func (s *Session) Vim() *vim.Vim { return s.vim }

// Mode returns the active mode.
func (s *Session) Mode() mode.Mode { return s.modes.Current() }

// SetGlobalMode activates the mode called name.
func (s *Session) SetGlobalMode(name string) error {
	return s.modes.SetGlobalMode(name)
}

// Bus returns the bus buffer messages are broadcast on.
func (s *Session) Bus() *event.Bus[buffer.Message] { return s.bus }

// Events returns the bus session messages are broadcast on.
func (s *Session) Events() *event.Bus[Message] { return s.events }

// AddKeyPress delivers ev to the active mode.
func (s *Session) AddKeyPress(ev key.Event) mode.Result {
	m := s.modes.Current()
	if m == nil || s.closed {
		return mode.Result{}
	}
	return m.AddKeyPress(ev)
}

// AddCommandText feeds keys written in key notation to the active mode.
func (s *Session) AddCommandText(text string) (mode.Result, error) {
	m := s.modes.Current()
	if m == nil || s.closed {
		return mode.Result{}, ErrClosed
	}
	return m.AddCommandText(text)
}

// CommandText returns the status line text.
func (s *Session) CommandText() string { return s.commandText }

// SetCommandText shows text on the status line.
func (s *Session) SetCommandText(text string) {
	s.commandText = text
	s.events.Broadcast(Message{Kind: CommandTextChanged, Text: text})
}

// FontSize returns the font point size.
func (s *Session) FontSize() float64 { return s.fontSize }

// SetFontSize changes the font point size, clamped to the config limits.
func (s *Session) SetFontSize(size float64) {
	size = min(max(size, config.MinFontSize), config.MaxFontSize)
	if size == s.fontSize {
		return
	}
	s.fontSize = size
	s.events.Broadcast(Message{Kind: FontSizeChanged})
}

// OpenSearch asks the host to show its search UI.
func (s *Session) OpenSearch() {
	s.events.Broadcast(Message{Kind: SearchRequested})
}

// QuitRequested returns true once the last window has been quit.
func (s *Session) QuitRequested() bool { return s.quit }

// Close stops file watching and marks the session closed. The errors of
// each step are combined.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.cfgWatch != nil {
		err = multierr.Append(err, s.cfgWatch.Stop())
	}
	if s.watcher != nil {
		for _, b := range s.buffers {
			if b.FilePath() != "" && s.watcher.IsWatching(b.FilePath()) {
				err = multierr.Append(err, s.watcher.Remove(b.FilePath()))
			}
		}
		if s.ownWatcher {
			err = multierr.Append(err, s.watcher.Close())
		}
	}
	s.log.Debug("session closed", zap.Error(err))
	return err
}
