package vim

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Name is the registry name of the Vim mode.
const Name = "Vim"

// Settings tune the Vim mode.
type Settings struct {
	// ShowNormalModeKeyStrokes echoes partial commands on the command line.
	ShowNormalModeKeyStrokes bool

	// InsertEscape is a two-key sequence that leaves Insert mode, "" for
	// none. The second key must follow within InsertEscapeTimeout.
	InsertEscape        string
	InsertEscapeTimeout time.Duration

	// ShiftWidth is the number of spaces added by > and removed by <.
	ShiftWidth int
	// TabWidth is the number of spaces Tab inserts.
	TabWidth int
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		InsertEscape:        "jk",
		InsertEscapeTimeout: 250 * time.Millisecond,
		ShiftWidth:          4,
		TabWidth:            4,
	}
}

// Option configures a Vim mode.
type Option func(*Vim)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(v *Vim) {
		v.settings = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(v *Vim) {
		v.log = l
	}
}

// WithClock sets the time source for the insert escape timeout.
func WithClock(now func() time.Time) Option {
	return func(v *Vim) {
		v.now = now
	}
}

// Vim is the Vim editing mode.
type Vim struct {
	mode.Base

	settings Settings
	log      *zap.Logger
	now      func() time.Time
	parser   *Parser

	// Selection anchor and line-wise flag of Visual mode.
	anchor     buffer.Location
	visualLine bool

	// goalColumn is the display column j and k aim for, -1 when unset.
	goalColumn int

	lastFind struct {
		ch  byte
		id  MotionID
		set bool
	}
	lastSearch    string
	lastSearchDir buffer.Direction

	// Insert session state.
	inserted     strings.Builder
	insertCount  int
	insertOpened bool
	escapeAt     time.Time
	escapeLoc   buffer.Location

	// Dot repeat.
	pendingChange *Command
	lastChange    *Command
	lastInserted  string
	replaying     bool

	// Ex command line.
	exPrefix rune
	exText   []rune
	exStart  buffer.Location
}

var _ mode.Mode = (*Vim)(nil)

// New returns a Vim mode editing through host.
func New(host mode.Host, opts ...Option) *Vim {
	v := &Vim{
		settings:   DefaultSettings(),
		now:        time.Now,
		parser:     NewParser(),
		goalColumn: -1,
		escapeLoc:  buffer.InvalidLocation,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	v.log = v.log.Named("vim")
	v.Base = mode.NewBase(host, v.log)
	return v
}

// Name returns "Vim".
func (v *Vim) Name() string { return Name }

// Settings returns the active settings.
func (v *Vim) Settings() Settings { return v.settings }

// SetSettings replaces the settings.
func (v *Vim) SetSettings(s Settings) { v.settings = s }

// Begin enters Normal mode with a fresh parser.
func (v *Vim) Begin() {
	v.parser.Reset()
	v.pendingChange = nil
	v.SwitchMode(mode.Normal)
	if buf := v.Buffer(); buf != nil {
		v.SetCursor(buf.ClampToVisibleLine(v.Cursor()))
	}
}

// SetEditorMode switches mode, running the entry and exit work of each.
func (v *Vim) SetEditorMode(m mode.EditorMode) {
	v.SwitchMode(m)
}

// AddCommandText feeds keys written in key notation.
func (v *Vim) AddCommandText(text string) (mode.Result, error) {
	return mode.FeedKeys(v, text)
}

// AddKeyPress handles one key.
func (v *Vim) AddKeyPress(ev key.Event) mode.Result {
	if v.Window() == nil || v.Buffer() == nil {
		return mode.Result{}
	}
	if handled, more := v.HandleGlobalCommand(ev); handled {
		return mode.Result{NeedMoreChars: more}
	}

	switch v.EditorMode() {
	case mode.Insert:
		v.handleInsert(ev)
		return mode.Result{}
	case mode.Ex:
		v.handleEx(ev)
		return mode.Result{}
	case mode.None:
		v.SwitchMode(mode.Normal)
	}
	return v.handleNormal(ev)
}

// SwitchMode leaves the current editor mode and enters m.
func (v *Vim) SwitchMode(m mode.EditorMode) {
	from := v.EditorMode()
	if from == m && m != mode.Visual {
		return
	}

	switch from {
	case mode.Insert:
		v.endInsert()
	case mode.Visual:
		if m != mode.Visual {
			v.Buffer().ClearSelection()
			v.parser.SetVisual(false)
		}
	}

	v.Base.SetEditorMode(m)

	switch m {
	case mode.Normal:
		v.Host().SetCommandText("")
	case mode.Insert:
		v.beginInsert()
	case mode.Visual:
		if from != mode.Visual {
			v.anchor = v.Cursor()
		}
		v.parser.SetVisual(true)
		v.updateVisual()
	case mode.Ex:
		v.exText = v.exText[:0]
		v.exStart = v.Cursor()
		v.Host().SetCommandText(string(v.exPrefix))
	}
}

// handleNormal runs Normal and Visual mode keys through the parser.
func (v *Vim) handleNormal(ev key.Event) mode.Result {
	if ev.IsEscape() {
		v.parser.Reset()
		v.Host().SetCommandText("")
		if v.EditorMode() == mode.Visual {
			v.SwitchMode(mode.Normal)
		}
		return mode.Result{}
	}

	ev = specialToKey(ev)
	res := v.parser.Parse(ev)
	switch res.Status {
	case StatusPending:
		if v.settings.ShowNormalModeKeyStrokes {
			v.Host().SetCommandText(res.PendingDisplay)
		}
		return mode.Result{NeedMoreChars: true}
	case StatusComplete:
		if v.settings.ShowNormalModeKeyStrokes {
			v.Host().SetCommandText("")
		}
		v.execute(res.Command)
	case StatusInvalid:
		v.log.Debug("invalid sequence", zap.Stringer("key", ev))
		if v.settings.ShowNormalModeKeyStrokes {
			v.Host().SetCommandText("")
		}
	}
	return mode.Result{}
}

// specialToKey maps special keys to the Normal mode keys they act as.
func specialToKey(ev key.Event) key.Event {
	if ev.Modifiers != key.ModNone {
		return ev
	}
	var r rune
	switch ev.Key {
	case key.KeyLeft, key.KeyBackspace:
		r = 'h'
	case key.KeyRight:
		r = 'l'
	case key.KeyUp:
		r = 'k'
	case key.KeyDown, key.KeyEnter:
		r = 'j'
	case key.KeyHome:
		r = '0'
	case key.KeyEnd:
		r = '$'
	case key.KeyDelete:
		r = 'x'
	default:
		return ev
	}
	return key.Event{Key: key.KeyRune, Rune: r, Timestamp: ev.Timestamp}
}
