// Package config holds the editor settings and loads them from TOML.
//
// A missing file yields Default. A malformed file yields a *ParseError and
// callers keep whatever configuration they had. Watcher reloads the file
// when it changes on disk.
//
//	cfg, err := config.Load(fs, "/home/me/.config/modalcore/zep.toml")
//	if err != nil {
//	    // show err, keep the old config
//	}
//	tab := cfg.Editor.TabWidth
package config

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap/zapcore"
)

// Font size limits, matching the Ctrl+= and Ctrl+- bindings.
const (
	MinFontSize = 10.0
	MaxFontSize = 20.0
)

// Config is the full settings tree.
type Config struct {
	Editor  Editor  `toml:"editor"`
	Vim     Vim     `toml:"vim"`
	Undo    Undo    `toml:"undo"`
	Markers Markers `toml:"markers"`
	Log     Log     `toml:"log"`
}

// Editor holds display and buffer settings.
type Editor struct {
	ShowIndicatorRegion   bool    `toml:"show_indicator_region"`
	ShowLineNumbers       bool    `toml:"show_line_numbers"`
	AutoHideCommandRegion bool    `toml:"autohide_command_region"`
	CursorLineSolid       bool    `toml:"cursor_line_solid"`
	BackgroundFadeTime    float64 `toml:"background_fade_time"`
	BackgroundFadeWait    float64 `toml:"background_fade_wait"`
	ShowScrollBar         int     `toml:"show_scrollbar"`
	LineMarginTop         float64 `toml:"line_margin_top"`
	LineMarginBottom      float64 `toml:"line_margin_bottom"`
	WidgetMarginTop       float64 `toml:"widget_margin_top"`
	WidgetMarginBottom    float64 `toml:"widget_margin_bottom"`
	ShortTabNames         bool    `toml:"short_tab_names"`
	Style                 string  `toml:"style"`

	// TabWidth is the number of spaces a tab becomes on load.
	TabWidth int     `toml:"tab_width"`
	FontSize float64 `toml:"font_size"`
}

// Style values.
const (
	StyleNormal  = "normal"
	StyleMinimal = "minimal"
)

// Vim holds the modal engine settings.
type Vim struct {
	ShowNormalModeKeyStrokes bool `toml:"show_normal_mode_keystrokes"`

	// InsertEscape is a two-key sequence that leaves Insert mode. Empty
	// disables it.
	InsertEscape        string   `toml:"insert_escape"`
	InsertEscapeTimeout Duration `toml:"insert_escape_timeout"`
}

// Undo bounds the history.
type Undo struct {
	// MaxEntries is the undo depth. Zero means unlimited.
	MaxEntries int `toml:"max_entries"`
}

// Markers holds marker colors as hex strings.
type Markers struct {
	MessageColor string `toml:"message_color"`
	SearchColor  string `toml:"search_color"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
	// File is the log file. Empty logs to stderr.
	File string `toml:"file"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: Editor{
			ShowIndicatorRegion: true,
			ShowLineNumbers:     true,
			CursorLineSolid:     true,
			BackgroundFadeTime:  60,
			BackgroundFadeWait:  60,
			ShowScrollBar:       1,
			LineMarginTop:       1,
			LineMarginBottom:    1,
			WidgetMarginTop:     1,
			WidgetMarginBottom:  1,
			Style:               StyleNormal,
			TabWidth:            4,
			FontSize:            14,
		},
		Vim: Vim{
			InsertEscape:        "jk",
			InsertEscapeTimeout: Duration{250 * time.Millisecond},
		},
		Undo: Undo{MaxEntries: 1000},
		Markers: Markers{
			MessageColor: "#ff5555",
			SearchColor:  "#ffd75f",
		},
		Log: Log{Level: "info"},
	}
}

// Validate checks values that cannot be clamped into range.
func (c Config) Validate() error {
	switch c.Editor.Style {
	case StyleNormal, StyleMinimal:
	default:
		return fmt.Errorf("%w: editor.style %q", ErrInvalidValue, c.Editor.Style)
	}
	if c.Editor.TabWidth < 0 {
		return fmt.Errorf("%w: editor.tab_width %d", ErrInvalidValue, c.Editor.TabWidth)
	}
	if c.Undo.MaxEntries < 0 {
		return fmt.Errorf("%w: undo.max_entries %d", ErrInvalidValue, c.Undo.MaxEntries)
	}
	if n := len([]rune(c.Vim.InsertEscape)); n != 0 && n != 2 {
		return fmt.Errorf("%w: vim.insert_escape %q must be two keys", ErrInvalidValue, c.Vim.InsertEscape)
	}
	if c.Vim.InsertEscapeTimeout.Duration < 0 {
		return fmt.Errorf("%w: vim.insert_escape_timeout %s", ErrInvalidValue, c.Vim.InsertEscapeTimeout)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, _, err := c.Markers.Colors(); err != nil {
		return err
	}
	return nil
}

// ClampedFontSize returns the font size limited to [MinFontSize, MaxFontSize].
func (e Editor) ClampedFontSize() float64 {
	return min(max(e.FontSize, MinFontSize), MaxFontSize)
}

// LogLevel parses Log.Level. An empty level is Info.
func (c Config) LogLevel() (zapcore.Level, error) {
	if c.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: log.level %q", ErrInvalidValue, c.Log.Level)
	}
	return lvl, nil
}

// Colors parses the marker colors.
func (m Markers) Colors() (message, search colorful.Color, err error) {
	message, err = colorful.Hex(m.MessageColor)
	if err != nil {
		return message, search, fmt.Errorf("%w: markers.message_color %q", ErrInvalidValue, m.MessageColor)
	}
	search, err = colorful.Hex(m.SearchColor)
	if err != nil {
		return message, search, fmt.Errorf("%w: markers.search_color %q", ErrInvalidValue, m.SearchColor)
	}
	return message, search, nil
}
