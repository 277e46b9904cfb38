package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/dshills/modalcore/internal/vfs"
	"github.com/dshills/modalcore/internal/watch"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Vim.InsertEscape != "jk" || cfg.Vim.InsertEscapeTimeout.Duration != 250*time.Millisecond {
		t.Errorf("Vim = %+v", cfg.Vim)
	}
	if cfg.Undo.MaxEntries != 1000 {
		t.Errorf("MaxEntries = %d", cfg.Undo.MaxEntries)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(vfs.NewMemFS(), "/none.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	fs := vfs.NewMemFS()
	_ = fs.Write("/zep.toml", []byte(`
[editor]
tab_width = 8
style = "minimal"

[vim]
insert_escape = ""
insert_escape_timeout = "1s"

[log]
level = "debug"
`))

	cfg, err := Load(fs, "/zep.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.TabWidth != 8 || cfg.Editor.Style != StyleMinimal {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	if !cfg.Editor.ShowLineNumbers {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Vim.InsertEscape != "" || cfg.Vim.InsertEscapeTimeout.Duration != time.Second {
		t.Errorf("Vim = %+v", cfg.Vim)
	}
	if lvl, _ := cfg.LogLevel(); lvl != zapcore.DebugLevel {
		t.Errorf("LogLevel() = %v", lvl)
	}
}

func TestLoadParseError(t *testing.T) {
	fs := vfs.NewMemFS()
	_ = fs.Write("/bad.toml", []byte("[editor]\ntab_width = = 3\n"))

	cfg, err := Load(fs, "/bad.toml")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" || perr.Line != 2 {
		t.Errorf("ParseError = %+v, want path /bad.toml line 2", perr)
	}
	if !strings.Contains(perr.Error(), "line 2") {
		t.Errorf("Error() = %q", perr.Error())
	}
	if cfg != Default() {
		t.Error("failed load should return defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"style", func(c *Config) { c.Editor.Style = "fancy" }},
		{"tab width", func(c *Config) { c.Editor.TabWidth = -1 }},
		{"undo", func(c *Config) { c.Undo.MaxEntries = -5 }},
		{"escape length", func(c *Config) { c.Vim.InsertEscape = "j" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"marker color", func(c *Config) { c.Markers.SearchColor = "yellow" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Validate() error = %v, want ErrInvalidValue", err)
			}
		})
	}
}

func TestInvalidValueIsParseError(t *testing.T) {
	_, err := Parse("inline", []byte("[editor]\nstyle = \"fancy\"\n"))
	var perr *ParseError
	if !errors.As(err, &perr) || !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Parse() error = %v, want ParseError wrapping ErrInvalidValue", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	fs := vfs.NewMemFS()
	cfg := Default()
	cfg.Editor.FontSize = 16
	cfg.Vim.ShowNormalModeKeyStrokes = true
	cfg.Vim.InsertEscapeTimeout = Duration{500 * time.Millisecond}
	cfg.Log.File = "/tmp/zep.log"

	if err := Save(fs, "/zep.toml", cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, _ := fs.Read("/zep.toml")
	if !strings.Contains(string(data), `insert_escape_timeout = '500ms'`) &&
		!strings.Contains(string(data), `insert_escape_timeout = "500ms"`) {
		t.Errorf("saved file lacks the duration string:\n%s", data)
	}

	got, err := Load(fs, "/zep.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestClampedFontSize(t *testing.T) {
	tests := []struct {
		size, want float64
	}{
		{14, 14},
		{2, MinFontSize},
		{40, MaxFontSize},
	}
	for _, tt := range tests {
		e := Editor{FontSize: tt.size}
		if got := e.ClampedFontSize(); got != tt.want {
			t.Errorf("ClampedFontSize(%v) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestMarkerColors(t *testing.T) {
	msg, search, err := Default().Markers.Colors()
	if err != nil {
		t.Fatalf("Colors() error = %v", err)
	}
	if msg.Hex() != "#ff5555" || search.Hex() != "#ffd75f" {
		t.Errorf("Colors() = %s, %s", msg.Hex(), search.Hex())
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zep.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := watch.New(watch.WithDelay(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("watch.New() error = %v", err)
	}
	defer w.Close()

	reloaded := make(chan Config, 4)
	cw, err := Watch(w, vfs.NewOSFS(), path, func(cfg Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	}, nil)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer cw.Stop()

	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Editor.TabWidth != 6 {
			t.Errorf("reloaded TabWidth = %d, want 6", cfg.Editor.TabWidth)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
