package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting outside its allowed values.
	ErrInvalidValue = errors.New("invalid setting")

	// ErrNoFileSystem indicates Load or Save was called without a file system.
	ErrNoFileSystem = errors.New("no file system")
)

// FileSystem is the file access configuration needs.
type FileSystem interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
	Exists(path string) bool
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line and Column locate the error when the decoder reports it.
	Line   int
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads path. A missing file returns Default. Keys absent from the
// file keep their default values.
func Load(fs FileSystem, path string) (Config, error) {
	if fs == nil {
		return Default(), ErrNoFileSystem
	}
	if !fs.Exists(path) {
		return Default(), nil
	}
	data, err := fs.Read(path)
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML data over the defaults and validates the result.
// source names the data in errors.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return Default(), perr
	}
	if err := cfg.Validate(); err != nil {
		return Default(), &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(fs FileSystem, path string, cfg Config) error {
	if fs == nil {
		return ErrNoFileSystem
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := fs.Write(path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
