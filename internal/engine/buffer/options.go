package buffer

import "go.uber.org/zap"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithTabWidth sets how many spaces replace a tab on SetText.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithName sets the buffer's short name.
func WithName(name string) Option {
	return func(b *Buffer) {
		b.name = name
	}
}

// WithType sets the buffer type.
func WithType(t Type) Option {
	return func(b *Buffer) {
		b.kind = t
	}
}

// WithFlags sets initial flags in addition to the defaults.
func WithFlags(f Flags) Option {
	return func(b *Buffer) {
		b.flags |= f
	}
}

// WithNotifier sets where buffer messages are broadcast.
func WithNotifier(n Notifier) Option {
	return func(b *Buffer) {
		b.notifier = n
	}
}

// WithTracker registers a range tracker.
func WithTracker(t RangeTracker) Option {
	return func(b *Buffer) {
		b.trackers = append(b.trackers, t)
	}
}

// WithFileSystem sets the file system used by Load, Save and SetFilePath.
func WithFileSystem(fs FileSystem) Option {
	return func(b *Buffer) {
		b.fs = fs
	}
}

// WithLogger sets the buffer's logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.log = l.Named("buffer")
		}
	}
}
