package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Level is the severity of a log message.
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is the level of a logger made without WithLevel.
const DefaultLevel = LevelInfo

func (l Level) String() string { return slog.Level(l).String() }

// ParseLevel reads a level name such as "debug" or "WARN".
func ParseLevel(s string) (Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return DefaultLevel, fmt.Errorf("parse log level: %w", err)
	}
	return Level(l), nil
}

// Format is the encoding of log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the format of a logger made without WithFormat.
const DefaultFormat = FormatText

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat reads "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return DefaultFormat, fmt.Errorf("unknown log format %q", s)
}

// DefaultTimeLayout is the timestamp layout of a logger made without
// WithTimeLayout.
const DefaultTimeLayout = time.TimeOnly

type config struct {
	output     io.Writer
	level      Level
	format     Format
	timeLayout string
	pretty     bool
}

// Option changes one setting of a logger.
type Option func(config) config

func makeConfig(w io.Writer, opts ...Option) config {
	c := config{
		level:      DefaultLevel,
		format:     DefaultFormat,
		timeLayout: DefaultTimeLayout,
	}
	return apply(WithOutput(w)(c), opts...)
}

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}
	return c
}

// WithOutput sets the destination of log records. A nil writer discards
// them.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}
		c.output = w
		return c
	}
}

// WithLevel sets the minimum level written.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level
		return c
	}
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format
		return c
	}
}

// WithTimeLayout sets the layout of record timestamps. An empty layout
// omits them.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.timeLayout = layout
		return c
	}
}

// WithPretty selects the styled text handler for the text format.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable
		return c
	}
}

func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		Level: slog.Level(c.level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.TimeKey {
				return a
			}
			if c.timeLayout == "" {
				return slog.Attr{}
			}
			return slog.String(slog.TimeKey, a.Value.Time().Format(c.timeLayout))
		},
	}
	switch {
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case c.pretty:
		return newPrettyHandler(c.output, opts, c.timeLayout)
	}
	return slog.NewTextHandler(c.output, opts)
}
