// Package log is the structured logger of the rtc tools, a thin layer over
// log/slog configured with functional options.
//
//	log.Config(log.WithLevel(log.LevelDebug), log.WithPretty(true))
//	log.Info("compiled", slog.String("file", name))
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is a slog.Logger that remembers the options it was made with.
type Logger struct {
	*slog.Logger
	config
}

// Make returns a Logger writing to w.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)
	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Wrap returns a copy of l with opts applied on top of its options.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := apply(l.config, opts...)
	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Level returns the minimum level l writes.
func (l Logger) Level() Level { return l.level }

var defaultLog atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	defaultLog.Store(&l)
}

// Default returns the package logger.
func Default() Logger { return *defaultLog.Load() }

// Config replaces the package logger with one that has opts applied.
func Config(opts ...Option) {
	l := Default().Wrap(opts...)
	defaultLog.Store(&l)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func Debug(msg string, attrs ...slog.Attr) { DebugContext(context.Background(), msg, attrs...) }

func Info(msg string, attrs ...slog.Attr) { InfoContext(context.Background(), msg, attrs...) }

func Warn(msg string, attrs ...slog.Attr) { WarnContext(context.Background(), msg, attrs...) }

func Error(msg string, attrs ...slog.Attr) { ErrorContext(context.Background(), msg, attrs...) }
