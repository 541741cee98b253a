// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"math"
	"os"
	"runtime"
	"sync/atomic"
	"time"
)

const (
	levelMaxVerbosity slog.Level = math.MinInt
	LevelTrace        slog.Level = -8
	LevelDebug                   = slog.LevelDebug
	LevelInfo                    = slog.LevelInfo
	LevelWarn                    = slog.LevelWarn
	LevelError                   = slog.LevelError
	LevelCrit         slog.Level = 12
)

// Legacy verbosity levels, as accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// FromLegacyLevel converts from old verbosity level to slog level.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case LegacyLevelCrit:
		return LevelCrit
	case LegacyLevelError:
		return slog.LevelError
	case LegacyLevelWarn:
		return slog.LevelWarn
	case LegacyLevelInfo:
		return slog.LevelInfo
	case LegacyLevelDebug:
		return slog.LevelDebug
	case LegacyLevelTrace:
		return LevelTrace
	default:
		break
	}

	// verbosity values above trace are clamped so "9" keeps meaning "everything".
	if lvl > LegacyLevelTrace {
		return LevelTrace
	}
	return LevelCrit
}

// LevelAlignedString returns a 5-character string containing the name of a level.
func LevelAlignedString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO "
	case slog.LevelWarn:
		return "WARN "
	case slog.LevelError:
		return "ERROR"
	case LevelCrit:
		return "CRIT "
	default:
		return "unknown level"
	}
}

// LevelString returns a string containing the name of a level.
func LevelString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "trace"
	case slog.LevelDebug:
		return "debug"
	case slog.LevelInfo:
		return "info"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	case LevelCrit:
		return "crit"
	default:
		return "unknown"
	}
}

// A Logger writes key/value pairs to a Handler.
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes.
	With(ctx ...any) Logger

	// New returns a new Logger that has this logger's attributes plus the given attributes. Identical to 'With'.
	New(ctx ...any) Logger

	// Log logs a message at the specified level with context key/value pairs.
	Log(level slog.Level, msg string, ctx ...any)

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	// Crit logs a message at the crit level with context key/value pairs, and exits.
	Crit(msg string, ctx ...any)

	// Write logs a message at the specified level.
	Write(level slog.Level, msg string, attrs ...any)

	// Enabled reports whether l emits log records at the given context and level.
	Enabled(ctx context.Context, level slog.Level) bool

	// Handler returns the underlying handler of the inner logger.
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger with the specified handler set.
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) Handler() slog.Handler {
	return l.inner.Handler()
}

// Write logs a message at the specified level.
func (l *logger) Write(level slog.Level, msg string, attrs ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	if len(attrs)%2 != 0 {
		attrs = append(attrs, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(attrs...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) Log(level slog.Level, msg string, attrs ...any) {
	l.Write(level, msg, attrs...)
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) New(ctx ...any) Logger {
	return l.With(ctx...)
}

// Enabled reports whether l emits log records at the given context and level.
func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) Trace(msg string, ctx ...any) {
	l.Write(LevelTrace, msg, ctx...)
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.Write(slog.LevelDebug, msg, ctx...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.Write(slog.LevelInfo, msg, ctx...)
}

func (l *logger) Warn(msg string, ctx ...any) {
	l.Write(slog.LevelWarn, msg, ctx...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.Write(slog.LevelError, msg, ctx...)
}

func (l *logger) Crit(msg string, ctx ...any) {
	l.Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

const errorKey = "LOG_ERROR"

var root atomic.Value

func init() {
	root.Store(NewLogger(DiscardHandler()))
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// New returns a new logger derived from the current root logger.
func New(ctx ...any) Logger {
	return Root().With(ctx...)
}

// WithContext returns a logger that resolves the root logger on every call,
// so package level loggers pick up a root installed after package init.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

type contextLogger struct {
	ctx []any
}

func (c *contextLogger) resolve() Logger { return Root().With(c.ctx...) }

func (c *contextLogger) With(ctx ...any) Logger {
	return &contextLogger{ctx: append(append([]any{}, c.ctx...), ctx...)}
}
func (c *contextLogger) New(ctx ...any) Logger { return c.With(ctx...) }
func (c *contextLogger) Log(level slog.Level, msg string, ctx ...any) {
	c.resolve().Write(level, msg, ctx...)
}
func (c *contextLogger) Trace(msg string, ctx ...any) { c.resolve().Write(LevelTrace, msg, ctx...) }
func (c *contextLogger) Debug(msg string, ctx ...any) { c.resolve().Write(LevelDebug, msg, ctx...) }
func (c *contextLogger) Info(msg string, ctx ...any)  { c.resolve().Write(LevelInfo, msg, ctx...) }
func (c *contextLogger) Warn(msg string, ctx ...any)  { c.resolve().Write(LevelWarn, msg, ctx...) }
func (c *contextLogger) Error(msg string, ctx ...any) { c.resolve().Write(LevelError, msg, ctx...) }
func (c *contextLogger) Crit(msg string, ctx ...any) {
	c.resolve().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}
func (c *contextLogger) Write(level slog.Level, msg string, attrs ...any) {
	c.resolve().Write(level, msg, attrs...)
}
func (c *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return Root().Enabled(ctx, level)
}
func (c *contextLogger) Handler() slog.Handler { return Root().Handler() }

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) { Root().Write(LevelTrace, msg, ctx...) }

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) { Root().Write(slog.LevelDebug, msg, ctx...) }

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) { Root().Write(slog.LevelInfo, msg, ctx...) }

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) { Root().Write(slog.LevelWarn, msg, ctx...) }

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) { Root().Write(slog.LevelError, msg, ctx...) }
