package logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

const (
	// LogContextKey is the attribute key a LogContext is logged under.
	LogContextKey = "log_context"

	// knownFrames is runtime.Callers, AppLogger.log, and the AppLogger method.
	knownFrames = 3
)

// The Logger interface defines the levels logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

var _ SkipLogger = (*AppLogger)(nil)

// AppLogger implements Logger using a [*log/slog.Logger].
type AppLogger struct {
	l    *slog.Logger
	skip int
}

// New constructs an *AppLogger writing through l.
// If l is nil, [log/slog.Default] is used.
func New(l *slog.Logger) *AppLogger {
	if l == nil {
		l = slog.Default()
	}

	return &AppLogger{l: l}
}

// AddSkip returns a copy of l that scrolls back i more frames
// when reporting the call site.
func (l *AppLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *AppLogger) Skip() int { return l.skip }

// Debug writes a debug log.
func (l *AppLogger) Debug(msg string, ctx *LogContext) { l.log(slog.LevelDebug, msg, ctx) }

// Error writes an error log.
func (l *AppLogger) Error(msg string, ctx *LogContext) { l.log(slog.LevelError, msg, ctx) }

// Info writes an info log.
func (l *AppLogger) Info(msg string, ctx *LogContext) { l.log(slog.LevelInfo, msg, ctx) }

// Warn writes a warning log.
func (l *AppLogger) Warn(msg string, ctx *LogContext) { l.log(slog.LevelWarn, msg, ctx) }

// Slogger exposes the underlying *slog.Logger.
func (l *AppLogger) Slogger() *slog.Logger { return l.l }

// log writes the record, attributing it to the caller of the exported method
// plus however many frames l is configured to skip.
func (l *AppLogger) log(level slog.Level, msg string, ctx *LogContext) {
	bg := context.Background()
	if !l.l.Enabled(bg, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(knownFrames+l.skip, pcs[:])

	rec := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if ctx != nil {
		rec.AddAttrs(slog.Any(LogContextKey, *ctx))
	}

	_ = l.l.Handler().Handle(bg, rec)
}
