package logger

import "github.com/getsentry/sentry-go"

var _ SkipLogger = (*SentryLogger)(nil)

// A SentryLogger logs through an embedded SkipLogger
// and ships warnings and errors carrying a LogContext.Error to Sentry.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger initializes the Sentry client for env using dsn
// and wraps l so warnings and errors reach Sentry.
//
// If Sentry cannot be initialized, the error is logged and l returns unchanged.
func NewSentryLogger(env string, l SkipLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		l.Error("unable to init Sentry", &LogContext{Error: err})
		return l
	}

	return &SentryLogger{l: l.AddSkip(1 + l.Skip())}
}

// AddSkip returns a copy of sl whose logs scroll back i more frames
// past the SentryLogger method when reporting the call site.
func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{l: sl.l.AddSkip(i + 1)}
}

// Skip returns the frames scrolled back beyond the SentryLogger method.
func (sl *SentryLogger) Skip() int { return sl.l.Skip() - 1 }

// Debug writes a debug log.
func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }

// Info writes an info log.
func (sl *SentryLogger) Info(msg string, ctx *LogContext) { sl.l.Info(msg, ctx) }

// Warn writes a warning log and sends it to Sentry.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	sl.l.Warn(msg, ctx)
	sl.send(sentry.LevelWarning, ctx)
}

// Error writes an error log and sends it to Sentry.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.l.Error(msg, ctx)
	sl.send(sentry.LevelError, ctx)
}

// send ships the LogContext.Error to Sentry,
// including any additional data from LogContext.
func (sl *SentryLogger) send(level sentry.Level, ctx *LogContext) {
	if ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		scope.SetLevel(level)
		sentry.CaptureException(ctx.Error)
	})
}
