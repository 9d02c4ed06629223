/*
Package logger provides logging functionality to a relay app by defining the required behavior in [Logger]
and providing an implementation of it with [AppLogger].

# AppLogger

[AppLogger] writes through a [*log/slog.Logger], so the handler configured on it decides the format.
Outside development, relay uses a JSON handler; in development, a text handler with colored levels.

Each record carries the call site of the [AppLogger] method and, when provided, a [LogContext]
under the "log_context" key:

	time=2026-10-17T15:55:21.000Z level=INFO source=middleware/authenticate.go:43 msg="authorization failed" log_context.error="Wrong JWT structure"

A [LogContext] includes additional data inessential to the message proper,
but provides a fuller picture of the application state at the time of logging.
Request headers carrying credentials are masked.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.

# SentryLogger

[NewSentryLogger] wraps a [SkipLogger], shipping warnings and errors whose [LogContext] holds an error to Sentry.
*/
package logger
