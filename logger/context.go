package logger

import (
	"log/slog"
	"net/http"

	"github.com/xy-planning-network/relay"
)

var _ slog.LogValuer = LogContext{}

// A LogContext provides additional information
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request
}

// LogValue groups the non-zero fields of LogContext.
// Credential-bearing request headers and query params are masked; cf. [relay.MaskHeader] and [relay.MaskURL].
//
// LogValue implements [log/slog.LogValuer].
func (lc LogContext) LogValue() slog.Value {
	var attrs []slog.Attr
	if lc.Error != nil {
		attrs = append(attrs, slog.String("error", lc.Error.Error()))
	}

	if len(lc.Data) > 0 {
		data := make([]slog.Attr, 0, len(lc.Data))
		for k, v := range lc.Data {
			data = append(data, slog.Any(k, v))
		}

		attrs = append(attrs, slog.Attr{Key: "data", Value: slog.GroupValue(data...)})
	}

	if lc.Request != nil {
		req := []slog.Attr{slog.String("method", lc.Request.Method)}
		if lc.Request.URL != nil {
			req = append(req, slog.String("url", relay.MaskURL(lc.Request.URL)))
		}

		if id, ok := lc.Request.Context().Value(relay.RequestIDKey).(string); ok {
			req = append(req, slog.String("id", id))
		}

		req = append(req, slog.Any("header", relay.MaskHeader(lc.Request.Header)))
		attrs = append(attrs, slog.Attr{Key: "request", Value: slog.GroupValue(req...)})
	}

	return slog.GroupValue(attrs...)
}
