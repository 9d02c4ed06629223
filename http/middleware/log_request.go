package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/logger"
)

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger,
// along with the response's status code and how long serving it took.
//
// LogRequest scrubs credential-bearing query params and headers; cf. relay.MaskURL and relay.MaskHeader.
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := relay.MaskURL(&url.URL{Path: r.URL.Path, RawQuery: r.URL.RawQuery})
			strs := []string{r.Method, uri}
			if ip, ok := r.Context().Value(relay.IpAddrKey).(string); ok {
				strs = append([]string{ip}, strs...)
			}

			m := httpsnoop.CaptureMetrics(h, w, r)

			data := map[string]any{
				relay.LogKindKey: relay.HTTPLogKind.String(),
				"status":         m.Code,
				"duration_ms":    m.Duration.Milliseconds(),
				"bytes":          m.Written,
				"user_agent":     r.UserAgent(),
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data, Request: r})
		})
	}
}
