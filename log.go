package relay

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

var (
	AppLogKind  = slog.StringValue("app")
	HTTPLogKind = slog.StringValue("http")

	// MaskedLogValue is a convenience [log/slog.Value]
	// to be used in implementations of [log/slog.LogValuer]
	// to hide sensitive data from log messages.
	MaskedLogValue = slog.StringValue(LogMaskVal)
)

// sensitiveHeaders lists the headers whose values never appear in logs.
var sensitiveHeaders = []string{"Authorization", "Cookie", "Proxy-Authorization"}

// sensitiveParams lists the query params whose values never appear in logs.
var sensitiveParams = []string{"password", "token"}

// MaskURL renders u with the values of credential-bearing query params
// replaced by [LogMaskVal].
func MaskURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	masked := *u
	q := masked.Query()
	for _, key := range sensitiveParams {
		if q.Has(key) {
			q.Set(key, LogMaskVal)
		}
	}

	if len(q) > 0 {
		masked.RawQuery = q.Encode()
	}

	return masked.String()
}

// MaskHeader returns a copy of h with the values of credential-bearing headers
// replaced by [LogMaskVal].
// The scheme of an Authorization header is kept, e.g., "Bearer xxxxxx".
func MaskHeader(h http.Header) http.Header {
	masked := h.Clone()
	if masked == nil {
		return http.Header{}
	}

	for _, key := range sensitiveHeaders {
		vals := masked.Values(key)
		if len(vals) == 0 {
			continue
		}

		masked.Del(key)
		for _, val := range vals {
			scheme, _, found := strings.Cut(strings.TrimSpace(val), " ")
			if found && key != "Cookie" {
				masked.Add(key, scheme+" "+LogMaskVal)
				continue
			}

			masked.Add(key, LogMaskVal)
		}
	}

	return masked
}
