package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/middleware"
	"github.com/xy-planning-network/relay/logger"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	ip := "8.8.8.8"
	useragent := "relay/test"

	tcs := []struct {
		name     string
		method   string
		ip       string
		url      *url.URL
		expected string
	}{
		{"Zero-Value", http.MethodGet, "", &url.URL{Path: "/"}, "GET /"},
		{"With-IP", http.MethodPost, ip, &url.URL{Path: "/health"}, ip + " POST /health"},
		{
			"With-Query-Params",
			http.MethodGet,
			ip,
			&url.URL{Path: "/health", RawQuery: "param=true"},
			ip + " GET /health?param=true",
		},
		{
			"With-Query-Params-Hid",
			http.MethodGet,
			ip,
			&url.URL{Path: "/", RawQuery: "param=true&password=hunter2&token=abc"},
			ip + " GET /?param=true&password=" + relay.LogMaskVal + "&token=" + relay.LogMaskVal,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l, b := newLogger()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.url.String(), new(bytes.Reader))
			r.Header.Set("User-Agent", useragent)
			r.Header.Set("Authorization", "Bearer a.b.c")

			if tc.ip != "" {
				r = r.Clone(context.WithValue(r.Context(), relay.IpAddrKey, tc.ip))
			}

			// Act
			middleware.LogRequest(l)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				wx.WriteHeader(http.StatusAccepted)
				fmt.Fprint(wx, "test")
			})).ServeHTTP(w, r)

			// Assert
			var rec map[string]any
			require.Nil(t, json.Unmarshal(b.Bytes(), &rec))
			require.Equal(t, tc.expected, rec["msg"])
			require.NotContains(t, b.String(), "a.b.c")
			require.NotContains(t, b.String(), "hunter2")

			lc, ok := rec[logger.LogContextKey].(map[string]any)
			require.True(t, ok)

			data, ok := lc["data"].(map[string]any)
			require.True(t, ok)
			require.Equal(t, float64(http.StatusAccepted), data["status"])
			require.Equal(t, float64(len("test")), data["bytes"])
			require.Equal(t, useragent, data["user_agent"])
			require.Equal(t, "http", data[relay.LogKindKey])
		})
	}
}
