package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay/http/middleware"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/logger"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
}

func newLogger() (*logger.AppLogger, *bytes.Buffer) {
	b := new(bytes.Buffer)
	return logger.New(slog.New(slog.NewJSONHandler(b, nil))), b
}

func newResponder() (*resp.Responder, *bytes.Buffer) {
	l, b := newLogger()
	return resp.NewResponder(resp.WithLogger(l)), b
}

func TestChain(t *testing.T) {
	// Arrange
	var order []string
	tag := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

	// Act
	middleware.Chain(handler, tag("first"), middleware.NoopAdapter, tag("second")).ServeHTTP(w, r)

	// Assert
	require.Equal(t, "first,second,handler", strings.Join(order, ","))
}
