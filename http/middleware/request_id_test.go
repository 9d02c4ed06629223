package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/middleware"
)

func TestRequestID(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	var actual string

	// Act
	middleware.RequestID()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		val, ok := rx.Context().Value(relay.RequestIDKey).(string)
		require.True(t, ok)
		actual = val
	})).ServeHTTP(w, r)

	// Assert
	_, err := uuid.Parse(actual)
	require.Nil(t, err)
	require.Equal(t, actual, w.Header().Get(middleware.RequestIDHeader))
}
