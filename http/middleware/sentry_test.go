package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/middleware"
	"github.com/xy-planning-network/relay/http/resp"
)

func TestReportPanic(t *testing.T) {
	// Arrange + Act
	actual := middleware.ReportPanic(relay.Testing, nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	for _, env := range []relay.Environment{relay.Development, relay.Testing} {
		t.Run(env.String(), func(t *testing.T) {
			// Arrange
			d, b := newResponder()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "http://example.com/health", nil)
			panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })

			// Act
			require.NotPanics(t, func() { middleware.ReportPanic(env, d)(panicky).ServeHTTP(w, r) })

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.JSONEq(t, fmt.Sprintf(`{"errors":[%q]}`, resp.DefaultErrMsg), w.Body.String())
			require.Contains(t, b.String(), "boom")
		})
	}

	t.Run("Abort", func(t *testing.T) {
		// Arrange
		d, _ := newResponder()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "http://example.com/health", nil)
		aborting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic(http.ErrAbortHandler) })

		// Act + Assert
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			middleware.ReportPanic(relay.Development, d)(aborting).ServeHTTP(w, r)
		})
	})
}
