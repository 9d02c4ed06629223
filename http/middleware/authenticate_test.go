package middleware_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay/auth"
	"github.com/xy-planning-network/relay/auth/authtest"
	"github.com/xy-planning-network/relay/http/middleware"
)

type authenticatorFunc func(r *http.Request) (auth.Credential, error)

func (fn authenticatorFunc) Authenticate(r *http.Request) (auth.Credential, error) { return fn(r) }

func TestAuthenticate(t *testing.T) {
	// Arrange
	d, _ := newResponder()

	// Act
	actual := middleware.Authenticate(nil, d, nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	t.Run("Failure", func(t *testing.T) {
		// Arrange
		l, b := newLogger()
		a := authenticatorFunc(func(r *http.Request) (auth.Credential, error) {
			_, err := auth.BearerToken(r.Header)
			return auth.Credential{}, err
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "http://example.com/health", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		var called bool

		// Act
		middleware.Authenticate(a, d, l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})).ServeHTTP(w, r)

		// Assert
		require.False(t, called)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.JSONEq(t, `{"errors":["Wrong authorization type"]}`, w.Body.String())
		require.Contains(t, b.String(), "authorization failed")
		require.NotContains(t, b.String(), "dXNlcjpwYXNz")
	})

	t.Run("Unexpected", func(t *testing.T) {
		// Arrange
		a := authenticatorFunc(func(r *http.Request) (auth.Credential, error) {
			return auth.Credential{}, errors.New("boom")
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "http://example.com/health", nil)

		// Act
		middleware.Authenticate(a, d, nil)(noopHandler()).ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Success", func(t *testing.T) {
		// Arrange
		signer := authtest.NewSigner(t, "key-1")
		ks := authtest.NewKeyServer(t, signer.JWK())
		svc, err := auth.NewService(auth.WithHTTPClient(ks.HTTPClient()))
		require.Nil(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "http://example.com/health", nil)
		r.Header.Set("Authorization", "Bearer "+signer.Sign(t, authtest.Claims("http://example.com")))

		var actual auth.Credential
		var ok bool

		// Act
		middleware.Authenticate(svc, d, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actual, ok = auth.FromContext(r.Context())
		})).ServeHTTP(w, r)

		// Assert
		require.True(t, ok)
		require.Equal(t, auth.Credential{AuthKey: authtest.AuthKey, Host: authtest.Host}, actual)
		require.Equal(t, http.StatusOK, w.Code)
	})
}
