package middleware

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/relay/auth"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/logger"
)

// Authenticate runs a against each request.
//
// On failure, Authenticate responds through d with the errors envelope
// and does not pass the request on.
// The underlying cause is logged at info level through l, if l is not nil.
//
// On success, the auth.Credential is stored in the request context,
// retrievable with auth.FromContext.
//
// If a or d is nil, NoopAdapter returns and this middleware does nothing.
func Authenticate(a auth.Authenticator, d *resp.Responder, l logger.Logger) Adapter {
	if a == nil || d == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred, err := a.Authenticate(r)
			if err != nil {
				if l != nil {
					lc := &logger.LogContext{Error: err, Request: r}
					var authErr *auth.AuthorizationError
					if errors.As(err, &authErr) && authErr.Cause != nil {
						lc.Data = map[string]any{"cause": authErr.Cause.Error()}
					}

					l.Info("authorization failed", lc)
				}

				_ = d.Errors(w, r, err)
				return
			}

			handler.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), cred)))
		})
	}
}
