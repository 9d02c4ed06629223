package middleware

import (
	"fmt"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/resp"
)

const sentryFlushTimeout = 2 * time.Second

// ReportPanic recovers panics in the handlers it wraps, responding through d with a 500.
//
// Outside of development, panics are first reported to Sentry.
//
// If d is nil, NoopAdapter returns and this middleware does nothing.
func ReportPanic(env relay.Environment, d *resp.Responder) Adapter {
	if d == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		if !env.IsDevelopment() {
			sh := sentryhttp.New(sentryhttp.Options{
				Repanic:         true,
				WaitForDelivery: true,
				Timeout:         sentryFlushTimeout,
			})
			handler = sh.Handle(handler)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				_ = d.Errors(w, r, fmt.Errorf("%w: recovered panic: %v", relay.ErrUnexpected, rec))
			}()

			handler.ServeHTTP(w, r)
		})
	}
}
