package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/resp"
	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimit is how many requests per second a Visitor may make.
	DefaultRateLimit rate.Limit = 5

	// DefaultRateBurst is how many requests a Visitor may make at once.
	DefaultRateBurst = 20

	visitorTTL = 60 * time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	val   map[string]Visitor
	limit rate.Limit
	burst int
	sync.Mutex
}

// NewVisitors constructs a Visitors whose new visitors are limited to limit requests every second
// with bursts of up to burst.
//
// Non-positive values fall back to DefaultRateLimit and DefaultRateBurst.
func NewVisitors(limit rate.Limit, burst int) *Visitors {
	if limit <= 0 {
		limit = DefaultRateLimit
	}

	if burst <= 0 {
		burst = DefaultRateBurst
	}

	return &Visitors{val: make(map[string]Visitor), limit: limit, burst: burst}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports how many visitors are tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()
	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler,
// responding with 429 through d once a visitor exceeds its limit.
//
// Visitors are keyed by the address InjectIPAddress stores,
// or by the connection's remote address when it has not run.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
//
// If visitors or d is nil, NoopAdapter returns and this middleware does nothing.
func RateLimit(visitors *Visitors, d *resp.Responder) Adapter {
	if visitors == nil || d == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !visitors.Fetch(contextIP(r)).Limiter.Allow() {
				_ = d.Errors(w, r, relay.ErrTooManyReqs)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
