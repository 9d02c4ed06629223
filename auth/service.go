package auth

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/relay"
)

// DefaultFetchTimeout bounds fetching a key set when WithTimeout is not used.
const DefaultFetchTimeout = 10 * time.Second

// An Authenticator turns an inbound request into a verified Credential.
type Authenticator interface {
	Authenticate(r *http.Request) (Credential, error)
}

var _ Authenticator = (*Service)(nil)

// Service is the implementation of Authenticator defined in this package.
type Service struct {
	audience *url.URL
	client   *http.Client
	parser   *jwt.Parser
	timeout  time.Duration
}

// A ServiceOptFn configures a *Service when constructing one with NewService.
type ServiceOptFn func(*Service) error

// WithAudience fixes the root URL tokens must be issued for.
// Without it, the audience is derived from each request; cf. RootURL.
func WithAudience(rootURL string) ServiceOptFn {
	return func(s *Service) error {
		u, err := url.ParseRequestURI(rootURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: audience %q is not an absolute URL", relay.ErrBadConfig, rootURL)
		}

		s.audience = u
		return nil
	}
}

// WithHTTPClient sets the *http.Client used for fetching key sets.
func WithHTTPClient(c *http.Client) ServiceOptFn {
	return func(s *Service) error {
		if c == nil {
			return fmt.Errorf("%w: nil *http.Client", relay.ErrBadConfig)
		}

		s.client = c
		return nil
	}
}

// WithTimeout bounds how long fetching a key set may take.
// Running out of time fails authorization as an unreachable jwks_host.
func WithTimeout(d time.Duration) ServiceOptFn {
	return func(s *Service) error {
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive, got %s", relay.ErrBadConfig, d)
		}

		s.timeout = d
		return nil
	}
}

// NewService constructs a *Service.
//
// By default, key sets are fetched with a dedicated *http.Client
// and DefaultFetchTimeout.
func NewService(opts ...ServiceOptFn) (*Service, error) {
	s := &Service{
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})),
		timeout: DefaultFetchTimeout,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}

	return s, nil
}

// RootURL reconstructs the root URL r was served on, without a trailing slash.
//
// The scheme is https when r arrived over TLS or a proxy reports so with "X-Forwarded-Proto".
func RootURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}

	return strings.TrimRight(scheme+"://"+r.Host, "/")
}

// audienceFor is the value the "aud" claim of a token sent with r must hold.
func (s *Service) audienceFor(r *http.Request) string {
	if s.audience != nil {
		return strings.TrimRight(s.audience.String(), "/")
	}

	return RootURL(r)
}
