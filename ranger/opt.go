package ranger

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/auth"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/logger"
)

// A RangerOption configures a *Ranger.
// Options run before New fills in defaults for whatever they leave unset.
type RangerOption func(rng *Ranger) error

// WithAuthenticator sets the auth.Authenticator guarding authenticated routes.
func WithAuthenticator(a auth.Authenticator) RangerOption {
	return func(rng *Ranger) error {
		if a == nil {
			return fmt.Errorf("%w: nil Authenticator", relay.ErrBadConfig)
		}

		rng.auth = a
		return nil
	}
}

// WithConfig uses cfg instead of reading configuration from the environment.
func WithConfig(cfg Config) RangerOption {
	return func(rng *Ranger) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		rng.cfg = &cfg
		return nil
	}
}

// WithContext exposes the provided context.Context to the relay app.
// Canceling ctx stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		if ctx == nil {
			return fmt.Errorf("%w: nil Context", relay.ErrBadConfig)
		}

		rng.ctx = ctx
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the relay app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithLogOutput sets where default loggers write to.
func WithLogOutput(w io.Writer) RangerOption {
	return func(rng *Ranger) error {
		rng.out = w
		return nil
	}
}

// WithResponder exposes the *resp.Responder to the relay app.
func WithResponder(d *resp.Responder) RangerOption {
	return func(rng *Ranger) error {
		rng.Responder = d
		return nil
	}
}

// WithServer exposes the *http.Server to the relay app.
// The server's Handler is replaced by the Ranger's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}
