package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/auth"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/http/router"
	"github.com/xy-planning-network/relay/logger"
)

// ShutdownTimeout bounds how long Guide waits for in-flight requests when stopping.
const ShutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a relay app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	auth    auth.Authenticator
	cancel  context.CancelFunc
	cfg     *Config
	ctx     context.Context
	httpLog logger.Logger
	l       logger.Logger
	out     io.Writer
	srv     *http.Server
}

// New constructs a Ranger from the provided options.
// Whatever the options leave unset is filled in with defaults
// built from the Config, which is read from the environment unless WithConfig is passed.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", relay.ErrBadConfig, err)
		}
	}

	if r.cfg == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return nil, err
		}

		r.cfg = &cfg
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}
	r.ctx, r.cancel = context.WithCancel(r.ctx)

	if r.out == nil {
		r.out = os.Stdout
	}

	if r.l == nil {
		r.l = defaultAppLogger(*r.cfg, r.out)
	}
	r.httpLog = defaultHTTPLogger(*r.cfg, r.out)

	if r.Responder == nil {
		r.Responder = defaultResponder(r.l)
	}

	if r.auth == nil {
		a, err := defaultAuthenticator(*r.cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", relay.ErrBadConfig, err)
		}

		r.auth = a
	}

	r.Router = defaultRouter(r.cfg.Env, r.Responder, defaultMiddlewares(*r.cfg, r.Responder, r.httpLog))

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, *r.cfg)
	}
	r.srv.Handler = r.Router

	r.l.Debug("ranger configured", &logger.LogContext{Data: map[string]any{
		"env":  r.cfg.Env.String(),
		"addr": r.srv.Addr,
	}})

	return r, nil
}

func (r *Ranger) EmitAuthenticator() auth.Authenticator { return r.auth }
func (r *Ranger) EmitConfig() Config                    { return *r.cfg }
func (r *Ranger) EmitLogger() logger.Logger             { return r.l }

// AuthedRoutes registers the routes on the Ranger's router behind its auth.Authenticator.
func (r *Ranger) AuthedRoutes(routes []router.Route) {
	r.Router.AuthedRoutes(r.auth, r.l, routes)
}

// Cancel stops Guide as a shutdown signal would.
func (r *Ranger) Cancel() { r.cancel() }

// Guide begins the web server.
//
// These, and canceling the context passed to WithContext, Cancel or Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGTERM
//
// On stopping, Guide waits up to ShutdownTimeout for in-flight requests to finish.
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ch)

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.cfg.URL()), nil)
		err := r.srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		if err != nil {
			err = fmt.Errorf("could not listen: %w", err)
		}

		errCh <- err
	}()

	select {
	case s := <-ch:
		r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
	case <-r.ctx.Done():
		r.l.Info("context canceled", nil)
	case err := <-errCh:
		if err != nil {
			r.l.Error(err.Error(), &logger.LogContext{Error: err})
		}

		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	return r.Shutdown(ctx)
}

// Shutdown gracefully shuts down the web server,
// waiting until ctx is done for in-flight requests to finish.
func (r *Ranger) Shutdown(ctx context.Context) error {
	defer r.cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
