package ranger

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/auth"
	"github.com/xy-planning-network/relay/http/middleware"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/http/router"
	"github.com/xy-planning-network/relay/logger"
	"golang.org/x/time/rate"
)

// defaultAppLogger constructs a [logger.Logger] configured for use in the application.
func defaultAppLogger(cfg Config, output io.Writer) logger.Logger {
	slogger := newSlogger(relay.AppLogKind, cfg, output)
	slog.SetDefault(slogger)

	al := logger.New(slogger)
	al.Debug("setting up app logger", nil)
	if cfg.SentryDSN == "" {
		return al
	}

	l := logger.NewSentryLogger(cfg.Env.String(), al, cfg.SentryDSN)
	l.Debug("using SentryLogger for app logger", nil)

	return l
}

// defaultHTTPLogger constructs a [logger.Logger] for use in request logging.
func defaultHTTPLogger(cfg Config, output io.Writer) logger.Logger {
	l := logger.New(newSlogger(relay.HTTPLogKind, cfg, output))
	l.Debug("setting up HTTP router logger", nil)

	return l
}

// newSlogger toggles contructing the specific [*log/slog.Logger]
// from the given parameters.
func newSlogger(kind slog.Value, cfg Config, out io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(cfg.LogLevel)

	useJSON := !cfg.Env.IsDevelopment() || cfg.LogJSON
	isHTTP := kind.String() == relay.HTTPLogKind.String()

	var handler slog.Handler
	switch {
	case useJSON && !isHTTP:
		opts := &slog.HandlerOptions{
			AddSource:   true,
			Level:       lvl,
			ReplaceAttr: logger.TruncSourceAttr,
		}
		handler = slog.NewJSONHandler(out, opts)

	case !useJSON && !isHTTP:
		opts := &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.ColorizeLevel(groups, a)
				return logger.TruncSourceAttr(groups, a)
			},
		}
		handler = slog.NewTextHandler(out, opts)

	case isHTTP && useJSON:
		opts := &slog.HandlerOptions{Level: lvl, ReplaceAttr: logger.DeleteLevelAttr}
		handler = slog.NewJSONHandler(out, opts)

	case isHTTP && !useJSON:
		opts := &slog.HandlerOptions{Level: lvl, ReplaceAttr: logger.DeleteLevelAttr}
		handler = slog.NewTextHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		{Key: relay.LogKindKey, Value: kind},
	})

	return slog.New(handler)
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger) *resp.Responder {
	return resp.NewResponder(resp.WithLogger(l))
}

// defaultAuthenticator configures the [*auth.Service] verifying bearer tokens.
func defaultAuthenticator(cfg Config) (*auth.Service, error) {
	opts := []auth.ServiceOptFn{auth.WithTimeout(cfg.JWKSFetchTimeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, auth.WithAudience(cfg.BaseURL))
	}

	return auth.NewService(opts...)
}

// defaultMiddlewares lists the [middleware.Adapter] applied to every request.
func defaultMiddlewares(cfg Config, d *resp.Responder, httpLog logger.Logger) []middleware.Adapter {
	vs := middleware.NewVisitors(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)

	return []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(cfg.TrustProxy),
		middleware.LogRequest(httpLog),
		middleware.RateLimit(vs, d),
		middleware.ForceHTTPS(cfg.Env),
		middleware.CORS(cfg.CORSOrigin),
	}
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
func defaultRouter(env relay.Environment, d *resp.Responder, mws []middleware.Adapter) *router.Router {
	route := router.New(env, d)
	route.OnEveryRequest(mws...)

	return route
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Port,
		IdleTimeout:  cfg.ServerIdleTimeout,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
