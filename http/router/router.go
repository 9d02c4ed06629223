package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/auth"
	"github.com/xy-planning-network/relay/http/middleware"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/logger"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their handlers.
type Router struct {
	Env           relay.Environment
	d             *resp.Responder
	everyReqStack []middleware.Adapter
	notAllowed    http.HandlerFunc
	notFound      http.HandlerFunc
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
// Requests matching no route, or matching a route's path but not its method,
// are answered by d with the errors envelope.
func New(env relay.Environment, d *resp.Responder) *Router {
	if d == nil {
		d = resp.NewResponder()
	}

	rt := &Router{Env: env, d: d, r: mux.NewRouter()}
	rt.HandleNotFound(nil)
	rt.HandleMethodNotAllowed(nil)

	return rt
}

// AuthedRoutes registers the set of Routes as those requiring a valid bearer token.
// AuthedRoutes applies the given middlewares before performing that check,
// using middleware.Authenticate.
func (r *Router) AuthedRoutes(a auth.Authenticator, l logger.Logger, routes []Route, middlewares ...middleware.Adapter) {
	mws := append(append([]middleware.Adapter{}, middlewares...), middleware.Authenticate(a, r.d, l))
	r.HandleRoutes(routes, mws...)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleMethodNotAllowed sets the provided [http.HandlerFunc] as the function called
// when a request matches a registered path but none of its methods.
//
// If handler is nil, a 405 errors envelope is written.
func (r *Router) HandleMethodNotAllowed(handler http.HandlerFunc) {
	if handler == nil {
		handler = func(w http.ResponseWriter, req *http.Request) {
			_ = r.d.Errors(w, req, relay.ErrMethodNotAllowed)
		}
	}

	r.notAllowed = handler
	r.r.MethodNotAllowedHandler = r.chain(handler, r.everyReqStack...)
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
//
// If handler is nil, a 404 errors envelope is written.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	if handler == nil {
		handler = func(w http.ResponseWriter, req *http.Request) {
			_ = r.d.Errors(w, req, relay.ErrNotFound)
		}
	}

	r.notFound = handler
	r.r.NotFoundHandler = r.chain(handler, r.everyReqStack...)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter{}, r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		r.r.Handle(route.Path, r.chain(route.Handler, mws...)).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Only routes registered afterwards receive them;
// the not found and method not allowed handlers are rebuilt with the new stack.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
	r.HandleNotFound(r.notFound)
	r.HandleMethodNotAllowed(r.notAllowed)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/health
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		d:             r.d,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		everyReqStack: append([]middleware.Adapter{}, r.everyReqStack...),
	}
}

// chain wraps handler in panic recovery and then the middlewares.
func (r *Router) chain(handler http.Handler, middlewares ...middleware.Adapter) http.Handler {
	return middleware.Chain(middleware.ReportPanic(r.Env, r.d)(handler), middlewares...)
}
