package api

import (
	"net/http"

	"github.com/xy-planning-network/relay/auth"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/http/router"
	"github.com/xy-planning-network/relay/logger"
)

// HealthPath is where Health is served.
const HealthPath = "/health"

// A HealthStatus reports the service is able to authenticate requests.
type HealthStatus struct {
	Status string `json:"status"`
}

// Handler serves the relay API.
type Handler struct {
	d *resp.Responder
	l logger.Logger
}

// NewHandler constructs a *Handler responding through d.
func NewHandler(d *resp.Responder, l logger.Logger) *Handler {
	if l == nil {
		l = logger.New(nil)
	}

	return &Handler{d: d, l: l}
}

// Health responds with {"data": {"status": "ok"}}.
//
// Health expects to sit behind middleware.Authenticate;
// reaching it means the request's bearer token was verified.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if cred, ok := auth.FromContext(r.Context()); ok {
		h.l.Debug("health check", &logger.LogContext{Data: map[string]any{"host": cred.Host}, Request: r})
	}

	if err := h.d.Json(w, r, resp.Data(HealthStatus{Status: "ok"})); err != nil {
		h.l.Error("failed responding to health check", &logger.LogContext{Error: err, Request: r})
	}
}

// Routes lists the routes Handler serves.
// All of them require a valid bearer token.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Path: HealthPath, Method: http.MethodPost, Handler: h.Health},
	}
}

// Register adds h's routes to rt behind authentication by a.
func (h *Handler) Register(rt *router.Router, a auth.Authenticator) {
	rt.AuthedRoutes(a, h.l, h.Routes())
}
