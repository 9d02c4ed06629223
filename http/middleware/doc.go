/*
The middleware package defines what a middleware is in relay and a set of basic middlewares.

The available middlewares are:
- Authenticate
- CORS
- ForceHTTPS
- InjectIPAddress
- LogRequest
- RateLimit
- ReportPanic
- RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors(middleware.DefaultRateLimit, middleware.DefaultRateBurst)
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env, responder),
		middleware.RequestID(),
		middleware.InjectIPAddress(false),
		middleware.LogRequest(log),
		middleware.RateLimit(vs, responder),
		middleware.ForceHTTPS(env),
		middleware.CORS(origin),
	}

Routes requiring a bearer token add middleware.Authenticate(authenticator, responder, log).
*/
package middleware
