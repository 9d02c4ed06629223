/*
Package router defines how a relay app routes HTTP requests.

[Router] wraps [mux.Router] and so functions as a thin wrapper around that package.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes for a web server share identical middleware stacks.
It is also often the case that small errors can lead to registering a route incorrectly,
thereby unintentionally exposing a resource.
Thus, a [Router] provides conveniences for making a single call to register many logically associated Routes.
AuthedRoutes registers routes behind bearer token authentication; HandleRoutes registers routes as they are.

Every handler a [Router] registers recovers from panics, answering with a 500 errors envelope.
*/
package router
