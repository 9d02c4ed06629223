/*
Package ranger initializes and manages a relay app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].

[*Ranger.Guide] begins a relay app's web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000),
assuming a reverse proxy terminates TLS in front of it.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown], call [*Ranger.Cancel],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a relay app through environment variables, read into a [Config].
Environment variables may also be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the URL the application is served at; tokens must name it as their audience; default: the root URL of each request
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; default: none
  - ENVIRONMENT: the environment the application is running in; default: DEVELOPMENT; cf. [relay.Environment]
  - HOST: the host the application is running on; default: localhost
  - JWKS_FETCH_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for fetching a token's key set; default: 10s
  - LOG_JSON: whether to log JSON in development; default: false
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [log/slog.Level]
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT_BURST: how many requests an IP address may make at once; default: 20
  - RATE_LIMIT_PER_SECOND: how many requests an IP address may make every second; default: 5
  - SENTRY_DSN: where to report errors and panics to; default: none
  - SERVER_IDLE_TIMEOUT: the timeout for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; must exceed JWKS_FETCH_TIMEOUT; default: 15s
  - TRUST_PROXY: whether X-Forwarded-For and X-Real-Ip name the client, as when behind a load balancer; default: false
*/
package ranger
