package ranger

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/req"
)

var configValidator = req.NewValidator()

const (
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	DefaultJWKSFetchTimeout   = 10 * time.Second
	DefaultServerReadTimeout  = 5 * time.Second
	DefaultServerWriteTimeout = 15 * time.Second
	DefaultServerIdleTimeout  = 120 * time.Second
)

// Config holds all environment-based configuration for a relay app.
type Config struct {
	// Env controls log format and whether HTTPS is enforced.
	Env relay.Environment `env:"ENVIRONMENT" envDefault:"DEVELOPMENT" validate:"enum"`

	// Web server
	Host               string        `env:"HOST" envDefault:"localhost"`
	Port               string        `env:"PORT" envDefault:":3000"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s" validate:"gt=0,gtfield=JWKSFetchTimeout"`
	ServerIdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s" validate:"gt=0"`

	// BaseURL fixes the audience tokens must be issued for.
	// When empty, the audience is the root URL of each request.
	BaseURL string `env:"BASE_URL" validate:"omitempty,http_url"`

	// Token verification
	JWKSFetchTimeout time.Duration `env:"JWKS_FETCH_TIMEOUT" envDefault:"10s" validate:"gt=0"`

	// Logging
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogJSON   bool       `env:"LOG_JSON" envDefault:"false"`
	SentryDSN string     `env:"SENTRY_DSN"`

	// Middleware
	TrustProxy         bool    `env:"TRUST_PROXY" envDefault:"false"`
	CORSOrigin         string  `env:"CORS_ORIGIN"`
	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" envDefault:"5" validate:"gt=0"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"20" validate:"gt=0"`
}

// LoadConfig reads configuration from environment variables.
// It first loads the files, ".env" if none are named, skipping any that do not exist.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: loading %s: %s", relay.ErrBadConfig, f, err)
		}
	}

	return ParseConfig(nil)
}

// ParseConfig builds a Config from environ,
// or from the process's environment variables if environ is nil.
func ParseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("%w: parsing config: %s", relay.ErrBadConfig, err)
	}

	if cfg.Port != "" && !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks c against the rules in its "validate" struct tags,
// returning every failing setting as req.ValidationErrors wrapped in relay.ErrBadConfig.
// SERVER_WRITE_TIMEOUT must exceed JWKS_FETCH_TIMEOUT.
func (c Config) Validate() error {
	if err := configValidator.Struct(&c); err != nil {
		return fmt.Errorf("%w: %w", relay.ErrBadConfig, err)
	}

	return nil
}

// URL is where the web server can be reached:
// BaseURL if set, otherwise built from Host and Port.
func (c Config) URL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}

	return "http://" + c.Host + c.Port
}
