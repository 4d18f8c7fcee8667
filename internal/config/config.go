package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Auth     AuthConfig
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:","`
	AllowCredential bool          `env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
}

type PostgresConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Host        string `env:"PGHOST" env-default:"localhost"`
	Port        string `env:"PGPORT" env-default:"5432"`
	User        string `env:"PGUSER"`
	Password    string `env:"PGPASSWORD"`
	Database    string `env:"PGDATABASE"`
	SSLMode     string `env:"PGSSLMODE" env-default:"disable"`
}

type AuthConfig struct {
	// TokenExpirySeconds is the lifetime of an API token measured from its creation.
	TokenExpirySeconds int    `env:"TOKEN_EXPIRY_TIME" env-default:"86400"`
	AdminUsername      string `env:"ADMIN_USERNAME"`
	AdminPassword      string `env:"ADMIN_PASSWORD"`
	AllowSignup        string `env:"ALLOW_SIGNUP"`
	CookieSecure       string `env:"AUTH_COOKIE_SECURE"`
	CookieSameSite     string `env:"AUTH_COOKIE_SAMESITE"`
	CookieDomain       string `env:"AUTH_COOKIE_DOMAIN"`
	CookiePath         string `env:"AUTH_COOKIE_PATH"`
}

// TokenExpiry returns the configured token window as a duration.
func (a AuthConfig) TokenExpiry() time.Duration {
	return time.Duration(a.TokenExpirySeconds) * time.Second
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read env: %w", err)
	}

	if cfg.Auth.TokenExpirySeconds <= 0 {
		return Config{}, fmt.Errorf("TOKEN_EXPIRY_TIME must be positive, got %d", cfg.Auth.TokenExpirySeconds)
	}

	origins := cfg.HTTP.AllowedOrigins[:0]
	for _, origin := range cfg.HTTP.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.HTTP.AllowedOrigins = origins

	return cfg, nil
}
