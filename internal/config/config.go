package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

type Config struct {
	Env   string `env:"ENV" env-default:"dev"`
	Debug bool   `env:"DEBUG" env-default:"false"`

	SecretKey       string `env:"SECRET_KEY"`
	LegacySecretKey string `env:"DJANGO_SECRET_KEY"`

	AllowedHosts   []string `env:"ALLOWED_HOSTS" env-default:"localhost,127.0.0.1" env-separator:","`
	TrustedOrigins []string `env:"CSRF_TRUSTED_ORIGINS" env-separator:","`
	RenderHost     string   `env:"RENDER_EXTERNAL_HOSTNAME"`

	HTTP     HTTPConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Password PasswordConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"PORT" env-default:"8000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DatabaseConfig struct {
	UseSQLite  bool   `env:"USE_SQLITE" env-default:"false"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"db.sqlite3"`

	URL      string `env:"DATABASE_URL"`
	Name     string `env:"POSTGRES_DB"`
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	Host     string `env:"POSTGRES_HOST"`
	Port     int    `env:"POSTGRES_PORT" env-default:"5432"`

	SSLRequire bool          `env:"DATABASE_SSL_REQUIRE" env-default:"true"`
	ConnMaxAge time.Duration `env:"DB_CONN_MAX_AGE" env-default:"600s"`
}

type JWTConfig struct {
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TTL" env-default:"60m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TTL" env-default:"24h"`
}

type PasswordConfig struct {
	Hasher     string `env:"PASSWORD_HASHER" env-default:"bcrypt"`
	BcryptCost int    `env:"PASSWORD_BCRYPT_COST" env-default:"10"`
}

// normalize trims list values and folds the hosting platform's hostname
// into the allowed hosts and trusted origins.
func (c *Config) normalize() {
	if c.SecretKey == "" {
		c.SecretKey = c.LegacySecretKey
	}
	c.LegacySecretKey = ""

	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Password.Hasher = strings.ToLower(strings.TrimSpace(c.Password.Hasher))
	c.AllowedHosts = cleanList(c.AllowedHosts)
	c.TrustedOrigins = cleanList(c.TrustedOrigins)

	if host := strings.TrimSpace(c.RenderHost); host != "" {
		if !contains(c.AllowedHosts, host) {
			c.AllowedHosts = append(c.AllowedHosts, host)
		}
		c.TrustedOrigins = append(c.TrustedOrigins, "https://"+host)
	}
}

func (c *Config) validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is not set"))
	}

	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		errs = append(errs, fmt.Errorf("unknown env: %q", c.Env))
	}

	switch c.Password.Hasher {
	case HasherBcrypt, HasherArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unknown password hasher: %q", c.Password.Hasher))
	}

	if c.JWT.AccessTokenTTL <= 0 || c.JWT.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}

	return errors.Join(errs...)
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.HTTP.Host, c.HTTP.Port)
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
