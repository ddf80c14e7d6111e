package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	envProduction    = "production"
	minSecretLenProd = 32
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Store    string `env:"STORE,     default=mongo"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Login   LoginConfig
	Audit   AuditConfig
}

type SessionConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Lifetime time.Duration `env:"SESSION_LIFETIME, default=168h"`
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI,             default=mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DB,              default=agency_dashboard"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT, default=10s"`
}

// RedisConfig configures the login throttle store. An empty Addr disables
// throttling.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Lockout     time.Duration `env:"LOGIN_LOCKOUT,      default=15m"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context, logger zerolog.Logger) (*Config, error) {
	return load(ctx, logger, envconfig.OsLookuper())
}

func load(ctx context.Context, logger zerolog.Logger, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, envProduction)
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.Session.Secret) < minSecretLenProd {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes in production", minSecretLenProd)
	}
	if c.Session.Lifetime <= 0 {
		return errors.New("config: SESSION_LIFETIME must be positive")
	}
	switch c.Store {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("config: unknown STORE %q", c.Store)
	}
	return nil
}
