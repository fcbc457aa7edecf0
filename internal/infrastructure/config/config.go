package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sethvargo/go-envconfig"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port      string `env:"PORT,      default=5000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth  AuthConfig
	HTTP  HTTPConfig
	Store StoreConfig
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST, default=10"`
	// UniformLoginErrors hides whether the email or the password was wrong.
	UniformLoginErrors bool `env:"AUTH_UNIFORM_LOGIN_ERRORS, default=false"`
}

type HTTPConfig struct {
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`
}

type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER, default=mongo"`
	AutoMigrate bool   `env:"STORE_AUTO_MIGRATE, default=true"`

	Mongo    MongoConfig
	Postgres PostgresConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=leave_management"`
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     int    `env:"DB_PORT,     default=5432"`
	User     string `env:"DB_USER,     default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,     default=leave_management"`
	SSLMode  string `env:"DB_SSLMODE,  default=disable"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it. A missing
// JWT_SECRET wraps domain.ErrMissingSigningSecret.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET: %w", domain.ErrMissingSigningSecret)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	switch c.Store.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// UniformLoginErrors is forced on in production.
func (c *Config) UniformLoginErrors() bool {
	return c.Auth.UniformLoginErrors || c.IsProduction()
}

// DSN renders the Postgres connection descriptor as a URL understood by
// pgx and golang-migrate alike.
func (p PostgresConfig) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   p.Host + ":" + strconv.Itoa(p.Port),
		User:   url.UserPassword(p.User, p.Password),
		Path:   p.Name,
	}
	q := u.Query()
	q.Set("sslmode", p.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
