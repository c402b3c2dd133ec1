// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates that
// required values are present so the service fails fast at startup.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into the Config struct tree.
//   - Validate required values.
//   - Fill defaults for optional blocks (database tuning, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment
	// before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the ITEMS_ prefix. The prefix is stripped and
	the remainder lowercased; nesting uses "." so the variable names carry
	dots themselves:

		ITEMS_SERVER.PORT=8080        -> server.port
		ITEMS_DATABASE.URI=mongodb:// -> database.uri
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "ITEMS_"

// Supported values for DatabaseConfig.Driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration object for the application.
//
// Redis and Observability are pointers because they are optional:
// a nil Redis block disables background item events, a nil
// Observability block is replaced by DefaultObservabilityConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         *RedisConfig         `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds. RateLimit is requests per second per client
// IP; zero turns the limiter off.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	RateLimit          float64  `koanf:"rate_limit" validate:"gte=0"`
}

// DatabaseConfig selects and tunes the item store.
//
// URI is a MongoDB connection string for the mongo driver and a
// PostgreSQL DSN for the postgres driver. The memory driver ignores it.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=mongo postgres memory"`
	URI             string `koanf:"uri" validate:"required_unless=Driver memory"`
	Name            string `koanf:"name"`
	Collection      string `koanf:"collection"`
	ConnectTimeout  int    `koanf:"connect_timeout"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// applyDefaults fills the optional database knobs left empty by the environment.
func (d *DatabaseConfig) applyDefaults() {
	if d.Name == "" {
		d.Name = "items"
	}
	if d.Collection == "" {
		d.Collection = "items"
	}
	if d.ConnectTimeout == 0 {
		d.ConnectTimeout = 10
	}
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = 10
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = 2
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = 3600
	}
	if d.ConnMaxIdleTime == 0 {
		d.ConnMaxIdleTime = 300
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, validates it, applies defaults, and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix ITEMS_
//   - Unmarshals into Config
//   - Validates required blocks and fields
//   - Fills database defaults and a default observability block
//   - Forces the observability service name and environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}

	// "" unmarshals from the root of the key tree.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := mainConfig.finalize(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// finalize validates the decoded config and injects defaults. It is split
// from LoadConfig so tests can run it on hand-built configs.
func (c *Config) finalize() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	c.Database.applyDefaults()

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service naming is fixed so telemetry is grouped consistently.
	c.Observability.ServiceName = "items-api"
	c.Observability.Environment = c.Primary.Env

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

// RedisEnabled reports whether a Redis block was supplied.
func (c *Config) RedisEnabled() bool {
	return c.Redis != nil && c.Redis.Address != ""
}
