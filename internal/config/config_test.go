package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()

	t.Setenv("ITEMS_PRIMARY.ENV", "test")
	t.Setenv("ITEMS_SERVER.PORT", "8080")
	t.Setenv("ITEMS_SERVER.READ_TIMEOUT", "30")
	t.Setenv("ITEMS_SERVER.WRITE_TIMEOUT", "30")
	t.Setenv("ITEMS_SERVER.IDLE_TIMEOUT", "60")
	t.Setenv("ITEMS_SERVER.CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func TestLoadConfig(t *testing.T) {
	t.Run("MongoDefaults", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ITEMS_DATABASE.DRIVER", "mongo")
		t.Setenv("ITEMS_DATABASE.URI", "mongodb://localhost:27017")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 30, cfg.Server.ReadTimeout)
		assert.Zero(t, cfg.Server.RateLimit)
		assert.Equal(t, DriverMongo, cfg.Database.Driver)
		assert.Equal(t, "items", cfg.Database.Name)
		assert.Equal(t, "items", cfg.Database.Collection)
		assert.Equal(t, 10, cfg.Database.ConnectTimeout)
		assert.False(t, cfg.RedisEnabled())

		require.NotNil(t, cfg.Observability)
		assert.Equal(t, "items-api", cfg.Observability.ServiceName)
		assert.Equal(t, "test", cfg.Observability.Environment)
		assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
	})

	t.Run("MemoryNeedsNoURI", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ITEMS_DATABASE.DRIVER", "memory")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, DriverMemory, cfg.Database.Driver)
	})

	t.Run("PostgresNeedsURI", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ITEMS_DATABASE.DRIVER", "postgres")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ITEMS_DATABASE.DRIVER", "sqlite")
		t.Setenv("ITEMS_DATABASE.URI", "file::memory:")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("RedisAndRateLimit", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ITEMS_DATABASE.DRIVER", "memory")
		t.Setenv("ITEMS_REDIS.ADDRESS", "localhost:6379")
		t.Setenv("ITEMS_SERVER.RATE_LIMIT", "2.5")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.RedisEnabled())
		assert.Equal(t, 2.5, cfg.Server.RateLimit)
	})

	t.Run("MissingServerBlock", func(t *testing.T) {
		t.Setenv("ITEMS_PRIMARY.ENV", "test")
		t.Setenv("ITEMS_DATABASE.DRIVER", "memory")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestObservabilityConfig(t *testing.T) {
	t.Run("RejectsUnknownLevel", func(t *testing.T) {
		cfg := DefaultObservabilityConfig()
		cfg.Logging.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("LevelFallsBackByEnvironment", func(t *testing.T) {
		cfg := DefaultObservabilityConfig()
		cfg.Logging.Level = ""

		cfg.Environment = "production"
		assert.Equal(t, "info", cfg.GetLogLevel())
		assert.True(t, cfg.IsProduction())

		cfg.Environment = "development"
		assert.Equal(t, "debug", cfg.GetLogLevel())
	})

	t.Run("CheckEnabled", func(t *testing.T) {
		cfg := DefaultObservabilityConfig()
		assert.True(t, cfg.CheckEnabled("database"))
		assert.False(t, cfg.CheckEnabled("kafka"))

		cfg.HealthChecks.Enabled = false
		assert.False(t, cfg.CheckEnabled("database"))
	})
}
