package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "CART_BACKEND", "CART_KEY", "DEFAULT_PAGE_SIZE", "RABBITMQ_URL", "SQLITE_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "sql", cfg.CartBackend)
	assert.Equal(t, "cart", cfg.CartKey)
	assert.Equal(t, 8, cfg.DefaultPageSize)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, "storefront.db", cfg.DSN())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PG_DSN", "postgres://u:p@db:5432/x")
	t.Setenv("CART_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DEFAULT_PAGE_SIZE", "12")

	cfg := Load()
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DSN())
	assert.Equal(t, "redis", cfg.CartBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 12, cfg.DefaultPageSize)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("DEFAULT_PAGE_SIZE", "lots")
	assert.Equal(t, 8, getEnvInt("DEFAULT_PAGE_SIZE", 8))
}
