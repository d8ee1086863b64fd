// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.Cart.GuestTTL)
	assert.False(t, cfg.Cart.ClearOnLogout)
	assert.True(t, cfg.Cart.PublishNotifications)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadCartOverrides(t *testing.T) {
	t.Setenv("CART_GUEST_TTL", "48h")
	t.Setenv("CART_CLEAR_ON_LOGOUT", "true")
	t.Setenv("CART_PUBLISH_NOTIFICATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, cfg.Cart.GuestTTL)
	assert.True(t, cfg.Cart.ClearOnLogout)
	assert.False(t, cfg.Cart.PublishNotifications)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Host: "localhost", Name: "storefront_db", User: "storefront_user"},
			Redis:    RedisConfig{Host: "localhost"},
			JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
			Cart:     CartConfig{GuestTTL: time.Hour},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short jwt secret", func(c *Config) { c.JWT.Secret = "too-short" }},
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db name", func(c *Config) { c.Database.Name = "" }},
		{"missing redis host", func(c *Config) { c.Redis.Host = "" }},
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"non-positive guest ttl", func(c *Config) { c.Cart.GuestTTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConnectionStrings(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host: "db", Port: "5432", User: "u", Password: "p", Name: "storefront_db", SSLMode: "disable",
		},
		Redis: RedisConfig{Host: "cache", Port: "6379"},
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=storefront_db sslmode=disable", cfg.GetDatabaseDSN())
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}
