package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("ADMIN_EMAILS", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Empty(t, cfg.AdminEmails)
}

func TestLoadConfig_AdminEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "Admin@shop.test, ops@shop.test ,")

	cfg := LoadConfig()

	assert.Equal(t, []string{"admin@shop.test", "ops@shop.test"}, cfg.AdminEmails)
	assert.True(t, cfg.IsAdminEmail("ADMIN@shop.test"))
	assert.False(t, cfg.IsAdminEmail("user@shop.test"))
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("STORE_PATH", "/tmp/ledger")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, "/tmp/ledger", cfg.StorePath)
}
