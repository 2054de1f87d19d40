package config_test

import (
	"testing"
	"time"

	"hr-portal/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_HOST", "PGHOST", "DB_MAX_RETRIES", "ADMIN_EMAILS", "ENFORCE_ADMIN", "OUTBOX_POLL_INTERVAL"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()

	assert.Equal(t, "5000", cfg.HTTP.Port)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5, cfg.DB.MaxRetries)
	assert.False(t, cfg.EnforceAdmin)
	assert.Empty(t, cfg.AdminEmails)
	assert.Equal(t, 3*time.Second, cfg.Outbox.PollInterval)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_HOST", "")
	t.Setenv("PGHOST", "pg.internal")
	t.Setenv("DB_MAX_RETRIES", "2")
	t.Setenv("ADMIN_EMAILS", " Boss@Corp.io , hr@corp.io,")
	t.Setenv("ENFORCE_ADMIN", "true")
	t.Setenv("JWT_ACCESS_EXPIRY", "15m")
	t.Setenv("APP_ENV", "production")

	cfg := config.Load()

	assert.Equal(t, "8081", cfg.HTTP.Port)
	assert.Equal(t, "pg.internal", cfg.DB.Host)
	assert.Equal(t, 2, cfg.DB.MaxRetries)
	assert.Equal(t, []string{"Boss@Corp.io", "hr@corp.io"}, cfg.AdminEmails)
	assert.True(t, cfg.EnforceAdmin)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.IsAdminEmail("boss@corp.io"))
	assert.False(t, cfg.IsAdminEmail("intern@corp.io"))
}
