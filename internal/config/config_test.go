package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_EXPIRY", "")
	t.Setenv("UNIQUE_COMPLETIONS", "")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.TokenExpiry)
	assert.True(t, cfg.UniqueCompletions)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_EXPIRY", "30m")
	t.Setenv("UNIQUE_COMPLETIONS", "false")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("ADMIN_BOOTSTRAP_NAME", "Somsri Jaidee")

	cfg := LoadConfig()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.TokenExpiry)
	assert.False(t, cfg.UniqueCompletions)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "Somsri Jaidee", cfg.AdminBootstrapName)
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_EXPIRY", "soon")
	t.Setenv("UNIQUE_COMPLETIONS", "maybe")

	cfg := LoadConfig()
	assert.Equal(t, 72*time.Hour, cfg.TokenExpiry)
	assert.True(t, cfg.UniqueCompletions)
}
