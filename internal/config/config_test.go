package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("REALTIME_DRIVER", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, RealtimeMemory, cfg.RealtimeDriver)
	assert.False(t, cfg.CheckEmailDomain)
	assert.NotEmpty(t, cfg.TokenFile)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("REALTIME_DRIVER", RealtimeRedis)
	t.Setenv("CHECK_EMAIL_DOMAIN", "true")
	t.Setenv("VISIT_TOKEN_FILE", "/tmp/session.json")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, RealtimeRedis, cfg.RealtimeDriver)
	assert.True(t, cfg.CheckEmailDomain)
	assert.Equal(t, "/tmp/session.json", cfg.TokenFile)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("CHECK_EMAIL_DOMAIN", "maybe")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.CheckEmailDomain)
}
