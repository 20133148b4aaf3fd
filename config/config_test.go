package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "memory", AppConfig.SessionBackend)
	assert.Equal(t, "Darmstadt, Hessen", AppConfig.DefaultLocation)
	assert.Equal(t, "de", AppConfig.DefaultLanguage)
	assert.Equal(t, "gemini-2.5-flash", AppConfig.GeminiMapsModel)
	assert.Equal(t, 1500, AppConfig.AuthDelayMs)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("MAX_REQUESTS_PER_MIN", "12")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.AppPort)
	assert.Equal(t, "redis", AppConfig.SessionBackend)
	assert.Equal(t, 12, AppConfig.MaxRequestsPerMin)
}

func TestOrigins(t *testing.T) {
	AppConfig.AllowedOrigins = "https://eventkompass.de, http://localhost:5173,,"
	assert.Equal(t, []string{"https://eventkompass.de", "http://localhost:5173"}, Origins())

	AppConfig.AllowedOrigins = ""
	assert.Equal(t, []string{"*"}, Origins())
}

func TestIsProduction(t *testing.T) {
	AppConfig.Env = "production"
	assert.True(t, IsProduction())
	AppConfig.Env = "development"
	assert.False(t, IsProduction())
}

func TestTrustedProxies(t *testing.T) {
	AppConfig.TrustedProxies = ""
	assert.Nil(t, TrustedProxies())

	AppConfig.TrustedProxies = "10.0.0.0/8, 192.0.2.1"
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, TrustedProxies())
}
