package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets keys for the duration of the test. t.Setenv first, so the
// original values come back afterwards.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "PORT", "MONGO_URI", "MONGO_DB", "JWT_SECRET",
		"AUTH_COOKIE_NAME", "FRONTEND_URL", "COOKIE_SECURE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "chat", cfg.MongoDB)
	assert.Equal(t, "jwt", cfg.AuthCookieName)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "chat_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("AUTH_COOKIE_NAME", "session")
	t.Setenv("FRONTEND_URL", "https://chat.example")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "chat_test", cfg.MongoDB)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "session", cfg.AuthCookieName)
	assert.Equal(t, "https://chat.example", cfg.FrontendURL)
	assert.True(t, cfg.CookieSecure)
}
