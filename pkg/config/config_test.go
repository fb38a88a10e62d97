package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRY", "not-a-number")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, int64(24*60*60), cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.UseFirestore())
}

func TestUseFirestore(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "storefront-dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UseFirestore())
}
