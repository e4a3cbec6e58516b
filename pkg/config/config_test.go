package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pinpair/pkg/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SESSION_TTL", "PIN_LENGTH", "MAX_PIN_ATTEMPTS"} {
		t.Setenv(key, "")
	}

	cfg := config.LoadConfig()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.SessionTTL)
	require.Equal(t, 4, cfg.PinLength)
	require.Equal(t, 3, cfg.MaxAttempts)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "90s")
	t.Setenv("PIN_LENGTH", "6")
	t.Setenv("MAX_PIN_ATTEMPTS", "5")

	cfg := config.LoadConfig()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 90*time.Second, cfg.SessionTTL)
	require.Equal(t, 6, cfg.PinLength)
	require.Equal(t, 5, cfg.MaxAttempts)
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("PIN_LENGTH", "four")

	cfg := config.LoadConfig()
	require.Equal(t, 5*time.Minute, cfg.SessionTTL)
	require.Equal(t, 4, cfg.PinLength)
}
