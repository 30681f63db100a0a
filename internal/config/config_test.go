package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAPIURL(t *testing.T) {
	t.Setenv("LEADBOT_API_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEADBOT_API_URL")
}

func TestLoadRejectsBadAPIURL(t *testing.T) {
	for _, raw := range []string{"not a url", "ftp://example.com", "http://"} {
		t.Setenv("LEADBOT_API_URL", raw)
		_, err := Load()
		assert.Error(t, err, "url %q", raw)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LEADBOT_API_URL", "https://api.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.DefaultAPIURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "leadbot.db", cfg.DBPath)
	assert.Nil(t, cfg.SecretKey)
}

func TestLoadOverrides(t *testing.T) {
	key := make([]byte, 32)
	t.Setenv("LEADBOT_API_URL", "https://api.example.com")
	t.Setenv("LEADBOT_API_TIMEOUT", "3s")
	t.Setenv("LEADBOT_LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("LEADBOT_DB_PATH", "/data/leadbot.db")
	t.Setenv("LEADBOT_SECRET_KEY", base64.StdEncoding.EncodeToString(key))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
	assert.Equal(t, "/data/leadbot.db", cfg.DBPath)
	assert.Equal(t, key, cfg.SecretKey)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("LEADBOT_API_URL", "https://api.example.com")
	t.Setenv("LEADBOT_API_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadSecretKey(t *testing.T) {
	t.Setenv("LEADBOT_API_URL", "https://api.example.com")

	t.Setenv("LEADBOT_SECRET_KEY", "!!not-base64!!")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("LEADBOT_SECRET_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}
