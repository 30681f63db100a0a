// Package config loads application configuration from environment variables.
package config

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DefaultAPIURL string
	APITimeout    time.Duration
	ListenAddr    string
	DBPath        string
	SecretKey     []byte
}

// Load reads configuration from environment variables and returns a validated
// Config. LEADBOT_API_URL is required: it is the backend root used for
// onboarding before a user has a stored base URL. LEADBOT_SECRET_KEY is a
// base64-encoded 32-byte AES key; without it credential storage is disabled
// and users cannot onboard. Optional variables with defaults:
// LEADBOT_API_TIMEOUT (10s), LEADBOT_LISTEN_ADDR (127.0.0.1:8080),
// LEADBOT_DB_PATH (leadbot.db).
func Load() (*Config, error) {
	apiURL := os.Getenv("LEADBOT_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("LEADBOT_API_URL is required")
	}
	if u, err := url.Parse(apiURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("LEADBOT_API_URL %q is not a valid http(s) URL", apiURL)
	}

	apiTimeout := 10 * time.Second
	if v, ok := os.LookupEnv("LEADBOT_API_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("LEADBOT_API_TIMEOUT has invalid duration %q: %w", v, err)
		}
		apiTimeout = parsed
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("LEADBOT_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "leadbot.db"
	if v, ok := os.LookupEnv("LEADBOT_DB_PATH"); ok {
		dbPath = v
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("LEADBOT_SECRET_KEY"); ok && v != "" {
		key, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("LEADBOT_SECRET_KEY is not valid base64: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("LEADBOT_SECRET_KEY must decode to 32 bytes, got %d", len(key))
		}
		secretKey = key
	}

	return &Config{
		DefaultAPIURL: apiURL,
		APITimeout:    apiTimeout,
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
		SecretKey:     secretKey,
	}, nil
}
