// Package config provides voice session token configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// SessionConfig holds configuration for voice session token generation and
// validation.
type SessionConfig struct {
	Secret     string
	TTLMinutes int
}

// NewSessionConfig creates a session configuration from environment
// variables. It reads SESSION_SECRET (required) and SESSION_TTL_MINUTES
// (default: 15).
func NewSessionConfig() (*SessionConfig, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required but not set")
	}

	ttlStr := os.Getenv("SESSION_TTL_MINUTES")
	if ttlStr == "" {
		ttlStr = "15" // default
	}

	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES: %v", err)
	}

	config := &SessionConfig{
		Secret:     secret,
		TTLMinutes: ttlMinutes,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *SessionConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("SESSION_SECRET cannot be empty")
	}
	if c.TTLMinutes < 1 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be at least 1 minute, got: %d", c.TTLMinutes)
	}
	return nil
}
