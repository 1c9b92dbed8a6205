package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"port": 8080,
		"database_url": "postgres://localhost/benefind",
		"estimator_mode": "quick",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/benefind", cfg.DatabaseURL)
	assert.Equal(t, "quick", cfg.EstimatorMode)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	valid := &Config{Port: 8080, EstimatorMode: "detailed"}
	assert.NoError(t, valid.Validate())

	assert.NoError(t, (&Config{}).Validate())

	badPort := &Config{Port: 70000}
	assert.Error(t, badPort.Validate())

	badMode := &Config{EstimatorMode: "approximate"}
	assert.Error(t, badMode.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9090, EstimatorMode: "quick"}
	defaults := Config{
		Port:          8080,
		DatabaseURL:   "postgres://localhost/benefind",
		EstimatorMode: "detailed",
		VoiceID:       "custom-voice",
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Set values win over defaults
	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, "quick", merged.EstimatorMode)
	// Empty values come from defaults
	assert.Equal(t, "postgres://localhost/benefind", merged.DatabaseURL)
	assert.Equal(t, "custom-voice", merged.VoiceID)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/benefind")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{APIKey: "flag-key"}
	cfg.FromEnv()

	// Env fills empties but never overrides
	assert.Equal(t, "postgres://env/benefind", cfg.DatabaseURL)
	assert.Equal(t, "flag-key", cfg.APIKey)
}

func TestNewSessionConfig(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_MINUTES", "30")

	cfg, err := NewSessionConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 30, cfg.TTLMinutes)
}

func TestNewSessionConfig_MissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	_, err := NewSessionConfig()
	assert.Error(t, err)
}

func TestNewSessionConfig_BadTTL(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_MINUTES", "zero")
	_, err := NewSessionConfig()
	assert.Error(t, err)

	t.Setenv("SESSION_TTL_MINUTES", "0")
	_, err = NewSessionConfig()
	assert.Error(t, err)
}
