// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must
// be provided via CLI flags or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisAddr   string `json:"redis_addr,omitempty"`   // Redis address for the geocode cache

	// External services
	APIKey          string `json:"api_key,omitempty"`          // Gemini API key
	ElevenLabsKey   string `json:"elevenlabs_key,omitempty"`   // ElevenLabs API key
	EventbriteToken string `json:"eventbrite_token,omitempty"` // Eventbrite token for food-drive search

	// Behavior
	EstimatorMode string `json:"estimator_mode,omitempty"` // "detailed" or "quick"
	VoiceID       string `json:"voice_id,omitempty"`       // ElevenLabs voice override
	UseBrowser    bool   `json:"use_browser,omitempty"`    // Headless browser fallback during ingestion
	Verbose       bool   `json:"verbose,omitempty"`        // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.EstimatorMode {
	case "", "detailed", "quick":
	default:
		return fmt.Errorf("config error: 'estimator_mode' must be \"detailed\" or \"quick\", got %q", c.EstimatorMode)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ElevenLabsKey == "" {
		result.ElevenLabsKey = defaults.ElevenLabsKey
	}
	if result.EventbriteToken == "" {
		result.EventbriteToken = defaults.EventbriteToken
	}
	if result.EstimatorMode == "" {
		result.EstimatorMode = defaults.EstimatorMode
	}
	if result.VoiceID == "" {
		result.VoiceID = defaults.VoiceID
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv fills empty fields from environment variables. Env vars never
// override values already set by flags or the config file.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.RedisAddr == "" {
		c.RedisAddr = os.Getenv("REDIS_ADDR")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.ElevenLabsKey == "" {
		c.ElevenLabsKey = os.Getenv("ELEVENLABS_API_KEY")
	}
	if c.EventbriteToken == "" {
		c.EventbriteToken = os.Getenv("EVENTBRITE_TOKEN")
	}
	if c.EstimatorMode == "" {
		c.EstimatorMode = os.Getenv("ESTIMATOR_MODE")
	}
	if c.VoiceID == "" {
		c.VoiceID = os.Getenv("ELEVENLABS_VOICE_ID")
	}
}
