// Package config provides configuration management for the hostel assistant.
//
// This package handles loading configuration from environment variables,
// validating required settings, and providing sensible defaults for optional
// parameters. Configuration is loaded once at startup and remains immutable
// during runtime for thread-safety.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. .env file in the working directory (loaded via godotenv)
//  3. Hard-coded defaults (lowest priority)
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
//
// This struct is immutable after creation to ensure thread-safety.
// Timeout values are configurable via environment variables to allow
// tuning for different network conditions.
type Config struct {
	// Portal for complaint submission. The constructed pre-fill URL is
	// appended to this address as a plain GET query string.
	PortalBaseURL string

	// Data files loaded at startup
	MenuCSVPath string // Mess schedule table, one row per weekday
	PhotosDir   string // Root of the hostel photo catalog

	// Timezone for menu resolution. All meal-window decisions are made
	// in this single fixed zone.
	Timezone string
	Location *time.Location // Resolved from Timezone during Validate

	// Telegram front end (required unless DebugMode)
	TelegramBotToken string

	// Retrieval/answer backend (optional, informational questions are
	// answered with a static fallback if unset)
	ChatBackendURL string

	// Health check server configuration
	HealthPort string

	// Browser automation for best-effort form pre-filling
	BrowserAutofill   bool
	NavigationTimeout time.Duration // Maximum time for portal page loads

	// HTTP client timeout for the chat backend
	HTTPTimeout time.Duration

	// Debug mode - allows running without a Telegram token
	DebugMode bool
}

// LoadConfig loads configuration from environment variables with defaults.
//
// Loading process:
//  1. Try to load a .env file (optional, env vars still win)
//  2. Read environment variables with defaults for optional values
//  3. Validate that required fields are present and sensible
//
// Returns:
//   - *Config: Fully populated configuration struct
//   - error: Validation error if required fields are missing
func LoadConfig() (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		PortalBaseURL: getEnvOrDefault("PORTAL_BASE_URL", "https://grs.ietlucknow.ac.in/open.php"),

		MenuCSVPath: getEnvOrDefault("MENU_CSV_PATH", "data/mess_menu.csv"),
		PhotosDir:   getEnvOrDefault("PHOTOS_DIR", "hostel_photos"),

		Timezone: getEnvOrDefault("TIMEZONE", "Asia/Kolkata"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatBackendURL:   os.Getenv("CHAT_BACKEND_URL"),

		HealthPort: getEnvOrDefault("HEALTH_PORT", "8080"),

		BrowserAutofill:   getEnvOrDefault("BROWSER_AUTOFILL", "false") == "true",
		NavigationTimeout: getEnvDuration("NAVIGATION_TIMEOUT", 45*time.Second),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 30*time.Second),

		DebugMode: getEnvOrDefault("DEBUG_MODE", "false") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present and values are sensible.
//
// Validation rules:
//   - TELEGRAM_BOT_TOKEN must be set (unless DebugMode, which serves only
//     the HTTP /chat surface)
//   - The menu CSV path must be non-empty (startup is fatal without a table)
//   - The timezone must parse; the resolved *time.Location is stored
//
// Returns:
//   - error: Descriptive error if validation fails, nil if all checks pass
func (c *Config) Validate() error {
	if c.TelegramBotToken == "" && !c.DebugMode {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	if c.MenuCSVPath == "" {
		return fmt.Errorf("MENU_CSV_PATH cannot be empty")
	}
	if c.PortalBaseURL == "" {
		return fmt.Errorf("PORTAL_BASE_URL cannot be empty")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Timezone, err)
	}
	c.Location = loc

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.HTTPTimeout)
	}

	return nil
}

// Helper functions for environment variable parsing

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration returns the environment variable as a duration or a default if not set/invalid.
//
// Accepts standard Go duration strings like "5s", "10m", "1h30m"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
