package config

import (
	"testing"
	"time"
)

// clearEnv unsets every variable LoadConfig reads so tests see only what
// they set themselves. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORTAL_BASE_URL", "MENU_CSV_PATH", "PHOTOS_DIR", "TIMEZONE",
		"TELEGRAM_BOT_TOKEN", "CHAT_BACKEND_URL", "HEALTH_PORT",
		"BROWSER_AUTOFILL", "NAVIGATION_TIMEOUT", "HTTP_TIMEOUT", "DEBUG_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.PortalBaseURL != "https://grs.ietlucknow.ac.in/open.php" {
		t.Errorf("PortalBaseURL = %q", cfg.PortalBaseURL)
	}
	if cfg.MenuCSVPath != "data/mess_menu.csv" {
		t.Errorf("MenuCSVPath = %q", cfg.MenuCSVPath)
	}
	if cfg.Timezone != "Asia/Kolkata" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.Location == nil || cfg.Location.String() != "Asia/Kolkata" {
		t.Errorf("Location = %v", cfg.Location)
	}
	if cfg.HealthPort != "8080" {
		t.Errorf("HealthPort = %q", cfg.HealthPort)
	}
	if cfg.NavigationTimeout != 45*time.Second {
		t.Errorf("NavigationTimeout = %v", cfg.NavigationTimeout)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.BrowserAutofill || cfg.DebugMode {
		t.Error("boolean flags should default to off")
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	clearEnv(t)

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error without TELEGRAM_BOT_TOKEN")
	}

	// Debug mode runs the HTTP surface only; no token needed.
	t.Setenv("DEBUG_MODE", "true")
	if _, err := LoadConfig(); err != nil {
		t.Errorf("debug mode should not require a token: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("PORTAL_BASE_URL", "https://portal.example/open.php")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("BROWSER_AUTOFILL", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PortalBaseURL != "https://portal.example/open.php" {
		t.Errorf("PortalBaseURL = %q", cfg.PortalBaseURL)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v", cfg.Location)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if !cfg.BrowserAutofill {
		t.Error("BrowserAutofill should be on")
	}
}

func TestValidateInvalidTimezone(t *testing.T) {
	cfg := &Config{
		TelegramBotToken: "test-token",
		MenuCSVPath:      "data/mess_menu.csv",
		PortalBaseURL:    "https://portal.example",
		Timezone:         "Mars/Olympus_Mons",
		HTTPTimeout:      time.Second,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != 90*time.Second {
		t.Errorf("got %v", got)
	}

	t.Setenv("TEST_DURATION", "not-a-duration")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("invalid value should fall back to default, got %v", got)
	}

	t.Setenv("TEST_DURATION", "")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("unset value should fall back to default, got %v", got)
	}
}
