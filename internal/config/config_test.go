package config

import (
	"strings"
	"testing"
	"time"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "DB_PATH", "TZ", "COOKIE_SECURE", "FORECAST_DAYS",
		"REMINDER_SCHEDULE", "REMINDER_DAYS_BEFORE", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SECRET_KEY", validSecret)
}

func TestResolveSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is empty")
	}

	t.Setenv("SECRET_KEY", "change_me_in_production")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses insecure placeholder")
	}

	t.Setenv("SECRET_KEY", "replace_with_at_least_32_random_characters")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses example placeholder")
	}

	t.Setenv("SECRET_KEY", "too-short-secret")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is too short")
	}

	t.Setenv("SECRET_KEY", validSecret)
	secret, err := resolveSecretKey()
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != validSecret {
		t.Fatalf("expected %q, got %q", validSecret, secret)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
	if cfg.Env != EnvDevelopment || cfg.IsProduction() {
		t.Fatalf("expected development env, got %q", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if !strings.HasSuffix(cfg.DBPath, "flowstate.db") {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Location)
	}
	if cfg.ForecastDays != 30 || cfg.ReminderDaysBefore != 2 {
		t.Fatalf("unexpected defaults: forecast=%d reminder=%d", cfg.ForecastDays, cfg.ReminderDaysBefore)
	}
	if cfg.ReminderSchedule != "0 8 * * *" {
		t.Fatalf("unexpected schedule %q", cfg.ReminderSchedule)
	}
	if cfg.TelegramEnabled() {
		t.Fatal("expected telegram disabled without token")
	}
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: "PORT", value: "http"},
		{name: "port out of range", key: "PORT", value: "70000"},
		{name: "forecast too large", key: "FORECAST_DAYS", value: "400"},
		{name: "forecast zero", key: "FORECAST_DAYS", value: "0"},
		{name: "negative reminder", key: "REMINDER_DAYS_BEFORE", value: "-1"},
		{name: "bad schedule", key: "REMINDER_SCHEDULE", value: "every day"},
		{name: "bad bool", key: "COOKIE_SECURE", value: "maybe"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(testCase.key, testCase.value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected error for %s=%q", testCase.key, testCase.value)
			}
		})
	}
}

func TestFromEnvInvalidTimezoneFallsBackToUTC(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TZ", "Mars/Olympus")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", cfg.Location)
	}
	if len(cfg.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", cfg.Warnings)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("FORECAST_DAYS", "90")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
	if !cfg.IsProduction() || !cfg.CookieSecure || !cfg.TelegramEnabled() || cfg.ForecastDays != 90 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
