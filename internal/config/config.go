package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	minSecretKeyLength = 32
	maxForecastDays    = 366
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Env          string
	SecretKey    string
	Port         string
	DBPath       string
	Location     *time.Location
	CookieSecure bool
	ForecastDays int

	ReminderSchedule   string
	ReminderDaysBefore int
	TelegramBotToken   string
	TelegramChatID     string

	// Warnings collects recoverable problems such as an unknown TZ.
	Warnings []string
}

func (cfg *Config) IsProduction() bool {
	return cfg.Env == EnvProduction
}

func (cfg *Config) TelegramEnabled() bool {
	return cfg.TelegramBotToken != "" && cfg.TelegramChatID != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:              strings.ToLower(get("APP_ENV", EnvDevelopment)),
		DBPath:           get("DB_PATH", filepath.Join("data", "flowstate.db")),
		ReminderSchedule: get("REMINDER_SCHEDULE", "0 8 * * *"),
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:   strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
	}

	var err error
	if cfg.SecretKey, err = resolveSecretKey(); err != nil {
		return nil, err
	}
	if cfg.Port, err = resolvePort(); err != nil {
		return nil, err
	}
	if cfg.CookieSecure, err = getBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.ForecastDays, err = getInt("FORECAST_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.ForecastDays < 1 || cfg.ForecastDays > maxForecastDays {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and %d, got %d", maxForecastDays, cfg.ForecastDays)
	}
	if cfg.ReminderDaysBefore, err = getInt("REMINDER_DAYS_BEFORE", 2); err != nil {
		return nil, err
	}
	if cfg.ReminderDaysBefore < 0 {
		return nil, fmt.Errorf("REMINDER_DAYS_BEFORE must not be negative, got %d", cfg.ReminderDaysBefore)
	}
	if _, err := cron.ParseStandard(cfg.ReminderSchedule); err != nil {
		return nil, fmt.Errorf("REMINDER_SCHEDULE %q: %w", cfg.ReminderSchedule, err)
	}

	cfg.Location, err = time.LoadLocation(get("TZ", "UTC"))
	if err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid TZ %q, falling back to UTC", os.Getenv("TZ")))
		cfg.Location = time.UTC
	}

	return cfg, nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := get("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return raw, nil
}

func get(key string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return value, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}
