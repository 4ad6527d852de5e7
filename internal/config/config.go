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
)

const (
	defaultPort               = "8080"
	defaultReminderCron       = "0 9 * * *"
	defaultPeriodReminderDays = 2
	minSecretKeyLength        = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port               string
	DBPath             string
	SecretKey          string
	Location           *time.Location
	CookieSecure       bool
	LogLevel           string
	Environment        string
	TelegramBotToken   string
	ReminderCron       string
	PeriodReminderDays int
	NotifyFertility    bool

	// LocationWarning is set when TZ could not be loaded and UTC was used.
	LocationWarning string
}

// Load reads a .env file when present, then the process environment.
// Variables already set in the environment win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secretKey, err := resolveSecretKey()
	if err != nil {
		return nil, err
	}
	port, err := resolvePort()
	if err != nil {
		return nil, err
	}
	periodReminderDays, err := resolveNonNegativeInt("PERIOD_REMINDER_DAYS", defaultPeriodReminderDays)
	if err != nil {
		return nil, err
	}
	cookieSecure, err := resolveBool("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}
	notifyFertility, err := resolveBool("NOTIFY_FERTILITY", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               port,
		DBPath:             getEnv("DB_PATH", filepath.Join("data", "phasecast.db")),
		SecretKey:          secretKey,
		CookieSecure:       cookieSecure,
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment:        strings.ToLower(getEnv("ENVIRONMENT", "development")),
		TelegramBotToken:   strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		ReminderCron:       getEnv("REMINDER_CRON", defaultReminderCron),
		PeriodReminderDays: periodReminderDays,
		NotifyFertility:    notifyFertility,
	}
	cfg.Location, cfg.LocationWarning = resolveLocation(getEnv("TZ", "UTC"))
	return cfg, nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is not set")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("invalid PORT %q: %w", raw, err)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q: out of range", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveLocation(name string) (*time.Location, string) {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Sprintf("invalid TZ %q, falling back to UTC", name)
	}
	return location, ""
}

func resolveNonNegativeInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
