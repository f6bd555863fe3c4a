package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the scheduler
// service.
type Config struct {
	HTTPPort        int
	SQLiteDSN       string
	ActivityLogPath string
	Timezone        string
	LogLevel        string
}

// Load parses configuration from the process environment. A .env file in the
// working directory is folded in first when present; real environment
// variables win over .env entries.
//
// Optional fields fall back to defaults; invalid values are accumulated and
// reported together.
func Load() (Config, error) {
	// godotenv.Load never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}

	cfg := Config{
		HTTPPort:        8080,
		SQLiteDSN:       "file:scheduler.db",
		ActivityLogPath: "login_activity.txt",
		Timezone:        "",
		LogLevel:        "info",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if path := strings.TrimSpace(os.Getenv("SCHEDULER_ACTIVITY_LOG")); path != "" {
		cfg.ActivityLogPath = path
	}

	if zone := strings.TrimSpace(os.Getenv("SCHEDULER_TIMEZONE")); zone != "" {
		if _, err := time.LoadLocation(zone); err != nil {
			invalid = append(invalid, "SCHEDULER_TIMEZONE")
		} else {
			cfg.Timezone = zone
		}
	}

	if level := strings.TrimSpace(os.Getenv("SCHEDULER_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "SCHEDULER_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
