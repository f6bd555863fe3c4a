package config

import (
	"os"
	"testing"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"SCHEDULER_HTTP_PORT",
			"SCHEDULER_SQLITE_DSN",
			"SCHEDULER_ACTIVITY_LOG",
			"SCHEDULER_TIMEZONE",
			"SCHEDULER_LOG_LEVEL",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:scheduler.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.ActivityLogPath != "login_activity.txt" {
			t.Fatalf("unexpected default activity log path: %q", cfg.ActivityLogPath)
		}
		if cfg.LogLevel != "info" {
			t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
		}
	})

	t.Run("parses provided values", func(t *testing.T) {
		t.Setenv("SCHEDULER_HTTP_PORT", "9090")
		t.Setenv("SCHEDULER_SQLITE_DSN", "file:/tmp/scheduler.db")
		t.Setenv("SCHEDULER_ACTIVITY_LOG", "/tmp/login_activity.txt")
		t.Setenv("SCHEDULER_TIMEZONE", "America/Chicago")
		t.Setenv("SCHEDULER_LOG_LEVEL", "DEBUG")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:/tmp/scheduler.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.ActivityLogPath != "/tmp/login_activity.txt" {
			t.Fatalf("unexpected activity log path: %q", cfg.ActivityLogPath)
		}
		if cfg.Timezone != "America/Chicago" {
			t.Fatalf("unexpected timezone: %q", cfg.Timezone)
		}
		if cfg.LogLevel != "debug" {
			t.Fatalf("expected log level debug, got %q", cfg.LogLevel)
		}
	})

	t.Run("accumulates invalid values", func(t *testing.T) {
		t.Setenv("SCHEDULER_HTTP_PORT", "not-a-port")
		t.Setenv("SCHEDULER_TIMEZONE", "Nowhere/Imagined")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "invalid environment variable values: SCHEDULER_HTTP_PORT, SCHEDULER_TIMEZONE"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}
