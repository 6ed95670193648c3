package config

import (
	"log/slog"
	"testing"
	"time"
)

// setRequired задаёт минимальный набор обязательных переменных.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("LIB_DATA_DIR", "/tmp/uploads")
	t.Setenv("LIB_DB_PATH", "/tmp/database.json")
}

// TestLoad_Defaults проверяет значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернула ошибку: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидалось 8080", cfg.Port)
	}
	if cfg.DataDir != "/tmp/uploads" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.DBPath != "/tmp/database.json" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.MaxFileSize != 67108864 {
		t.Errorf("MaxFileSize = %d, ожидалось 67108864", cfg.MaxFileSize)
	}
	if cfg.ReconcileInterval != 6*time.Hour {
		t.Errorf("ReconcileInterval = %v, ожидалось 6h", cfg.ReconcileInterval)
	}
	if cfg.CacheSize != 1024 {
		t.Errorf("CacheSize = %d, ожидалось 1024", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, ожидалось 5m", cfg.CacheTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, ожидалось [*]", cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидалось info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидалось json", cfg.LogFormat)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидалось 5s", cfg.ShutdownTimeout)
	}
}

// TestLoad_Overrides проверяет переопределение значений из окружения.
func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LIB_PORT", "9090")
	t.Setenv("LIB_MAX_FILE_SIZE", "1048576")
	t.Setenv("LIB_RECONCILE_INTERVAL", "30m")
	t.Setenv("LIB_CACHE_SIZE", "64")
	t.Setenv("LIB_CACHE_TTL", "10s")
	t.Setenv("LIB_CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LIB_LOG_LEVEL", "debug")
	t.Setenv("LIB_LOG_FORMAT", "text")
	t.Setenv("LIB_SHUTDOWN_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернула ошибку: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, ожидалось 9090", cfg.Port)
	}
	if cfg.MaxFileSize != 1048576 {
		t.Errorf("MaxFileSize = %d, ожидалось 1048576", cfg.MaxFileSize)
	}
	if cfg.ReconcileInterval != 30*time.Minute {
		t.Errorf("ReconcileInterval = %v, ожидалось 30m", cfg.ReconcileInterval)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d, ожидалось 64", cfg.CacheSize)
	}
	if cfg.CacheTTL != 10*time.Second {
		t.Errorf("CacheTTL = %v, ожидалось 10s", cfg.CacheTTL)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, ожидалось %v", cfg.CORSOrigins, want)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидалось debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидалось text", cfg.LogFormat)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидалось 15s", cfg.ShutdownTimeout)
	}
}

// TestLoad_RequiredMissing проверяет ошибку при отсутствии обязательных переменных.
func TestLoad_RequiredMissing(t *testing.T) {
	t.Setenv("LIB_DATA_DIR", "")
	t.Setenv("LIB_DB_PATH", "")

	if _, err := Load(); err == nil {
		t.Error("Load() должна вернуть ошибку без LIB_DATA_DIR")
	}

	t.Setenv("LIB_DATA_DIR", "/tmp/uploads")
	if _, err := Load(); err == nil {
		t.Error("Load() должна вернуть ошибку без LIB_DB_PATH")
	}
}

// TestLoad_InvalidValues проверяет валидацию некорректных значений.
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"порт не число", "LIB_PORT", "abc"},
		{"порт вне диапазона", "LIB_PORT", "70000"},
		{"отрицательный размер файла", "LIB_MAX_FILE_SIZE", "-1"},
		{"некорректный интервал", "LIB_RECONCILE_INTERVAL", "six hours"},
		{"нулевой размер кэша", "LIB_CACHE_SIZE", "0"},
		{"некорректный TTL", "LIB_CACHE_TTL", "5 минут"},
		{"недопустимый уровень логов", "LIB_LOG_LEVEL", "verbose"},
		{"недопустимый формат логов", "LIB_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() должна вернуть ошибку для %s=%q", tt.key, tt.value)
			}
		})
	}
}

// TestParseLogLevel проверяет разбор уровней логирования.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		if err != nil {
			t.Errorf("parseLogLevel(%q) вернула ошибку: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, ожидалось %v", tt.in, got, tt.want)
		}
	}

	if _, err := parseLogLevel("trace"); err == nil {
		t.Error("parseLogLevel(\"trace\") должна вернуть ошибку")
	}
}
