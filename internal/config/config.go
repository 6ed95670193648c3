// Пакет config — загрузка и валидация конфигурации Library
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Library.
type Config struct {
	// Порт HTTP-сервера
	Port int
	// Путь к директории хранения загруженных файлов
	DataDir string
	// Путь к документу каталога (database.json)
	DBPath string
	// Максимальный размер загружаемого файла в байтах (0 — без лимита)
	MaxFileSize int64
	// Интервал фоновой сверки директории загрузок с каталогом
	ReconcileInterval time.Duration
	// Максимальное количество записей в LRU-кэше
	CacheSize int
	// TTL записи LRU-кэша
	CacheTTL time.Duration
	// Разрешённые CORS origins (через запятую)
	CORSOrigins []string
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
// Перед чтением окружения подхватывается .env файл, если он есть.
func Load() (*Config, error) {
	// .env — только для локальной разработки, отсутствие не ошибка
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	// LIB_PORT — порт HTTP-сервера (по умолчанию 8080)
	port, err := getEnvInt("LIB_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("LIB_PORT: %w", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("LIB_PORT: значение %d вне допустимого диапазона 1-65535", port)
	}
	cfg.Port = port

	// LIB_DATA_DIR — обязательный, директория загрузок
	cfg.DataDir, err = getEnvRequired("LIB_DATA_DIR")
	if err != nil {
		return nil, err
	}

	// LIB_DB_PATH — обязательный, путь к database.json
	cfg.DBPath, err = getEnvRequired("LIB_DB_PATH")
	if err != nil {
		return nil, err
	}

	// LIB_MAX_FILE_SIZE — максимальный размер файла (по умолчанию 64 MB)
	maxFileSize, err := getEnvInt64("LIB_MAX_FILE_SIZE", 67108864)
	if err != nil {
		return nil, fmt.Errorf("LIB_MAX_FILE_SIZE: %w", err)
	}
	if maxFileSize < 0 {
		return nil, fmt.Errorf("LIB_MAX_FILE_SIZE: значение должно быть неотрицательным")
	}
	cfg.MaxFileSize = maxFileSize

	// LIB_RECONCILE_INTERVAL — интервал сверки (по умолчанию 6h)
	cfg.ReconcileInterval, err = getEnvDuration("LIB_RECONCILE_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("LIB_RECONCILE_INTERVAL: %w", err)
	}

	// LIB_CACHE_SIZE — размер LRU-кэша (по умолчанию 1024)
	cfg.CacheSize, err = getEnvInt("LIB_CACHE_SIZE", 1024)
	if err != nil {
		return nil, fmt.Errorf("LIB_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("LIB_CACHE_SIZE: значение должно быть положительным")
	}

	// LIB_CACHE_TTL — TTL записи кэша (по умолчанию 5m)
	cfg.CacheTTL, err = getEnvDuration("LIB_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("LIB_CACHE_TTL: %w", err)
	}

	// LIB_CORS_ORIGINS — разрешённые origins (по умолчанию "*")
	origins := getEnvDefault("LIB_CORS_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("LIB_CORS_ORIGINS: список origins пуст")
	}

	// LIB_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("LIB_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LIB_LOG_LEVEL: %w", err)
	}

	// LIB_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("LIB_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("LIB_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// LIB_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("LIB_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("LIB_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvInt64 возвращает int64 значение переменной окружения или значение по умолчанию.
func getEnvInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 5m, 6h)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
