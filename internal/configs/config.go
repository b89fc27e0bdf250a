package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stijnvandrunen98/huurkans/internal/constants"

	"github.com/joho/godotenv"
)

// IngestConfig хранит конфигурацию границы инжеста
type IngestConfig struct {
	URL       string
	Secret    string
	BatchSize int
	Timeout   time.Duration
}

// CrawlConfig хранит лимиты обхода, общие для всех источников
type CrawlConfig struct {
	MaxListPages     int
	MaxDetailURLs    int
	FetchConcurrency int
	FetchTimeout     time.Duration
	GlobalDeadline   time.Duration
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения.
// Собирается один раз на старте; компоненты не читают env напрямую.
type AppConfig struct {
	AppName      string
	Ingest       IngestConfig
	Crawl        CrawlConfig
	FeedURLs     []string
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Отсутствие обязательных значений (endpoint, secret) — фатальная ошибка
// старта, а не ошибка отдельного элемента.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		// .env опционален: в CI всё приходит через окружение процесса
		log.Printf("Info: could not load .env file (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-parser-service")

	cfg.Ingest.URL = os.Getenv("INGEST_URL")
	if cfg.Ingest.URL == "" {
		return nil, fmt.Errorf("INGEST_URL environment variable is required")
	}

	cfg.Ingest.Secret = os.Getenv("INGEST_SECRET")
	if cfg.Ingest.Secret == "" {
		return nil, fmt.Errorf("INGEST_SECRET environment variable is required")
	}

	cfg.Ingest.BatchSize = getEnvAsInt("INGEST_BATCH_SIZE", constants.DefaultBatchSize)
	cfg.Ingest.Timeout = getEnvAsDuration("INGEST_TIMEOUT", constants.DefaultIngestTimeout)

	cfg.Crawl.MaxListPages = getEnvAsInt("CRAWL_MAX_LIST_PAGES", constants.DefaultMaxListPages)
	cfg.Crawl.MaxDetailURLs = getEnvAsInt("CRAWL_MAX_DETAIL_URLS", constants.DefaultMaxDetailURLs)
	cfg.Crawl.FetchConcurrency = getEnvAsInt("CRAWL_FETCH_CONCURRENCY", constants.DefaultFetchConcurrency)
	cfg.Crawl.FetchTimeout = getEnvAsDuration("CRAWL_FETCH_TIMEOUT", constants.DefaultFetchTimeout)
	cfg.Crawl.GlobalDeadline = getEnvAsDuration("CRAWL_GLOBAL_DEADLINE", constants.DefaultGlobalDeadline)

	if cfg.Crawl.FetchConcurrency < 1 {
		return nil, fmt.Errorf("CRAWL_FETCH_CONCURRENCY must be at least 1, got %d", cfg.Crawl.FetchConcurrency)
	}
	if cfg.Ingest.BatchSize < 1 {
		return nil, fmt.Errorf("INGEST_BATCH_SIZE must be at least 1, got %d", cfg.Ingest.BatchSize)
	}

	// FEED_URLS — комма-разделенный список фидов; может быть пустым
	cfg.FeedURLs = splitAndTrim(os.Getenv("FEED_URLS"))

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration читает переменную окружения как time.Duration ("45s", "10m")
// или возвращает значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDur, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDur
}
