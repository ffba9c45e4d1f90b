package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the API server and the ingest CLI.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	DBPoolerCompat     bool
	Season             string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CacheEnabled       bool
	CacheTTL           time.Duration
	ScrapeBaseURL      string
	ScrapeCookie       string
	ScrapeUserAgent    string
	ScrapeMinGap       time.Duration
	ScrapeMaxRetries   int
	ScrapeTimeout      time.Duration
	IngestDebug        bool
	CI                 bool
	LogLevel           logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	scrapeMinGap, err := time.ParseDuration(getEnv("SCRAPE_MIN_GAP", "1500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_MIN_GAP: %w", err)
	}
	if scrapeMinGap <= 0 {
		return Config{}, fmt.Errorf("SCRAPE_MIN_GAP must be > 0")
	}
	scrapeMaxRetries, err := getEnvAsInt("SCRAPE_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_MAX_RETRIES: %w", err)
	}
	if scrapeMaxRetries < 0 {
		return Config{}, fmt.Errorf("SCRAPE_MAX_RETRIES must be >= 0")
	}
	scrapeTimeout, err := time.ParseDuration(getEnv("SCRAPE_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_TIMEOUT: %w", err)
	}
	if scrapeTimeout <= 0 {
		return Config{}, fmt.Errorf("SCRAPE_TIMEOUT must be > 0")
	}

	ingestDebug, err := strconv.ParseBool(getEnv("INGEST_DEBUG", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_DEBUG: %w", err)
	}

	// Supabase projects expose the pooler URL under their own variable;
	// accept it as a fallback so deploys need no renaming. An empty value
	// puts the API into seeded in-memory mode.
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		dbURL = strings.TrimSpace(getEnv("SUPABASE_DB_URL", ""))
	}

	dbPoolerCompat, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "lv-floorball-fantasy-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:              dbURL,
		DBPoolerCompat:     dbPoolerCompat,
		Season:             getEnv("APP_SEASON", currentSeason(time.Now())),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CacheEnabled:       cacheEnabled,
		CacheTTL:           cacheTTL,
		ScrapeBaseURL:      strings.TrimRight(getEnv("SCRAPE_BASE_URL", "https://www.floorball.lv"), "/"),
		ScrapeCookie:       strings.TrimSpace(getEnv("SCRAPE_COOKIE", "")),
		ScrapeUserAgent:    getEnv("SCRAPE_USER_AGENT", ""),
		ScrapeMinGap:       scrapeMinGap,
		ScrapeMaxRetries:   scrapeMaxRetries,
		ScrapeTimeout:      scrapeTimeout,
		IngestDebug:        ingestDebug,
		CI:                 isTruthy(os.Getenv("CI")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// currentSeason derives the "2024/2025" style label: league seasons start in
// August and run across the calendar year boundary.
func currentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() < time.August {
		year--
	}
	return fmt.Sprintf("%d/%d", year, year+1)
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
