package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Data providers
	Yahoo        YahooConfig
	Fundamentals FundamentalsConfig
	News         NewsConfig

	// Analysis
	Analysis AnalysisConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// YahooConfig holds quote/history provider configuration
type YahooConfig struct {
	RateLimit   int // requests per second against the quote API
	HistoryDays int // default lookback for OHLCV history
}

// FundamentalsConfig holds the fundamentals provider configuration
type FundamentalsConfig struct {
	BaseURL string
	APIKey  string
}

// NewsConfig holds the news/sentiment provider configuration
type NewsConfig struct {
	BaseURL     string
	MaxArticles int
}

// AnalysisConfig holds tunables for the recommendation pipeline
type AnalysisConfig struct {
	// Workers bounds concurrent per-symbol analyses in batch mode.
	// Bounded by provider quotas, not CPU.
	Workers int

	// MinConfidence filters batch ranking output
	MinConfidence float64

	// Timeout for a single symbol analysis (all sub-analyses)
	SymbolTimeout time.Duration

	// Universe is the default symbol list for scheduled batch jobs
	Universe []string

	// Cache TTLs per data class
	QuoteTTL        time.Duration
	HistoryTTL      time.Duration
	FundamentalsTTL time.Duration
	SentimentTTL    time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "advisor"),
			User:            getEnv("DB_USER", "advisor"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// Providers
		Yahoo: YahooConfig{
			RateLimit:   getEnvAsInt("YAHOO_RATE_LIMIT", 5),
			HistoryDays: getEnvAsInt("YAHOO_HISTORY_DAYS", 365),
		},

		Fundamentals: FundamentalsConfig{
			BaseURL: getEnv("FUNDAMENTALS_BASE_URL", "https://www.alphavantage.co/query"),
			APIKey:  getEnv("FUNDAMENTALS_API_KEY", ""),
		},

		News: NewsConfig{
			BaseURL:     getEnv("NEWS_BASE_URL", "https://news.google.com"),
			MaxArticles: getEnvAsInt("NEWS_MAX_ARTICLES", 25),
		},

		// Analysis
		Analysis: AnalysisConfig{
			Workers:         getEnvAsInt("ANALYSIS_WORKERS", 4),
			MinConfidence:   getEnvAsFloat("ANALYSIS_MIN_CONFIDENCE", 40.0),
			SymbolTimeout:   getEnvAsDuration("ANALYSIS_SYMBOL_TIMEOUT", "30s"),
			Universe:        getEnvAsSlice("ANALYSIS_UNIVERSE", defaultUniverse),
			QuoteTTL:        getEnvAsDuration("CACHE_QUOTE_TTL", "1m"),
			HistoryTTL:      getEnvAsDuration("CACHE_HISTORY_TTL", "1h"),
			FundamentalsTTL: getEnvAsDuration("CACHE_FUNDAMENTALS_TTL", "24h"),
			SentimentTTL:    getEnvAsDuration("CACHE_SENTIMENT_TTL", "2h"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Env == "production" && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}

	if c.Analysis.Workers < 1 {
		return fmt.Errorf("ANALYSIS_WORKERS must be >= 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// defaultUniverse seeds the scheduled jobs when ANALYSIS_UNIVERSE is
// not set
var defaultUniverse = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "AVGO",
	"JPM", "V", "UNH", "JNJ", "WMT", "PG", "XOM", "HD", "KO", "PEP",
	"COST", "MCD",
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, strings.ToUpper(trimmed))
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
