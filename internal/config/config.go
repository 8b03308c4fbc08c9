package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Briefing settings
	DefaultTopN      int // items per briefing when the caller gives no count
	SampleCategories int // categories sampled when none are requested

	// Feed settings
	FeedsConfigPath  string
	FetchConcurrency int // parallel category fetches

	// Enrichment settings
	SummarizerMethod  string // "extractive" or "gemini"
	GeminiAPIKey      string
	MaxAIRequests     int // per-day budget for generative summaries (0 = unlimited)
	EnrichConcurrency int // parallel per-item enrichment workers
	FetchFullText     bool

	// Memory settings
	MemoryPath  string // JSON document store path
	DatabaseURL string // when set, Postgres replaces the file store

	// Observability settings
	TraceDir     string
	EventLogPath string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Summary cache settings
	SummaryCacheTTL time.Duration

	// HTTP settings
	HTTPPort string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		DefaultTopN:       10,
		SampleCategories:  5,
		FeedsConfigPath:   "configs/feeds.yaml",
		FetchConcurrency:  4,
		SummarizerMethod:  "extractive",
		MaxAIRequests:     50,
		EnrichConcurrency: 4,
		MemoryPath:        "memory.json",
		TraceDir:          "traces",
		RequestTimeout:    30 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        5 * time.Second,
		SummaryCacheTTL:   48 * time.Hour,
		HTTPPort:          "8080",
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.MemoryPath = getEnvOrDefault("MEMORY_PATH", cfg.MemoryPath)
	cfg.TraceDir = getEnvOrDefault("TRACE_DIR", cfg.TraceDir)
	cfg.EventLogPath = os.Getenv("EVENT_LOG_PATH")
	cfg.HTTPPort = getEnvOrDefault("HTTP_PORT", cfg.HTTPPort)

	if method := os.Getenv("SUMMARIZER_METHOD"); method != "" {
		cfg.SummarizerMethod = method
	}

	cfg.DefaultTopN = getEnvIntOrDefault("DEFAULT_TOP_N", cfg.DefaultTopN)
	cfg.SampleCategories = getEnvIntOrDefault("SAMPLE_CATEGORIES", cfg.SampleCategories)
	cfg.FetchConcurrency = getEnvIntOrDefault("FETCH_CONCURRENCY", cfg.FetchConcurrency)
	cfg.EnrichConcurrency = getEnvIntOrDefault("ENRICH_CONCURRENCY", cfg.EnrichConcurrency)
	cfg.MaxAIRequests = getEnvIntOrDefault("MAX_AI_REQUESTS", cfg.MaxAIRequests)

	if v := os.Getenv("FETCH_FULL_TEXT"); v == "true" {
		cfg.FetchFullText = true
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("SUMMARY_CACHE_TTL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.SummaryCacheTTL = time.Duration(val) * time.Hour
		}
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.SummarizerMethod != "extractive" && c.SummarizerMethod != "gemini" {
		return fmt.Errorf("SUMMARIZER_METHOD must be 'extractive' or 'gemini'")
	}
	if c.SummarizerMethod == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for the gemini summarizer")
	}
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("DEFAULT_TOP_N must be positive")
	}
	return nil
}
