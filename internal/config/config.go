package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/career-agent/internal/pkg/retry"
	"github.com/joho/godotenv"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	// Grounding uses at most five search results.
	maxSearchResults = 5
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr     string        `env:"SERVER_ADDR" envDefault:":8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	// CORSAllowedOrigins lists browser origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// External service configurations
	GenerationCfg GenerationConfig      `envPrefix:"GENERATION_"`
	CacheCfg      CacheConfig           `envPrefix:"CACHE_"`
	SearchCfg     SearchConnectorConfig `envPrefix:"SEARCH_"`
	TelegramCfg   TelegramConfig        `envPrefix:"TELEGRAM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type GenerationConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-2.0-flash"`
	// Coalesce merges concurrent cache misses for the same prompt into one backend call.
	Coalesce bool                 `env:"COALESCE" envDefault:"false"`
	Retry    pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type CacheConfig struct {
	Backend         string        `env:"BACKEND" envDefault:"memory"`
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix       string        `env:"KEY_PREFIX" envDefault:"generation:"`
}

type SearchConnectorConfig struct {
	HTTPClientConfig
	APIKey     string               `env:"API_KEY"`
	EngineID   string               `env:"ENGINE_ID"`
	Endpoint   string               `env:"ENDPOINT" envDefault:"/customsearch/v1"`
	MaxResults int                  `env:"MAX_RESULTS" envDefault:"5"`
	Retry      pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// TelegramConfig is only read by the telegram-bot binary.
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	HandlerTimeout     time.Duration `env:"HANDLER_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// StateTTL bounds how long an idle conversation is remembered.
	StateTTL time.Duration `env:"STATE_TTL" envDefault:"24h"`
	// MaxDocumentBytes caps uploaded resume files.
	MaxDocumentBytes int64 `env:"MAX_DOCUMENT_BYTES" envDefault:"10485760"`
}

// Validate checks the settings the bot cannot start without.
func (c TelegramConfig) Validate() error {
	var errors []string

	if c.BotToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN is required")
	}
	if c.RateLimitPerMinute < 1 || c.RateLimitBurst < 1 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE and TELEGRAM_RATE_LIMIT_BURST must be positive, got %d and %d", c.RateLimitPerMinute, c.RateLimitBurst))
	}
	if c.HandlerTimeout <= 0 || c.StateTTL <= 0 {
		errors = append(errors, "TELEGRAM_HANDLER_TIMEOUT and TELEGRAM_STATE_TTL must be positive")
	}
	if c.MaxDocumentBytes <= 0 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_MAX_DOCUMENT_BYTES must be positive, got %d", c.MaxDocumentBytes))
	}

	if len(errors) > 0 {
		return fmt.Errorf("telegram configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"10s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"10s"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://www.googleapis.com"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Credentials are only needed when talking to the real services
	if !cfg.EnableMocks {
		if cfg.GenerationCfg.APIKey == "" {
			errors = append(errors, "GENERATION_API_KEY is required when ENABLE_MOCKS is false")
		}
		if cfg.SearchCfg.APIKey == "" {
			errors = append(errors, "SEARCH_API_KEY is required when ENABLE_MOCKS is false")
		}
		if cfg.SearchCfg.EngineID == "" {
			errors = append(errors, "SEARCH_ENGINE_ID is required when ENABLE_MOCKS is false")
		}
	}

	if cfg.GenerationCfg.Model == "" {
		errors = append(errors, "GENERATION_MODEL must not be empty")
	}

	// Validate cache configuration
	switch cfg.CacheCfg.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.CacheCfg.RedisAddr == "" {
			errors = append(errors, "CACHE_REDIS_ADDR is required when CACHE_BACKEND is redis")
		}
	default:
		errors = append(errors, fmt.Sprintf("CACHE_BACKEND must be %q or %q, got %q", CacheBackendMemory, CacheBackendRedis, cfg.CacheCfg.Backend))
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout))
	}

	if cfg.CacheCfg.TTL <= 0 {
		errors = append(errors, fmt.Sprintf("CACHE_TTL must be positive, got %s", cfg.CacheCfg.TTL))
	}

	// Validate search configuration
	if cfg.SearchCfg.MaxResults < 1 || cfg.SearchCfg.MaxResults > maxSearchResults {
		errors = append(errors, fmt.Sprintf("SEARCH_MAX_RESULTS must be between 1 and %d, got %d", maxSearchResults, cfg.SearchCfg.MaxResults))
	}

	if cfg.GenerationCfg.Retry.Attempts < 1 || cfg.GenerationCfg.Retry.Attempts > 5 {
		errors = append(errors, fmt.Sprintf("GENERATION_RETRY_ATTEMPTS must be between 1 and 5, got %d", cfg.GenerationCfg.Retry.Attempts))
	}

	if cfg.SearchCfg.Retry.Attempts < 1 || cfg.SearchCfg.Retry.Attempts > 5 {
		errors = append(errors, fmt.Sprintf("SEARCH_RETRY_ATTEMPTS must be between 1 and 5, got %d", cfg.SearchCfg.Retry.Attempts))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
