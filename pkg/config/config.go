package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Catalog backends
const (
	CatalogBackendMemory   = "memory"
	CatalogBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Env          string
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Typesense    TypesenseConfig
	OpenAI       OpenAIConfig
	OTEL         OTELConfig
	Catalog      CatalogConfig
	Comparison   ComparisonConfig
	Authenticity AuthenticityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host            string
	Port            int
	Password        string
	DB              int
	Enabled         bool
	CacheTTLSeconds int
	// WarmInterval re-warms the catalog cache; zero warms once at startup.
	WarmInterval time.Duration
}

// TypesenseConfig holds Typesense configuration. An empty URL disables
// full-text search.
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey             string
	Model              string
	BaseURL            string
	RateLimitPerMinute int
	Timeout            time.Duration
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
	LogLevel       string
}

// CatalogConfig selects where medicine records come from
type CatalogConfig struct {
	Backend string
	// SynonymsPath optionally extends the built-in search synonyms
	SynonymsPath string
}

// ComparisonConfig bounds comparison requests
type ComparisonConfig struct {
	MaxMedicines int
}

// AuthenticityConfig configures the simulated regulatory lookups
type AuthenticityConfig struct {
	Latency time.Duration
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "pharmavault"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:            getEnv("REDIS_HOST", "localhost"),
			Port:            getEnvAsInt("REDIS_PORT", 6379),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			Enabled:         getEnvAsBool("CACHE_ENABLED", false),
			CacheTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 600),
			WarmInterval:    getEnvAsDuration("CACHE_WARM_INTERVAL", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", ""),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		OpenAI: OpenAIConfig{
			APIKey:             getEnv("OPENAI_API_KEY", ""),
			Model:              getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:            getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			RateLimitPerMinute: getEnvAsInt("OPENAI_RATE_LIMIT_PER_MINUTE", 60),
			Timeout:            getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "pharmavault"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			Backend:      strings.ToLower(getEnv("CATALOG_BACKEND", CatalogBackendMemory)),
			SynonymsPath: getEnv("CATALOG_SYNONYMS_PATH", ""),
		},
		Comparison: ComparisonConfig{
			MaxMedicines: getEnvAsInt("COMPARISON_MAX_MEDICINES", 4),
		},
		Authenticity: AuthenticityConfig{
			Latency: time.Duration(getEnvAsInt("AUTHENTICITY_LATENCY_MS", 0)) * time.Millisecond,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Backend {
	case CatalogBackendMemory, CatalogBackendPostgres:
	default:
		return fmt.Errorf("invalid CATALOG_BACKEND %q: expected %q or %q", c.Catalog.Backend, CatalogBackendMemory, CatalogBackendPostgres)
	}
	if c.Comparison.MaxMedicines < 2 {
		return fmt.Errorf("COMPARISON_MAX_MEDICINES must be at least 2, got %d", c.Comparison.MaxMedicines)
	}
	return nil
}

// IsDevelopment reports whether the service runs in the development env
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
