package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for insight-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8090"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// RequestTimeoutSeconds bounds one smart request end to end, covering the
	// sample fetches, the LLM call and the SQL execution.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" env:"REQUEST_TIMEOUT_SECONDS" env-default:"30"`

	// Database configuration (the hosted KENAL Postgres instance)
	Database DatabaseConfig `yaml:"database"`

	// AI provider configuration
	AI AIConfig `yaml:"ai"`

	// Schema discovery configuration
	Schema SchemaConfig `yaml:"schema"`

	// Auth configuration for the admin API
	Auth AuthConfig `yaml:"auth"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"postgres"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"kenal"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"require"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
}

// AIConfig holds language model provider configuration.
// Exactly one provider is used per request; there is no automatic fallback.
type AIConfig struct {
	// Provider selects the primary provider: "anthropic" or "openai".
	Provider string `yaml:"provider" env:"AI_PRIMARY_PROVIDER" env-default:"anthropic"`

	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML
	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`    // Secret - not in YAML

	AnthropicModel string `yaml:"anthropic_model" env:"AI_ANTHROPIC_MODEL" env-default:"claude-3-5-sonnet-20241022"`
	OpenAIModel    string `yaml:"openai_model" env:"AI_OPENAI_MODEL" env-default:"gpt-4-turbo-preview"`

	MaxTokens   int     `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"2000"`
	Temperature float64 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.1"`
}

// SchemaConfig holds schema discovery settings.
type SchemaConfig struct {
	// CacheTTLMinutes is how long a discovered schema snapshot stays fresh.
	CacheTTLMinutes int `yaml:"cache_ttl_minutes" env:"SCHEMA_CACHE_TTL_MINUTES" env-default:"5"`

	// SampleRows is how many rows are fetched per table to infer structure.
	SampleRows int `yaml:"sample_rows" env:"SCHEMA_SAMPLE_ROWS" env-default:"3"`
}

// AuthConfig holds admin API authentication configuration.
type AuthConfig struct {
	// EnableVerification controls whether bearer tokens are validated.
	// Set to false for local development.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// JWTSecret signs and verifies admin bearer tokens (HS256).
	JWTSecret string `yaml:"-" env:"ADMIN_JWT_SECRET"` // Secret - not in YAML
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case "anthropic", "openai":
	default:
		return fmt.Errorf("unknown AI provider %q (want anthropic or openai)", c.AI.Provider)
	}

	if c.Auth.EnableVerification && c.Auth.JWTSecret == "" {
		return fmt.Errorf("ADMIN_JWT_SECRET is required when auth verification is enabled")
	}

	if c.Schema.CacheTTLMinutes <= 0 {
		return fmt.Errorf("schema cache TTL must be positive")
	}

	return nil
}

// RequestTimeout returns the per-request deadline as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the schema cache TTL as a duration.
func (c *SchemaConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
