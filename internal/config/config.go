package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Port      int    `envconfig:"APP_PORT" default:"8080"`
	DB        DBConfig
	CORS      CORSConfig
	Redis     RedisConfig
	Vapi      VapiConfig
	Gemini    GeminiConfig
	Screening ScreeningConfig
}

// database configuration
type DBConfig struct {
	DSN             string        `envconfig:"DATABASE_URL" required:"true"`
	MaxConns        int           `envconfig:"DB_MAX_CONNS" default:"20"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// Redis configuration; leave REDIS_ADDR empty to run without webhook
// delivery deduplication.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// Vapi voice provider configuration
type VapiConfig struct {
	APIKey        string        `envconfig:"VAPI_API_KEY" required:"true"`
	PhoneNumberID string        `envconfig:"VAPI_PHONE_NUMBER_ID" required:"true"`
	DedupeTTL     time.Duration `envconfig:"VAPI_WEBHOOK_DEDUPE_TTL" default:"24h"`
}

// Gemini configuration; job description generation is disabled when the key
// is unset.
type GeminiConfig struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
	Model  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// Screening call configuration
type ScreeningConfig struct {
	// Delay before candidate documents are pushed into a live call, long
	// enough for the callee to answer and the assistant's first turn.
	InjectDelay time.Duration `envconfig:"DOCUMENT_INJECT_DELAY" default:"5s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if c.Screening.InjectDelay <= 0 {
		return fmt.Errorf("DOCUMENT_INJECT_DELAY must be positive")
	}
	if c.Vapi.DedupeTTL <= 0 {
		return fmt.Errorf("VAPI_WEBHOOK_DEDUPE_TTL must be positive")
	}
	if len(c.CORS.TrustedOrigins) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, DB.MaxConns=%d, Redis=%t, "+
		"Gemini.Model=%s, Screening.InjectDelay=%s, CORS.Origins=%d}",
		c.Env, c.Port, c.DB.MaxConns, c.Redis.Enabled(),
		c.Gemini.Model, c.Screening.InjectDelay, len(c.CORS.TrustedOrigins))
}
