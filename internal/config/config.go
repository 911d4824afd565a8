// Package config loads service configuration from .env, config files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"incubator/internal/observability"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags   string `mapstructure:"FEATURE_FLAGS"`

	CohortLabel     string        `mapstructure:"COHORT_LABEL"`
	EditorSaveDelay time.Duration `mapstructure:"EDITOR_SAVE_DELAY"`
	CacheTTL        time.Duration `mapstructure:"CACHE_TTL"`

	SeedDemo      bool  `mapstructure:"SEED_DEMO"`
	SeedFakeCount int   `mapstructure:"SEED_FAKE_COUNT"`
	SeedFakeSeed  int64 `mapstructure:"SEED_FAKE_SEED"`

	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampler  float64 `mapstructure:"TRACING_SAMPLER_RATIO"`

	LogStoreMutations bool `mapstructure:"LOG_STORE_MUTATIONS"`
	LogAsyncSaves     bool `mapstructure:"LOG_ASYNC_SAVES"`
}

// Logging returns the automated-logging switches for observability.Config.
func (c *Config) Logging() observability.LoggingConfig {
	return observability.LoggingConfig{
		EnableStoreLogging: c.LogStoreMutations,
		EnableAsyncLogging: c.LogAsyncSaves,
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// LoadConfig reads .env (if present), config.yml, the config.<APP_ENV>.yml
// overlay and finally the process environment.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath("../..")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	setDefaults(v)

	// The base file is optional.
	_ = v.ReadInConfig()

	env := strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV")))
	if env != "development" && env != "test" {
		v.SetConfigName("config." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		observability.GlobalLogger.Info("loaded profile-specific configuration", "file", "config."+env+".yml")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Env = env
	config.TracingExporter = strings.ToLower(strings.TrimSpace(config.TracingExporter))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8375")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	v.SetDefault("FEATURE_FLAGS", "")
	v.SetDefault("COHORT_LABEL", "Fall 2025")
	v.SetDefault("EDITOR_SAVE_DELAY", "600ms")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("SEED_DEMO", true)
	v.SetDefault("SEED_FAKE_COUNT", 0)
	v.SetDefault("SEED_FAKE_SEED", 1)
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_EXPORTER", "stdout")
	v.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	v.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
	v.SetDefault("LOG_STORE_MUTATIONS", true)
	v.SetDefault("LOG_ASYNC_SAVES", true)
}

// Validate checks required values and rejects settings that make no sense.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if strings.TrimSpace(c.CohortLabel) == "" {
		errs = append(errs, errors.New("COHORT_LABEL is required"))
	}
	if c.EditorSaveDelay < 0 {
		errs = append(errs, errors.New("EDITOR_SAVE_DELAY must not be negative"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL must not be negative"))
	}
	if c.SeedFakeCount < 0 {
		errs = append(errs, errors.New("SEED_FAKE_COUNT must not be negative"))
	}
	if c.TracingEnabled {
		switch c.TracingExporter {
		case "stdout", "otlp":
		default:
			errs = append(errs, fmt.Errorf("TRACING_EXPORTER must be stdout or otlp, got %q", c.TracingExporter))
		}
		if c.TracingSampler < 0 || c.TracingSampler > 1 {
			errs = append(errs, errors.New("TRACING_SAMPLER_RATIO must be between 0 and 1"))
		}
	}

	if c.IsProduction() {
		if c.SeedFakeCount > 0 {
			errs = append(errs, errors.New("SEED_FAKE_COUNT must be 0 in production"))
		}
		if c.AllowedOrigins == "*" {
			observability.GlobalLogger.Warn("ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return errors.Join(errs...)
}
