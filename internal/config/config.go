package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	License LicenseConfig `yaml:"license" envconfig:"LICENSE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LicenseConfig contains key validation and registry configuration
type LicenseConfig struct {
	// EpochOrdinal overrides the built-in month-zero constant. Issuer and
	// validator must agree on it; change it only when both sides move.
	EpochOrdinal int `yaml:"epoch_ordinal" envconfig:"EPOCH_ORDINAL" validate:"min=0"`

	// CorpusPath points at an alternative newline-delimited word list.
	// Empty means the embedded corpus.
	CorpusPath string `yaml:"corpus_path" envconfig:"CORPUS_PATH"`

	// KeyEnvPrefix is the prefix for per-namespace key lookup variables.
	KeyEnvPrefix string `yaml:"key_env_prefix" envconfig:"KEY_ENV_PREFIX" validate:"required"`

	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Cache     CacheConfig     `yaml:"cache" envconfig:"CACHE"`
}

// RateLimitConfig throttles repeated validation attempts per namespace
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	PerMin  float64 `yaml:"per_min" envconfig:"PER_MIN" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gt=0"`
}

// CacheConfig controls the month-scoped validation result cache
type CacheConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED"`
	MaxSize int  `yaml:"max_size" envconfig:"MAX_SIZE" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load loads configuration from environment variables layered over an
// optional YAML file named by SHAREWARE_CONFIG (environment wins).
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("SHAREWARE_CONFIG"); path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileCfg
	}

	if err := envconfig.Process("SHAREWARE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without touching the
// environment. Used by tests and by callers that wire the registry manually.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.License.RateLimit.Enabled = true
	cfg.License.Cache.Enabled = true
	return cfg
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills zero-valued fields after both config sources ran, so a
// YAML file may leave sections out entirely and the environment stays
// authoritative for anything it does set.
func applyDefaults(cfg *Config) {
	if cfg.License.EpochOrdinal == 0 {
		cfg.License.EpochOrdinal = EpochOrdinal
	}
	if cfg.License.KeyEnvPrefix == "" {
		cfg.License.KeyEnvPrefix = KeyEnvPrefix
	}
	if cfg.License.RateLimit.PerMin == 0 {
		cfg.License.RateLimit.PerMin = DefaultValidationRateLimit
	}
	if cfg.License.RateLimit.Burst == 0 {
		cfg.License.RateLimit.Burst = DefaultValidationBurst
	}
	if cfg.License.Cache.MaxSize == 0 {
		cfg.License.Cache.MaxSize = ValidationCacheMaxSize
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "console"
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = "logs/shareware.log"
	}
}

// validate checks configuration invariants via struct tags
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}
