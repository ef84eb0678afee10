package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskrunner/internal/domain/entity"
	"taskrunner/internal/infrastructure/env"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 60 * time.Second
)

// Config is the whole process configuration. It is loaded once at startup
// and passed explicitly to the container; nothing reads the environment
// after Load returns.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float32
	LogLevel    string
}

// fileConfig is the YAML shape of the optional config file. Timeout is a
// string so "10s" style values work.
type fileConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Timeout     string  `yaml:"timeout"`
	Temperature float32 `yaml:"temperature"`
	LogLevel    string  `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    defaultModel,
		Timeout:  defaultTimeout,
		LogLevel: "info",
	}
}

// Load builds a Config from an optional YAML file overlaid with
// environment values. Environment wins over the file; the API key comes
// from the environment only (GEMINI_API_KEY, with TASKRUNNER_API_KEY as
// the provider-neutral override).
func Load(envService *env.Service, path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		if fc.Provider != "" {
			cfg.Provider = fc.Provider
		}
		if fc.Model != "" {
			cfg.Model = fc.Model
		}
		if fc.BaseURL != "" {
			cfg.BaseURL = fc.BaseURL
		}
		if fc.Timeout != "" {
			timeout, err := time.ParseDuration(fc.Timeout)
			if err != nil {
				return nil, fmt.Errorf("parse config file: timeout: %w", err)
			}
			cfg.Timeout = timeout
		}
		if fc.Temperature != 0 {
			cfg.Temperature = fc.Temperature
		}
		if fc.LogLevel != "" {
			cfg.LogLevel = fc.LogLevel
		}
	}

	cfg.Provider = strings.ToLower(envService.GetWithDefault("TASKRUNNER_PROVIDER", cfg.Provider))
	cfg.Model = envService.GetWithDefault("TASKRUNNER_MODEL", cfg.Model)
	cfg.BaseURL = envService.GetWithDefault("TASKRUNNER_BASE_URL", cfg.BaseURL)
	cfg.Timeout = envService.GetDuration("TASKRUNNER_TIMEOUT", cfg.Timeout)
	cfg.Temperature = envService.GetFloat32("TASKRUNNER_TEMPERATURE", cfg.Temperature)
	cfg.LogLevel = envService.GetWithDefault("TASKRUNNER_LOG_LEVEL", cfg.LogLevel)

	cfg.APIKey = envService.Get("TASKRUNNER_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = envService.Get("GEMINI_API_KEY")
	}

	return cfg, nil
}

// Validate fails with a ConfigError on a missing or blank key. It runs
// before any provider session is built.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return entity.NewConfigError("GEMINI_API_KEY", "API key is required and has no default")
	}
	switch c.Provider {
	case ProviderGemini, ProviderOpenRouter:
	default:
		return entity.NewConfigError("TASKRUNNER_PROVIDER",
			fmt.Sprintf("unknown provider %q", c.Provider))
	}
	if c.Timeout <= 0 {
		return entity.NewConfigError("TASKRUNNER_TIMEOUT", "timeout must be positive")
	}
	return nil
}
