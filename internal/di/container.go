package di

import (
	"fmt"

	"taskrunner/internal/application/port/input"
	"taskrunner/internal/application/port/output"
	"taskrunner/internal/application/service"
	"taskrunner/internal/infrastructure/config"
	"taskrunner/internal/infrastructure/logger"
	"taskrunner/internal/infrastructure/provider/gemini"
	"taskrunner/internal/infrastructure/provider/openrouter"
	"taskrunner/internal/usecase/runner"
)

type Container struct {
	Provider   output.ProviderPort
	Providers  output.ProviderRegistry
	Logger     output.LoggerPort
	TaskRunner input.TaskRunner
}

// NewContainer wires the whole application from an already validated
// config. The config is the only source of settings; nothing below this
// point reads the environment.
func NewContainer(cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.NewZapAdapter(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	providers := service.NewProviderRegistry()
	registerProviders(providers, cfg, log)

	active, ok := providers.Get(cfg.Provider)
	if !ok {
		log.Close()
		return nil, fmt.Errorf("provider %q is not registered", cfg.Provider)
	}

	uc := runner.New(active, log, cfg.Timeout)

	return &Container{
		Provider:   active,
		Providers:  providers,
		Logger:     log,
		TaskRunner: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func registerProviders(registry *service.ProviderRegistryImpl, cfg *config.Config, log output.LoggerPort) {
	geminiCfg := gemini.DefaultConfig(cfg.APIKey, cfg.Model)
	geminiCfg.Temperature = cfg.Temperature
	geminiCfg.Timeout = cfg.Timeout
	geminiCfg.Logger = log
	if cfg.Provider == config.ProviderGemini && cfg.BaseURL != "" {
		geminiCfg.BaseURL = cfg.BaseURL
	}
	registry.Register(gemini.NewGeminiAdapter(geminiCfg))

	openrouterCfg := openrouter.DefaultConfig(cfg.APIKey, cfg.Model)
	openrouterCfg.Temperature = cfg.Temperature
	openrouterCfg.Timeout = cfg.Timeout
	openrouterCfg.Logger = log
	if cfg.Provider == config.ProviderOpenRouter && cfg.BaseURL != "" {
		openrouterCfg.BaseURL = cfg.BaseURL
	}
	registry.Register(openrouter.NewOpenRouterAdapter(openrouterCfg))
}
