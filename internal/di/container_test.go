package di

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskrunner/internal/domain/entity"
	"taskrunner/internal/infrastructure/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Provider: config.ProviderGemini,
		APIKey:   "k1",
		Model:    "gemini-2.0-flash",
		Timeout:  30 * time.Second,
		LogLevel: "error",
	}
}

func TestNewContainer_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.APIKey = ""

	_, err := NewContainer(cfg)

	require.Error(t, err)
	var cfgErr *entity.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewContainer_WiresSelectedProvider(t *testing.T) {
	for _, name := range []string{config.ProviderGemini, config.ProviderOpenRouter} {
		cfg := validConfig()
		cfg.Provider = name

		container, err := NewContainer(cfg)

		require.NoError(t, err)
		assert.Equal(t, name, container.Provider.Name())
		assert.NotNil(t, container.TaskRunner)
		assert.Equal(t, []string{"gemini", "openrouter"}, container.Providers.Names())
		container.Close()
	}
}
