package env

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"taskrunner/internal/domain/entity"
)

// Service reads process environment with optional .env overlays. Loading
// happens once in NewService; values are plain os.Getenv lookups after
// that.
type Service struct{}

func NewService() *Service {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Info: no .env file found (this is OK for CI/CD)")
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err == nil {
		log.Printf("Environment overlay loaded: %s", envFile)
	}

	return &Service{}
}

func (e *Service) Get(key string) string {
	return os.Getenv(key)
}

// Require returns the value for key or a ConfigError when it is unset or
// empty. Absence of a required key is an error, never a silent default.
func (e *Service) Require(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", entity.NewConfigError(key, "required environment variable is not set")
	}
	return val, nil
}

func (e *Service) GetWithDefault(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func (e *Service) GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *Service) GetInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *Service) GetFloat32(key string, defaultValue float32) float32 {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return defaultValue
	}
	return float32(parsed)
}

func (e *Service) GetDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
