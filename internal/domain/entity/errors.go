package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyTask is returned before any provider contact when the task
// description is blank.
var ErrEmptyTask = errors.New("task description must not be empty")

// ConfigError reports a missing or invalid configuration value. Fatal:
// the runner is never constructed when configuration is bad.
type ConfigError struct {
	Key    string
	Reason string
}

func NewConfigError(key, reason string) *ConfigError {
	return &ConfigError{Key: key, Reason: reason}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// ProviderError is a provider-side failure surfaced unchanged to the
// caller. Retryable means a later manual retry may succeed; nothing in
// this repo retries automatically.
type ProviderError struct {
	Provider    string
	StatusCode  int
	Message     string
	RateLimited bool
	Retryable   bool
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
}

// TimeoutError means the provider did not respond within the configured
// bound.
type TimeoutError struct {
	Provider string
	Limit    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %s did not respond within %s", e.Provider, e.Limit)
}

// IsRateLimited reports whether err is a rate-limited provider failure.
func IsRateLimited(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.RateLimited
}
