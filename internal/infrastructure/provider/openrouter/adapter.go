package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"taskrunner/internal/application/port/output"
	"taskrunner/internal/domain/entity"
	"taskrunner/internal/infrastructure/prompts"
)

var _ output.ProviderPort = (*OpenRouterAdapter)(nil)

const providerName = "openrouter"

// OpenRouterAdapter submits tasks to any OpenAI-compatible endpoint.
type OpenRouterAdapter struct {
	client  *openai.Client
	cfg     Config
	logger  output.LoggerPort
	timeout time.Duration
}

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
	Logger      output.LoggerPort
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://openrouter.ai/api/v1",
		Timeout: 60 * time.Second,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.Debug("HTTP request", "method", req.Method, "url", req.URL.String())

	resp, err := t.base.RoundTrip(req)

	if resp != nil {
		t.logger.Debug("HTTP response", "status", resp.Status, "statusCode", resp.StatusCode)
	}

	return resp, err
}

func NewOpenRouterAdapter(cfg Config) *OpenRouterAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Logger != nil {
		httpClient.Transport = &loggingTransport{
			base:   http.DefaultTransport,
			logger: cfg.Logger,
		}
	}
	clientCfg.HTTPClient = httpClient

	return &OpenRouterAdapter{
		client:  openai.NewClientWithConfig(clientCfg),
		cfg:     cfg,
		logger:  cfg.Logger,
		timeout: cfg.Timeout,
	}
}

func (a *OpenRouterAdapter) Name() string { return providerName }

func (a *OpenRouterAdapter) Submit(ctx context.Context, task string) (*entity.Result, error) {
	prompt, err := prompts.GenerateTaskPrompt(task)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return nil, a.mapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &entity.ProviderError{
			Provider: providerName,
			Message:  "no choices in response",
		}
	}

	final := strings.TrimSpace(resp.Choices[0].Message.Content)

	return &entity.Result{
		Final:    final,
		Steps:    prompts.ParseSteps(final),
		Raw:      resp.Choices[0].Message.Content,
		Provider: providerName,
		Elapsed:  time.Since(start),
	}, nil
}

func (a *OpenRouterAdapter) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &entity.TimeoutError{Provider: providerName, Limit: a.timeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &entity.TimeoutError{Provider: providerName, Limit: a.timeout}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &entity.ProviderError{
			Provider:    providerName,
			StatusCode:  apiErr.HTTPStatusCode,
			Message:     apiErr.Message,
			RateLimited: apiErr.HTTPStatusCode == http.StatusTooManyRequests,
			Retryable:   apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &entity.ProviderError{
			Provider:    providerName,
			StatusCode:  reqErr.HTTPStatusCode,
			Message:     reqErr.Error(),
			RateLimited: reqErr.HTTPStatusCode == http.StatusTooManyRequests,
			Retryable:   reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500,
		}
	}

	return &entity.ProviderError{
		Provider:  providerName,
		Message:   err.Error(),
		Retryable: true,
	}
}
