package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"taskrunner/internal/application/port/output"
	"taskrunner/internal/domain/entity"
	"taskrunner/internal/infrastructure/prompts"
)

var _ output.ProviderPort = (*GeminiAdapter)(nil)

const providerName = "gemini"

// GeminiAdapter submits tasks to the hosted Gemini API. One HTTP exchange
// per Submit call; nothing is shared between calls besides the client.
type GeminiAdapter struct {
	client *http.Client
	cfg    Config
	logger output.LoggerPort
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
		BaseURL: "https://generativelanguage.googleapis.com",
		Timeout: 60 * time.Second,
	}
}

func NewGeminiAdapter(cfg Config) *GeminiAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &GeminiAdapter{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

func (a *GeminiAdapter) Name() string { return providerName }

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float32 `json:"temperature"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (a *GeminiAdapter) Submit(ctx context.Context, task string) (*entity.Result, error) {
	prompt, err := prompts.GenerateTaskPrompt(task)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	body := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: &geminiGenerationConfig{Temperature: a.cfg.Temperature},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(a.cfg.BaseURL, "/"), a.cfg.Model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", a.cfg.APIKey)

	if a.logger != nil {
		a.logger.Debug("Submitting task to Gemini", "model", a.cfg.Model, "promptLen", len(prompt))
	}

	start := time.Now()
	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, a.mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := readErrorMessage(resp.Body)
		return nil, mapStatusError(resp.StatusCode, msg)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.ProviderError{
			Provider:  providerName,
			Message:   fmt.Sprintf("read response: %v", err),
			Retryable: true,
		}
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(raw, &geminiResp); err != nil {
		return nil, &entity.ProviderError{
			Provider:  providerName,
			Message:   fmt.Sprintf("decode response: %v", err),
			Retryable: true,
		}
	}

	if len(geminiResp.Candidates) == 0 {
		return nil, &entity.ProviderError{
			Provider: providerName,
			Message:  "no candidates in response",
		}
	}

	var text strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	final := strings.TrimSpace(text.String())
	elapsed := time.Since(start)

	if a.logger != nil {
		a.logger.Debug("Gemini responded", "elapsedMs", elapsed.Milliseconds(), "answerLen", len(final))
	}

	return &entity.Result{
		Final:    final,
		Steps:    prompts.ParseSteps(final),
		Raw:      string(raw),
		Provider: providerName,
		Elapsed:  elapsed,
	}, nil
}

func (a *GeminiAdapter) mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &entity.TimeoutError{Provider: providerName, Limit: a.cfg.Timeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &entity.TimeoutError{Provider: providerName, Limit: a.cfg.Timeout}
	}
	return &entity.ProviderError{
		Provider:  providerName,
		Message:   err.Error(),
		Retryable: true,
	}
}

func mapStatusError(status int, msg string) *entity.ProviderError {
	switch status {
	case http.StatusTooManyRequests:
		return &entity.ProviderError{
			Provider:    providerName,
			StatusCode:  status,
			Message:     msg,
			RateLimited: true,
			Retryable:   true,
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &entity.ProviderError{
			Provider:   providerName,
			StatusCode: status,
			Message:    msg,
		}
	case http.StatusBadRequest:
		rateLimited := strings.Contains(msg, "quota") || strings.Contains(msg, "limit")
		return &entity.ProviderError{
			Provider:    providerName,
			StatusCode:  status,
			Message:     msg,
			RateLimited: rateLimited,
			Retryable:   rateLimited,
		}
	default:
		return &entity.ProviderError{
			Provider:   providerName,
			StatusCode: status,
			Message:    msg,
			Retryable:  status >= 500,
		}
	}
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "provider returned an error with no body"
	}

	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(data, &errResp) == nil && errResp.Error.Message != "" {
		if errResp.Error.Status != "" {
			return fmt.Sprintf("%s (status: %s)", errResp.Error.Message, errResp.Error.Status)
		}
		return errResp.Error.Message
	}
	return string(data)
}
