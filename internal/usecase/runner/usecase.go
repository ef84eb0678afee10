package runner

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskrunner/internal/application/port/input"
	"taskrunner/internal/application/port/output"
	"taskrunner/internal/domain/entity"
)

var _ input.TaskRunner = (*UseCase)(nil)

// UseCase bridges a task string to the provider and surfaces the result.
// One synchronous provider call per Run; no retries, no result shaping.
type UseCase struct {
	provider output.ProviderPort
	logger   output.LoggerPort
	timeout  time.Duration
}

func New(provider output.ProviderPort, logger output.LoggerPort, timeout time.Duration) *UseCase {
	return &UseCase{
		provider: provider,
		logger:   logger,
		timeout:  timeout,
	}
}

func (uc *UseCase) Run(ctx context.Context, task string) (*input.RunResult, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, entity.ErrEmptyTask
	}

	t := entity.NewTask(task)
	log := uc.logger.WithField("taskId", t.ID)
	log.Info("Task started", "provider", uc.provider.Name(), "task", t.Description)

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	t.MarkRunning()
	result, err := uc.provider.Submit(ctx, t.Description)
	if err != nil {
		t.MarkFailed()
		if errors.Is(err, context.DeadlineExceeded) {
			err = &entity.TimeoutError{Provider: uc.provider.Name(), Limit: uc.timeout}
		}
		log.Error("Task failed", "error", err)
		return nil, err
	}

	if result == nil {
		t.MarkFailed()
		perr := &entity.ProviderError{
			Provider: uc.provider.Name(),
			Message:  "provider returned no result",
		}
		log.Error("Task failed", "error", perr)
		return nil, perr
	}

	t.MarkCompleted()
	log.Info("Task completed", "elapsedMs", result.Elapsed.Milliseconds(), "steps", len(result.Steps))

	return &input.RunResult{Task: t, Result: result}, nil
}
