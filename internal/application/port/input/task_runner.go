package input

import (
	"context"

	"taskrunner/internal/domain/entity"
)

type RunResult struct {
	Task   *entity.Task
	Result *entity.Result
}

type TaskRunner interface {
	Run(ctx context.Context, task string) (*RunResult, error)
}
