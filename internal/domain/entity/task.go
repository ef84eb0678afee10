package entity

import (
	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// Task is a single free-text automation goal. The description is opaque:
// it is passed to the provider unchanged.
type Task struct {
	ID          string
	Description string
	Status      TaskStatus
}

func NewTask(description string) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Description: description,
		Status:      TaskStatusPending,
	}
}

func (t *Task) MarkRunning()   { t.Status = TaskStatusRunning }
func (t *Task) MarkCompleted() { t.Status = TaskStatusCompleted }
func (t *Task) MarkFailed()    { t.Status = TaskStatusFailed }
