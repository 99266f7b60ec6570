package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the processing state of an analysis task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Common validation errors for AnalysisTask
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskInput    = errors.New("task input cannot be empty")
	ErrEmptyTaskKind     = errors.New("task kind cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// AnalysisTask represents one submitted unit of analysis work tracked
// by identifier through its lifecycle. The ID, Kind and Input fields
// are immutable once the task is created; Status, Result, Error and
// CompletedAt are owned by the worker executing the task.
type AnalysisTask struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	Input       string     `json:"input"`
	Status      TaskStatus `json:"status"`
	Result      any        `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewAnalysisTask creates a new AnalysisTask with the given kind and input.
// It generates a new UUID for the task ID, sets the status to pending,
// and sets the creation timestamp.
// Returns an error if validation fails.
func NewAnalysisTask(kind, input string) (*AnalysisTask, error) {
	task := &AnalysisTask{
		ID:        uuid.New(),
		Kind:      kind,
		Input:     input,
		Status:    TaskStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the AnalysisTask has valid data.
// Returns an error if any field fails validation.
func (t *AnalysisTask) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Kind == "" {
		return ErrEmptyTaskKind
	}

	if t.Input == "" {
		return ErrEmptyTaskInput
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// IsTerminal reports whether the task has reached a terminal status.
// Terminal tasks never transition again.
func (t *AnalysisTask) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}

// CanTransitionTo reports whether moving from the task's current status
// to the given status is a legal lifecycle transition. The only legal
// sequence is pending -> processing -> {completed|failed}.
func (t *AnalysisTask) CanTransitionTo(status TaskStatus) bool {
	switch t.Status {
	case TaskStatusPending:
		return status == TaskStatusProcessing
	case TaskStatusProcessing:
		return status == TaskStatusCompleted || status == TaskStatusFailed
	default:
		return false
	}
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusProcessing, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}
