package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/verselab/verse-api/internal/domain"
)

// TaskStore defines the interface for task state persistence.
// Version: 1.0
type TaskStore interface {
	// Insert saves a new task record in pending state. The record is
	// visible to Get from the moment Insert returns.
	// Returns ErrDuplicateTask if the ID is already present.
	Insert(ctx context.Context, task *domain.AnalysisTask) error

	// UpdateStatus transitions a task and records its outcome in a
	// single atomic step. A concurrent Get observes either the prior
	// state or the fully applied new state, never a partial one.
	// The result is stored only for TaskStatusCompleted and the error
	// message only for TaskStatusFailed.
	// Returns ErrTaskNotFound if the ID is absent and
	// ErrIllegalTransition if the transition violates the task lifecycle.
	UpdateStatus(
		ctx context.Context,
		id uuid.UUID,
		status domain.TaskStatus,
		result any,
		errMsg string,
	) error

	// Get returns a snapshot of the task record. The snapshot reflects
	// the most recently completed UpdateStatus call.
	// Returns ErrTaskNotFound if the ID is absent.
	Get(ctx context.Context, id uuid.UUID) (*domain.AnalysisTask, error)
}
