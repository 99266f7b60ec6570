// Package memstore implements the store interfaces with in-process
// memory as the backing medium. Records live for the lifetime of the
// process; there is no eviction and no persistence across restarts.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/verselab/verse-api/internal/domain"
	"github.com/verselab/verse-api/internal/store"
)

// TaskStore implements store.TaskStore using a mutex-guarded map.
// It supports many concurrent readers and many concurrent writers to
// different keys; critical sections are short, so pollers never block
// behind a running computation.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.AnalysisTask
}

// NewTaskStore creates an empty in-memory task store.
// Each instance is independent, which keeps tests isolated.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[uuid.UUID]*domain.AnalysisTask),
	}
}

// Insert saves a new task record in pending state.
// Returns store.ErrDuplicateTask if the ID is already present and
// store.ErrInvalidEntity wrapping the validation error for invalid tasks.
func (s *TaskStore) Insert(ctx context.Context, task *domain.AnalysisTask) error {
	if err := task.Validate(); err != nil {
		return &store.StoreError{
			Entity:    "task",
			Operation: "insert",
			Message:   "validation failed",
			Err:       store.ErrInvalidEntity,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return store.ErrDuplicateTask
	}

	// Store a copy so later mutation of the caller's value cannot be
	// observed by concurrent readers.
	record := *task
	s.tasks[task.ID] = &record
	return nil
}

// UpdateStatus transitions a task and records its outcome atomically.
// The result is kept only for completed tasks and the error message only
// for failed ones; terminal transitions also stamp CompletedAt.
func (s *TaskStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	result any,
	errMsg string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.tasks[id]
	if !exists {
		return store.ErrTaskNotFound
	}

	if !record.CanTransitionTo(status) {
		return store.ErrIllegalTransition
	}

	record.Status = status
	switch status {
	case domain.TaskStatusCompleted:
		record.Result = result
		record.Error = ""
	case domain.TaskStatusFailed:
		record.Result = nil
		record.Error = errMsg
	}

	if record.IsTerminal() {
		now := time.Now().UTC()
		record.CompletedAt = &now
	}

	return nil
}

// Get returns a snapshot of the task record.
// Returns store.ErrTaskNotFound if the ID is absent.
func (s *TaskStore) Get(ctx context.Context, id uuid.UUID) (*domain.AnalysisTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	snapshot := *record
	return &snapshot, nil
}

// Len returns the number of task records currently held.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
