// Package service provides the application-level entry points used by
// the web layer: submitting analyses and answering status queries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/verselab/verse-api/internal/domain"
	"github.com/verselab/verse-api/internal/events"
	"github.com/verselab/verse-api/internal/store"
)

// AnalysisServiceError wraps errors from the analysis service with context.
type AnalysisServiceError struct {
	Operation string // The operation that failed (e.g., "submit")
	Message   string // Human-readable context
	Err       error  // Original error
}

// Error implements the error interface for AnalysisServiceError.
func (e *AnalysisServiceError) Error() string {
	return fmt.Sprintf("analysis service %s failed: %s: %v", e.Operation, e.Message, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *AnalysisServiceError) Unwrap() error {
	return e.Err
}

// NewAnalysisServiceError creates a new AnalysisServiceError.
func NewAnalysisServiceError(operation, message string, err error) error {
	return &AnalysisServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// AnalysisService is the public-facing orchestrator for analysis tasks.
// Version: 1.0
type AnalysisService interface {
	// Submit creates a pending task for the given analysis kind and
	// input and schedules it for background execution. It returns the
	// task identifier synchronously; the record is visible to GetStatus
	// before Submit returns.
	Submit(ctx context.Context, kind, input string) (uuid.UUID, error)

	// GetStatus returns a snapshot of the task record.
	// Returns store.ErrTaskNotFound (wrapped) for unknown identifiers.
	GetStatus(ctx context.Context, id uuid.UUID) (*domain.AnalysisTask, error)

	// WaitForTerminal polls the task until it reaches a terminal state
	// or the context is done. It is a convenience on top of GetStatus.
	WaitForTerminal(
		ctx context.Context,
		id uuid.UUID,
		pollInterval time.Duration,
	) (*domain.AnalysisTask, error)
}

// analysisServiceImpl implements AnalysisService on top of the task
// store and the event emitter. It never talks to the worker pool
// directly; the registered event handler owns task creation.
type analysisServiceImpl struct {
	taskStore store.TaskStore
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	taskStore store.TaskStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) AnalysisService {
	return &analysisServiceImpl{
		taskStore: taskStore,
		emitter:   emitter,
		logger:    logger.With("component", "analysis_service"),
	}
}

// Submit generates a fresh identifier, emits a task request event and
// returns the identifier. The event handler inserts the pending record
// and enqueues the work before EmitEvent returns, so a successful
// Submit guarantees the identifier resolves immediately.
func (s *analysisServiceImpl) Submit(ctx context.Context, kind, input string) (uuid.UUID, error) {
	if input == "" {
		return uuid.Nil, domain.ErrEmptyContent
	}

	id := uuid.New()

	payload := struct {
		TaskID string `json:"task_id"`
		Input  string `json:"input"`
	}{
		TaskID: id.String(),
		Input:  input,
	}

	event, err := events.NewTaskRequestEvent(kind, payload)
	if err != nil {
		s.logger.Error("failed to create task request event",
			"error", err,
			"task_id", id,
			"task_kind", kind)
		return uuid.Nil, NewAnalysisServiceError("submit", "failed to create event", err)
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit task request event",
			"error", err,
			"task_id", id,
			"task_kind", kind,
			"event_id", event.ID)
		// Handler errors carry the sentinel the caller needs to match
		// (unknown kind, queue full), so pass them through unwrapped.
		return uuid.Nil, err
	}

	s.logger.Info("analysis task submitted",
		"task_id", id,
		"task_kind", kind)
	return id, nil
}

// GetStatus returns a snapshot of the task record.
func (s *analysisServiceImpl) GetStatus(
	ctx context.Context,
	id uuid.UUID,
) (*domain.AnalysisTask, error) {
	record, err := s.taskStore.Get(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to read task record", "error", err, "task_id", id)
		}
		return nil, err
	}
	return record, nil
}

// WaitForTerminal polls GetStatus at the given interval until the task
// reaches a terminal state or the context is cancelled.
func (s *analysisServiceImpl) WaitForTerminal(
	ctx context.Context,
	id uuid.UUID,
	pollInterval time.Duration,
) (*domain.AnalysisTask, error) {
	if pollInterval <= 0 {
		pollInterval = 50 * time.Millisecond
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		record, err := s.GetStatus(ctx, id)
		if err != nil {
			return nil, err
		}
		if record.IsTerminal() {
			return record, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
