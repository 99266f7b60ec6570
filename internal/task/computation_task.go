package task

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/verselab/verse-api/internal/analysis"
)

// Common errors
var (
	ErrNilRegistry = errors.New("analysis registry cannot be nil")
	ErrNilLogger   = errors.New("logger cannot be nil")
	ErrEmptyTaskID = errors.New("task ID cannot be empty")
	ErrEmptyInput  = errors.New("task input cannot be empty")
)

// ComputationTask implements the Task interface by running a registered
// analysis computation over the submitted input.
type ComputationTask struct {
	id     uuid.UUID
	kind   string
	input  string
	fn     analysis.Func
	logger *slog.Logger
}

// NewComputationTask creates a task bound to the given identifier and
// computation. The identifier is supplied by the caller so that the
// stored record and the executable task always agree on it.
func NewComputationTask(
	id uuid.UUID,
	kind string,
	input string,
	fn analysis.Func,
	logger *slog.Logger,
) (*ComputationTask, error) {
	if id == uuid.Nil {
		return nil, ErrEmptyTaskID
	}
	if input == "" {
		return nil, ErrEmptyInput
	}
	if fn == nil {
		return nil, ErrNilRegistry
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &ComputationTask{
		id:     id,
		kind:   kind,
		input:  input,
		fn:     fn,
		logger: logger.With("task_kind", kind, "task_id", id),
	}, nil
}

// ID returns the task's unique identifier
func (t *ComputationTask) ID() uuid.UUID {
	return t.id
}

// Kind returns the analysis kind identifier
func (t *ComputationTask) Kind() string {
	return t.kind
}

// Input returns the raw input the task was submitted with
func (t *ComputationTask) Input() string {
	return t.input
}

// Execute runs the analysis computation.
func (t *ComputationTask) Execute(ctx context.Context) (any, error) {
	t.logger.Debug("executing analysis computation")
	return t.fn(ctx, t.input)
}

// ComputationTaskFactory creates ComputationTask instances from the
// analysis registry.
type ComputationTaskFactory struct {
	registry *analysis.Registry
	logger   *slog.Logger
}

// NewComputationTaskFactory creates a new factory for ComputationTasks
func NewComputationTaskFactory(
	registry *analysis.Registry,
	logger *slog.Logger,
) *ComputationTaskFactory {
	return &ComputationTaskFactory{
		registry: registry,
		logger:   logger.With("component", "computation_task_factory"),
	}
}

// CreateTask creates a new ComputationTask for the given identifier,
// kind and input. Returns domain.ErrUnknownKind (wrapped) if no
// computation is registered for the kind.
func (f *ComputationTaskFactory) CreateTask(id uuid.UUID, kind, input string) (Task, error) {
	fn, err := f.registry.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return NewComputationTask(id, kind, input, fn, f.logger)
}
