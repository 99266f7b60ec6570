package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/verselab/verse-api/internal/domain"
	"github.com/verselab/verse-api/internal/store"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 4,
		QueueSize:   100,
	}
}

// Runner is the orchestration entry point for background analysis work.
// Submit inserts a pending record and schedules the task on the worker
// pool; the caller gets the identifier back before the computation runs.
type Runner struct {
	taskStore store.TaskStore
	queue     *TaskQueue
	pool      *WorkerPool
	config    RunnerConfig
	logger    *slog.Logger

	// submitMu serializes the capacity check against the insert+enqueue
	// pair so a record is never left pending without a queue slot.
	submitMu sync.Mutex
}

// NewRunner creates a Runner with its own queue and worker pool.
func NewRunner(taskStore store.TaskStore, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, taskStore, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)

	return &Runner{
		taskStore: taskStore,
		queue:     queue,
		pool:      pool,
		config:    config,
		logger:    logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
// invoked after a task is recorded as failed.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Start launches the worker pool.
func (r *Runner) Start() {
	r.pool.Start()
}

// Stop shuts down the runner. Queued tasks are abandoned; the record of
// any task not yet picked up remains pending for the rest of the
// process lifetime, which ends here anyway.
func (r *Runner) Stop() {
	r.pool.Stop()
	r.queue.Close()
}

// Submit records the task as pending and schedules it for execution.
// The record is visible to status queries the moment Submit returns.
// Submit never blocks on worker availability; when the queue is at
// capacity it fails fast with ErrQueueFull and no record is created.
func (r *Runner) Submit(ctx context.Context, t Task) error {
	r.submitMu.Lock()
	defer r.submitMu.Unlock()

	// Only Submit adds to the queue, so under submitMu a capacity check
	// guarantees the following Enqueue cannot fail.
	if r.queue.Len() >= r.queue.Cap() {
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, r.queue.Cap())
	}

	record := &domain.AnalysisTask{
		ID:        t.ID(),
		Kind:      t.Kind(),
		Input:     t.Input(),
		Status:    domain.TaskStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.taskStore.Insert(ctx, record); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if err := r.queue.Enqueue(t); err != nil {
		// Unreachable given the capacity check above; surfaced anyway
		// rather than swallowed.
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	r.logger.Debug("task submitted",
		"task_id", t.ID(),
		"task_kind", t.Kind())
	return nil
}
