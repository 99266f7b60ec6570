package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/verselab/verse-api/internal/events"
)

// TaskRequestHandler turns task request events into executable tasks
// and submits them to the runner. It is the only bridge between the
// service layer, which emits events, and the task subsystem.
type TaskRequestHandler struct {
	factory *ComputationTaskFactory
	runner  *Runner
	logger  *slog.Logger
}

// NewTaskRequestHandler creates an event handler wired to the given
// factory and runner.
func NewTaskRequestHandler(
	factory *ComputationTaskFactory,
	runner *Runner,
	logger *slog.Logger,
) *TaskRequestHandler {
	return &TaskRequestHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "task_request_handler"),
	}
}

// HandleEvent processes a task request event by creating and submitting
// the corresponding computation task. The event type names the analysis
// kind; the payload carries the task identifier and input.
func (h *TaskRequestHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	var payload struct {
		TaskID string `json:"task_id"`
		Input  string `json:"input"`
	}

	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	taskID, err := uuid.Parse(payload.TaskID)
	if err != nil {
		h.logger.Error("invalid task ID in payload",
			"error", err,
			"task_id", payload.TaskID,
			"event_id", event.ID)
		return fmt.Errorf("invalid task ID: %w", err)
	}

	t, err := h.factory.CreateTask(taskID, event.Type, payload.Input)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"task_id", taskID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.runner.Submit(ctx, t); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", taskID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("task created and submitted",
		"task_id", taskID,
		"task_kind", event.Type,
		"event_id", event.ID)
	return nil
}
