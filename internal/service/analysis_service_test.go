package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verselab/verse-api/internal/analysis"
	"github.com/verselab/verse-api/internal/domain"
	"github.com/verselab/verse-api/internal/events"
	"github.com/verselab/verse-api/internal/platform/memstore"
	"github.com/verselab/verse-api/internal/store"
	"github.com/verselab/verse-api/internal/task"
)

// testEnv wires the full submission path: service -> emitter -> handler
// -> runner -> worker pool -> store.
type testEnv struct {
	service  AnalysisService
	store    *memstore.TaskStore
	runner   *task.Runner
	registry *analysis.Registry
}

func newTestEnv(t *testing.T, workerCount, queueSize int) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	taskStore := memstore.NewTaskStore()
	registry := analysis.DefaultRegistry()
	runner := task.NewRunner(taskStore, task.RunnerConfig{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	}, logger)

	factory := task.NewComputationTaskFactory(registry, logger)
	handler := task.NewTaskRequestHandler(factory, runner, logger)

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(handler)

	runner.Start()
	t.Cleanup(runner.Stop)

	return &testEnv{
		service:  NewAnalysisService(taskStore, emitter, logger),
		store:    taskStore,
		runner:   runner,
		registry: registry,
	}
}

func TestSubmitReturnsImmediatelyVisibleID(t *testing.T) {
	env := newTestEnv(t, 2, 100)
	ctx := context.Background()

	id, err := env.service.Submit(ctx, analysis.KindText, "hello world")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	// Status is queryable the moment Submit returns; the task may have
	// advanced past pending, but it must never be unknown.
	record, err := env.service.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.NotEmpty(t, record.Status)
}

func TestSubmitEmptyInput(t *testing.T) {
	env := newTestEnv(t, 1, 10)

	id, err := env.service.Submit(context.Background(), analysis.KindText, "")
	assert.Equal(t, uuid.Nil, id)
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestSubmitUnknownKind(t *testing.T) {
	env := newTestEnv(t, 1, 10)

	id, err := env.service.Submit(context.Background(), "sentiment", "hello")
	assert.Equal(t, uuid.Nil, id)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestGetStatusUnknownID(t *testing.T) {
	env := newTestEnv(t, 1, 10)

	record, err := env.service.GetStatus(context.Background(), uuid.New())
	assert.Nil(t, record)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTextAnalysisScenario(t *testing.T) {
	env := newTestEnv(t, 2, 100)
	ctx := context.Background()

	id, err := env.service.Submit(ctx, analysis.KindText, "hello world")
	require.NoError(t, err)

	record, err := env.service.WaitForTerminal(ctx, id, 5*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusCompleted, record.Status)
	assert.Empty(t, record.Error)
	require.NotNil(t, record.CompletedAt)

	result, ok := record.Result.(*analysis.TextResult)
	require.True(t, ok)
	assert.Equal(t, 11, result.CharCount)
	assert.Equal(t, 2, result.WordCount)
	assert.Equal(t, "HELLO WORLD", result.Upper)
}

func TestNumberAnalysisScenario(t *testing.T) {
	env := newTestEnv(t, 2, 100)
	ctx := context.Background()

	id, err := env.service.Submit(ctx, analysis.KindNumber, "10")
	require.NoError(t, err)

	record, err := env.service.WaitForTerminal(ctx, id, 5*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusCompleted, record.Status)

	result, ok := record.Result.(*analysis.NumberResult)
	require.True(t, ok)
	assert.Equal(t, int64(100), result.Square)
	assert.InDelta(t, 3.1622776601, result.Sqrt, 1e-9)
	assert.Equal(t, int64(3628800), result.Factorial)
}

func TestPoetryAnalysisScenario(t *testing.T) {
	env := newTestEnv(t, 2, 100)
	ctx := context.Background()

	poem := "Stille skimrer snøen\nStille synker solen"
	id, err := env.service.Submit(ctx, analysis.KindPoetry, poem)
	require.NoError(t, err)

	record, err := env.service.WaitForTerminal(ctx, id, 5*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusCompleted, record.Status)

	result, ok := record.Result.(*analysis.PoetryResult)
	require.True(t, ok)
	assert.Equal(t, poem, result.Text)
	assert.NotEmpty(t, result.Alliteration)
}

func TestFailedComputationRecordsErrorOnly(t *testing.T) {
	env := newTestEnv(t, 2, 100)
	ctx := context.Background()

	id, err := env.service.Submit(ctx, analysis.KindNumber, "not-a-number")
	require.NoError(t, err, "invalid input is a task failure, not a submit failure")

	record, err := env.service.WaitForTerminal(ctx, id, 5*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusFailed, record.Status)
	assert.NotEmpty(t, record.Error)
	assert.Nil(t, record.Result)
	require.NotNil(t, record.CompletedAt)
}

func TestPanickingComputationDoesNotStallPool(t *testing.T) {
	env := newTestEnv(t, 1, 100)
	ctx := context.Background()

	env.registry.Register("explosive", func(ctx context.Context, input string) (any, error) {
		panic("boom: " + input)
	})

	panicID, err := env.service.Submit(ctx, "explosive", "first")
	require.NoError(t, err)

	record, err := env.service.WaitForTerminal(ctx, panicID, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusFailed, record.Status)
	assert.NotEmpty(t, record.Error)

	// The single worker survived the panic and keeps processing.
	nextID, err := env.service.Submit(ctx, analysis.KindText, "still running")
	require.NoError(t, err)

	record, err = env.service.WaitForTerminal(ctx, nextID, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, record.Status)
}

// TestStatusTransitionsAreMonotonic polls a slow task continuously and
// verifies no sampled sequence ever moves backward through the lifecycle.
func TestStatusTransitionsAreMonotonic(t *testing.T) {
	env := newTestEnv(t, 1, 10)
	ctx := context.Background()

	started := make(chan struct{})
	env.registry.Register("slow", func(ctx context.Context, input string) (any, error) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		return "done", nil
	})

	id, err := env.service.Submit(ctx, "slow", "x")
	require.NoError(t, err)

	rank := map[domain.TaskStatus]int{
		domain.TaskStatusPending:    0,
		domain.TaskStatusProcessing: 1,
		domain.TaskStatusCompleted:  2,
		domain.TaskStatusFailed:     2,
	}

	<-started
	lastRank := -1
	deadline := time.After(5 * time.Second)
	for {
		record, err := env.service.GetStatus(ctx, id)
		require.NoError(t, err)

		r := rank[record.Status]
		assert.GreaterOrEqual(t, r, lastRank,
			"status moved backward: observed %s after rank %d", record.Status, lastRank)
		lastRank = r

		if record.IsTerminal() {
			break
		}

		select {
		case <-deadline:
			t.Fatal("task never reached a terminal state")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

// TestIdentifierUniqueness submits a large batch of tasks and verifies
// every identifier is distinct.
func TestIdentifierUniqueness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping bulk submission test in short mode")
	}

	const submissions = 10_000

	env := newTestEnv(t, 8, submissions)
	ctx := context.Background()

	seen := make(map[uuid.UUID]struct{}, submissions)
	for i := 0; i < submissions; i++ {
		id, err := env.service.Submit(ctx, analysis.KindText, "hello world")
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "identifier %s was issued twice", id)
		seen[id] = struct{}{}
	}

	assert.Len(t, seen, submissions)
}

func TestWaitForTerminalHonorsContext(t *testing.T) {
	env := newTestEnv(t, 1, 10)

	release := make(chan struct{})
	// Runs before the runner's own cleanup, unblocking the worker.
	t.Cleanup(func() { close(release) })

	env.registry.Register("eternal", func(ctx context.Context, input string) (any, error) {
		<-release
		return "late", nil
	})

	id, err := env.service.Submit(context.Background(), "eternal", "x")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	record, waitErr := env.service.WaitForTerminal(ctx, id, 5*time.Millisecond)
	assert.Nil(t, record)
	assert.ErrorIs(t, waitErr, context.DeadlineExceeded)
}
