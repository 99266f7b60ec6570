package task

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verselab/verse-api/internal/analysis"
	"github.com/verselab/verse-api/internal/domain"
)

func TestNewComputationTask(t *testing.T) {
	logger := setupTestLogger()
	fn := func(ctx context.Context, input string) (any, error) { return "result", nil }

	id := uuid.New()
	task, err := NewComputationTask(id, "text", "hello", fn, logger)
	require.NoError(t, err)

	assert.Equal(t, id, task.ID())
	assert.Equal(t, "text", task.Kind())
	assert.Equal(t, "hello", task.Input())

	out, err := task.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "result", out)
}

func TestNewComputationTaskValidation(t *testing.T) {
	logger := setupTestLogger()
	fn := func(ctx context.Context, input string) (any, error) { return nil, nil }

	_, err := NewComputationTask(uuid.Nil, "text", "hello", fn, logger)
	assert.ErrorIs(t, err, ErrEmptyTaskID)

	_, err = NewComputationTask(uuid.New(), "text", "", fn, logger)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = NewComputationTask(uuid.New(), "text", "hello", nil, logger)
	assert.ErrorIs(t, err, ErrNilRegistry)

	_, err = NewComputationTask(uuid.New(), "text", "hello", fn, nil)
	assert.ErrorIs(t, err, ErrNilLogger)
}

func TestComputationTaskExecuteError(t *testing.T) {
	logger := setupTestLogger()
	fn := func(ctx context.Context, input string) (any, error) {
		return nil, errors.New("bad input")
	}

	task, err := NewComputationTask(uuid.New(), "number", "ten", fn, logger)
	require.NoError(t, err)

	out, execErr := task.Execute(context.Background())
	assert.Nil(t, out)
	assert.EqualError(t, execErr, "bad input")
}

func TestComputationTaskFactory(t *testing.T) {
	logger := setupTestLogger()
	factory := NewComputationTaskFactory(analysis.DefaultRegistry(), logger)

	id := uuid.New()
	task, err := factory.CreateTask(id, analysis.KindText, "hello world")
	require.NoError(t, err)
	assert.Equal(t, id, task.ID())
	assert.Equal(t, analysis.KindText, task.Kind())

	out, err := task.Execute(context.Background())
	require.NoError(t, err)

	result, ok := out.(*analysis.TextResult)
	require.True(t, ok)
	assert.Equal(t, 2, result.WordCount)
}

func TestComputationTaskFactoryUnknownKind(t *testing.T) {
	logger := setupTestLogger()
	factory := NewComputationTaskFactory(analysis.DefaultRegistry(), logger)

	task, err := factory.CreateTask(uuid.New(), "sentiment", "hello")
	assert.Nil(t, task)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}
