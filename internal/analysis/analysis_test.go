package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verselab/verse-api/internal/domain"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	for _, kind := range []string{KindPoetry, KindText, KindNumber} {
		fn, err := r.Lookup(kind)
		require.NoError(t, err, "kind %q should be registered", kind)
		assert.NotNil(t, fn)
	}

	assert.ElementsMatch(t, []string{KindPoetry, KindText, KindNumber}, r.Kinds())
}

func TestLookupUnknownKind(t *testing.T) {
	r := DefaultRegistry()

	fn, err := r.Lookup("sentiment")
	assert.Nil(t, fn)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()

	r.Register("custom", func(ctx context.Context, input string) (any, error) {
		return "first", nil
	})
	r.Register("custom", func(ctx context.Context, input string) (any, error) {
		return "second", nil
	})

	fn, err := r.Lookup("custom")
	require.NoError(t, err)

	out, err := fn(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "second", out)
}

func TestAnalyzeText(t *testing.T) {
	out, err := AnalyzeText(context.Background(), "hello world")
	require.NoError(t, err)

	result, ok := out.(*TextResult)
	require.True(t, ok)
	assert.Equal(t, 11, result.CharCount)
	assert.Equal(t, 2, result.WordCount)
	assert.Equal(t, "HELLO WORLD", result.Upper)
}

func TestAnalyzeTextCountsRunes(t *testing.T) {
	out, err := AnalyzeText(context.Background(), "snøen")
	require.NoError(t, err)

	result := out.(*TextResult)
	assert.Equal(t, 5, result.CharCount, "multi-byte runes count as one character")
	assert.Equal(t, 1, result.WordCount)
}

func TestAnalyzeNumber(t *testing.T) {
	out, err := AnalyzeNumber(context.Background(), "10")
	require.NoError(t, err)

	result, ok := out.(*NumberResult)
	require.True(t, ok)
	assert.Equal(t, int64(10), result.Input)
	assert.Equal(t, int64(100), result.Square)
	assert.InDelta(t, 3.1622776601, result.Sqrt, 1e-9)
	assert.Equal(t, int64(3628800), result.Factorial)
}

func TestAnalyzeNumberZero(t *testing.T) {
	out, err := AnalyzeNumber(context.Background(), "0")
	require.NoError(t, err)

	result := out.(*NumberResult)
	assert.Equal(t, int64(0), result.Square)
	assert.Equal(t, int64(1), result.Factorial, "0! is 1")
}

func TestAnalyzeNumberErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not a number", input: "ten"},
		{name: "empty input", input: ""},
		{name: "negative", input: "-3"},
		{name: "too large for factorial", input: "21"},
		{name: "float", input: "3.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := AnalyzeNumber(context.Background(), tc.input)
			assert.Nil(t, out)
			assert.Error(t, err)
		})
	}
}
