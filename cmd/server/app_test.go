package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verselab/verse-api/internal/api"
	"github.com/verselab/verse-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:     8080,
			LogLevel: "error",
		},
		Task: config.TaskConfig{
			WorkerCount: 2,
			QueueSize:   50,
		},
		Poems: config.PoemsConfig{
			GitHubEnabled: false,
			MaxFiles:      5,
		},
	}
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	app, err := newApplication(context.Background(), testConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	return app
}

func TestNewApplicationWiring(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.taskStore)
	assert.NotNil(t, app.registry)
	assert.NotNil(t, app.analysisService)
	assert.NotNil(t, app.eventEmitter)
	assert.NotNil(t, app.taskRunner)
	assert.NotEmpty(t, app.catalog)
}

func TestSubmitAndPollAnalysisOverHTTP(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)

	// Submit a text analysis
	resp, err := http.Post(
		server.URL+"/api/analyses",
		"application/json",
		strings.NewReader(`{"kind":"text","input":"hello world"}`),
	)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var submitted api.SubmitAnalysisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&submitted))
	require.NotEmpty(t, submitted.TaskID)
	assert.Equal(t, "pending", submitted.Status)

	// Poll until the task completes
	deadline := time.After(5 * time.Second)
	var status api.AnalysisStatusResponse
	for {
		pollResp, err := http.Get(server.URL + "/api/analyses/" + submitted.TaskID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, pollResp.StatusCode)

		require.NoError(t, json.NewDecoder(pollResp.Body).Decode(&status))
		require.NoError(t, pollResp.Body.Close())

		if status.Status == "completed" || status.Status == "failed" {
			break
		}

		select {
		case <-deadline:
			t.Fatalf("task stuck in status %q", status.Status)
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}

	require.Equal(t, "completed", status.Status)
	require.NotNil(t, status.CompletedAt)

	result, ok := status.Result.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 11, result["char_count"])
	assert.EqualValues(t, 2, result["word_count"])
	assert.Equal(t, "HELLO WORLD", result["upper"])
}

func TestSubmitUnknownKindOverHTTP(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)

	resp, err := http.Post(
		server.URL+"/api/analyses",
		"application/json",
		strings.NewReader(`{"kind":"sentiment","input":"hello"}`),
	)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetUnknownAnalysisOverHTTP(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/api/analyses/00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPoemCatalogOverHTTP(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/api/poems")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var poems api.PoemListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&poems))
	assert.Equal(t, 30, poems.Count)
	assert.Len(t, poems.Labels, 30)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
