package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that Load sets the expected default values
// when no environment variables are set.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"VERSE_SERVER_PORT":       "",
		"VERSE_SERVER_LOG_LEVEL":  "",
		"VERSE_TASK_WORKER_COUNT": "",
		"VERSE_TASK_QUEUE_SIZE":   "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 4, cfg.Task.WorkerCount, "Default worker count should be 4")
	assert.Equal(t, 100, cfg.Task.QueueSize, "Default queue size should be 100")
	assert.False(t, cfg.Poems.GitHubEnabled, "GitHub fetching should default to off")
	assert.Equal(t, 5, cfg.Poems.MaxFiles, "Default max files should be 5")
}

// TestLoadFromEnvironment verifies that environment variables override defaults.
func TestLoadFromEnvironment(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"VERSE_SERVER_PORT":       "9090",
		"VERSE_SERVER_LOG_LEVEL":  "debug",
		"VERSE_TASK_WORKER_COUNT": "8",
		"VERSE_TASK_QUEUE_SIZE":   "250",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 8, cfg.Task.WorkerCount)
	assert.Equal(t, 250, cfg.Task.QueueSize)
}

// TestLoadValidation verifies that invalid configuration values are rejected.
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "port out of range",
			envVars: map[string]string{"VERSE_SERVER_PORT": "70000"},
		},
		{
			name:    "unknown log level",
			envVars: map[string]string{"VERSE_SERVER_LOG_LEVEL": "loud"},
		},
		{
			name:    "zero workers",
			envVars: map[string]string{"VERSE_TASK_WORKER_COUNT": "0"},
		},
		{
			name:    "negative queue size",
			envVars: map[string]string{"VERSE_TASK_QUEUE_SIZE": "-1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()
			assert.Error(t, err, "Load() should reject invalid configuration")
			assert.Nil(t, cfg)
		})
	}
}
