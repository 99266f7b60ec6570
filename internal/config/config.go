package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Task   TaskConfig   `mapstructure:"task"   validate:"required"`
	Poems  PoemsConfig  `mapstructure:"poems"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// TaskConfig contains the settings for the background analysis workers.
type TaskConfig struct {
	// WorkerCount is the number of concurrent worker goroutines.
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0,lte=64"`

	// QueueSize is the capacity of the in-memory task queue. Submissions
	// beyond this bound are rejected rather than blocking the caller.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
}

// PoemsConfig contains the settings for the poem catalog.
type PoemsConfig struct {
	// GitHubEnabled controls whether the catalog is fetched from the
	// poem repository on startup. When false (the default) the embedded
	// sample collections are used.
	GitHubEnabled bool `mapstructure:"github_enabled"`

	// MaxFiles caps how many collection files are fetched from GitHub.
	MaxFiles int `mapstructure:"max_files" validate:"gte=0"`
}
