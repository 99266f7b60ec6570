package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/verselab/verse-api/internal/analysis"
	"github.com/verselab/verse-api/internal/config"
	"github.com/verselab/verse-api/internal/events"
	"github.com/verselab/verse-api/internal/platform/memstore"
	"github.com/verselab/verse-api/internal/poemdata"
	"github.com/verselab/verse-api/internal/service"
	"github.com/verselab/verse-api/internal/store"
	"github.com/verselab/verse-api/internal/task"
)

// catalogFetchTimeout bounds the startup fetch of the poem catalog so
// an unreachable GitHub API cannot stall boot.
const catalogFetchTimeout = 30 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore

	// Analysis computations
	registry *analysis.Registry

	// Service interfaces
	analysisService service.AnalysisService

	// Event system
	eventEmitter events.EventEmitter

	// Task handling
	taskRunner *task.Runner

	// Poem catalog
	catalog poemdata.Catalog
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration and logger that must be
// established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Initialize stores
	app.taskStore = memstore.NewTaskStore()

	// Initialize the analysis registry with the built-in computations
	app.registry = analysis.DefaultRegistry()

	// Initialize task runner
	app.taskRunner = task.NewRunner(app.taskStore, task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.taskRunner.Start()
	logger.Info("Task runner started",
		"worker_count", cfg.Task.WorkerCount,
		"queue_size", cfg.Task.QueueSize)

	// Initialize event emitter
	emitter := events.NewInMemoryEventEmitter(logger)
	app.eventEmitter = emitter

	// Create task factory and register the event handler that turns
	// task request events into queued computations
	factory := task.NewComputationTaskFactory(app.registry, logger)
	handler := task.NewTaskRequestHandler(factory, app.taskRunner, logger)
	emitter.RegisterHandler(handler)

	// Initialize analysis service
	app.analysisService = service.NewAnalysisService(app.taskStore, app.eventEmitter, logger)

	// Load the poem catalog
	app.catalog = loadPoemCatalog(ctx, cfg, logger)
	logger.Info("Poem catalog loaded", "collection_count", len(app.catalog))

	logger.Info("Application initialized successfully")
	return app, nil
}

// loadPoemCatalog fetches TEI collections from GitHub when enabled,
// falling back to the embedded sample catalog on any failure.
func loadPoemCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) poemdata.Catalog {
	if !cfg.Poems.GitHubEnabled {
		return poemdata.SampleCatalog()
	}

	fetchCtx, cancel := context.WithTimeout(ctx, catalogFetchTimeout)
	defer cancel()

	fetcher := poemdata.NewFetcher(logger)
	catalog, err := fetcher.FetchCatalog(fetchCtx, cfg.Poems.MaxFiles)
	if err != nil || len(catalog) == 0 {
		logger.Warn("falling back to embedded poem catalog",
			"error", err,
			"github_enabled", true)
		return poemdata.SampleCatalog()
	}
	return catalog
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop task runner; queued tasks that never started stay pending
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	app.logger.Info("Application shutdown completed")
}
