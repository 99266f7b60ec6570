package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/verselab/verse-api/internal/api"
	apiMiddleware "github.com/verselab/verse-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	analysisHandler := api.NewAnalysisHandler(app.analysisService)
	poemHandler := api.NewPoemHandler(app.catalog)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Analysis endpoints
		r.Post("/analyses", analysisHandler.SubmitAnalysis)
		r.Get("/analyses/{id}", analysisHandler.GetAnalysis)

		// Poem catalog
		r.Get("/poems", poemHandler.ListPoems)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
