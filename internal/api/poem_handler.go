package api

import (
	"net/http"

	"github.com/verselab/verse-api/internal/api/shared"
	"github.com/verselab/verse-api/internal/poemdata"
)

// PoemListResponse represents the response data for the poem catalog.
// Labels carries the dropdown labels in sorted order; the poems map is
// keyed by those labels.
type PoemListResponse struct {
	Labels []string                          `json:"labels"`
	Poems  map[string]poemdata.DropdownEntry `json:"poems"`
	Count  int                               `json:"count"`
}

// PoemHandler serves the poem catalog used to pick analysis input
type PoemHandler struct {
	catalog poemdata.Catalog
}

// NewPoemHandler creates a new PoemHandler
func NewPoemHandler(catalog poemdata.Catalog) *PoemHandler {
	return &PoemHandler{catalog: catalog}
}

// ListPoems handles GET /api/poems requests
func (h *PoemHandler) ListPoems(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.DropdownEntries()

	response := PoemListResponse{
		Labels: h.catalog.Labels(),
		Poems:  entries,
		Count:  len(entries),
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
