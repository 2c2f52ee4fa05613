package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"
)

// SearchRepository defines the storage operations the search endpoints need.
type SearchRepository interface {
	Search(ctx context.Context, from, to, serviceType string) ([]models.SearchResult, error)
	Timetable(ctx context.Context, from, to string) ([]models.TimetableRow, error)
}

// SearchMetrics records search query timings.
type SearchMetrics interface {
	ObserveSearch(d time.Duration)
}

// SearchHandler handles the bidirectional route search and timetable
// endpoints. Both treat a route as an undirected edge: fragments are matched
// against the stored endpoints in both orders.
type SearchHandler struct {
	repo    SearchRepository
	metrics SearchMetrics
}

func NewSearchHandler(repo SearchRepository, m SearchMetrics) *SearchHandler {
	return &SearchHandler{repo: repo, metrics: m}
}

// Search handles GET /api/search?from&to&service.
// Empty fragments match everything, so a bare /api/search lists all routes.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	serviceType := r.URL.Query().Get("service")

	start := time.Now()
	results, err := h.repo.Search(ctx, from, to, serviceType)
	if h.metrics != nil {
		h.metrics.ObserveSearch(time.Since(start))
	}
	if err != nil {
		log.Printf("search failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to search buses")
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// Timetable handles GET /api/timetable?from&to. Same endpoint-matching
// policy as Search, projected onto scheduled arrivals.
func (h *SearchHandler) Timetable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	entries, err := h.repo.Timetable(ctx, from, to)
	if err != nil {
		log.Printf("timetable lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch timetable")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
