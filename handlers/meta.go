package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"
)

// MetaRepository defines the read-mostly listings backing the cached
// endpoints.
type MetaRepository interface {
	Routes(ctx context.Context) ([]models.RouteListing, error)
	Stations(ctx context.Context) ([]string, error)
	DashboardCounts(ctx context.Context) (*models.DashboardCounts, error)
}

// MetaCacheTTLs controls how long each listing is cached. Reference data
// only changes through out-of-band admin action, so minutes-long TTLs are
// fine; the dashboard reflects live status and stays shorter.
type MetaCacheTTLs struct {
	Routes    time.Duration
	Stations  time.Duration
	Dashboard time.Duration
}

// DefaultMetaCacheTTLs matches the policy the query layer is deployed with.
var DefaultMetaCacheTTLs = MetaCacheTTLs{
	Routes:    5 * time.Minute,
	Stations:  10 * time.Minute,
	Dashboard: time.Minute,
}

const (
	cacheKeyRoutes    = "routes"
	cacheKeyStations  = "stations"
	cacheKeyDashboard = "dashboard"
)

// MetaHandler serves the route list, station autocomplete list and
// dashboard counts through an in-process TTL cache.
type MetaHandler struct {
	repo  MetaRepository
	cache *cache.Cache
	ttls  MetaCacheTTLs
}

func NewMetaHandler(repo MetaRepository, ttls MetaCacheTTLs) *MetaHandler {
	return &MetaHandler{
		repo:  repo,
		cache: cache.New(cache.NoExpiration, 15*time.Minute),
		ttls:  ttls,
	}
}

// GetRoutes handles GET /api/routes.
func (h *MetaHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(cacheKeyRoutes); ok {
		h.writeCached(w, cached.([]models.RouteListing), h.ttls.Routes)
		return
	}

	routes, err := h.repo.Routes(r.Context())
	if err != nil {
		log.Printf("routes listing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch routes")
		return
	}

	h.cache.Set(cacheKeyRoutes, routes, h.ttls.Routes)
	h.writeCached(w, routes, h.ttls.Routes)
}

// GetStations handles GET /api/stations: the deduplicated union of every
// route's endpoints.
func (h *MetaHandler) GetStations(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(cacheKeyStations); ok {
		h.writeCached(w, cached.([]string), h.ttls.Stations)
		return
	}

	stations, err := h.repo.Stations(r.Context())
	if err != nil {
		log.Printf("stations listing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch stations")
		return
	}

	h.cache.Set(cacheKeyStations, stations, h.ttls.Stations)
	h.writeCached(w, stations, h.ttls.Stations)
}

// GetDashboard handles GET /api/dashboard.
func (h *MetaHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(cacheKeyDashboard); ok {
		h.writeCached(w, cached.(*models.DashboardCounts), h.ttls.Dashboard)
		return
	}

	counts, err := h.repo.DashboardCounts(r.Context())
	if err != nil {
		log.Printf("dashboard counts failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	h.cache.Set(cacheKeyDashboard, counts, h.ttls.Dashboard)
	h.writeCached(w, counts, h.ttls.Dashboard)
}

func (h *MetaHandler) writeCached(w http.ResponseWriter, v interface{}, ttl time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())))
	writeJSON(w, http.StatusOK, v)
}
