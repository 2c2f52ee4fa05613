package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Pinger verifies storage connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter mounts every API endpoint. Middleware (CORS, etc.) is applied
// by the caller so tests can exercise the bare surface.
func NewRouter(search *SearchHandler, lookup *LookupHandler, meta *MetaHandler, live *LiveHandler, db Pinger) chi.Router {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "APSRTC Backend Running Successfully"})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":    "error",
				"database":  "disconnected",
				"timestamp": time.Now().UTC(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"database":  "connected",
			"timestamp": time.Now().UTC(),
		})
	})

	r.Get("/api/search", search.Search)
	r.Get("/api/timetable", search.Timetable)

	r.Get("/api/service/{serviceNo}", lookup.GetService)
	r.Get("/api/vehicle/{vehicleNo}", lookup.GetVehicle)
	r.Get("/api/route_details/{serviceNo}", lookup.GetRouteDetails)

	r.Get("/api/live/{serviceNo}", live.GetLive)
	r.Get("/api/eta/{serviceNo}", live.GetETA)
	r.Post("/api/update_location", live.UpdateLocation)

	r.Get("/api/routes", meta.GetRoutes)
	r.Get("/api/stations", meta.GetStations)
	r.Get("/api/dashboard", meta.GetDashboard)

	return r
}
