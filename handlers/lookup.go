package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/repository"
)

// ReferenceRepository defines the read-only reference lookups.
type ReferenceRepository interface {
	ServiceRoute(ctx context.Context, serviceNo string) (*models.ServiceSummary, error)
	VehicleSummary(ctx context.Context, vehicleNo string) (*models.VehicleSummary, error)
	RouteStops(ctx context.Context, serviceNo string) ([]models.StopPoint, error)
}

// LookupHandler resolves service numbers, vehicle numbers and route
// polylines against the reference data.
type LookupHandler struct {
	repo ReferenceRepository
}

func NewLookupHandler(repo ReferenceRepository) *LookupHandler {
	return &LookupHandler{repo: repo}
}

// GetService handles GET /api/service/{serviceNo}.
func (h *LookupHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceNo := chi.URLParam(r, "serviceNo")

	sum, err := h.repo.ServiceRoute(r.Context(), serviceNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		log.Printf("service lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch service")
		return
	}

	writeJSON(w, http.StatusOK, sum)
}

// GetVehicle handles GET /api/vehicle/{vehicleNo}.
func (h *LookupHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleNo := chi.URLParam(r, "vehicleNo")

	sum, err := h.repo.VehicleSummary(r.Context(), vehicleNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		log.Printf("vehicle lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch vehicle")
		return
	}

	writeJSON(w, http.StatusOK, sum)
}

// GetRouteDetails handles GET /api/route_details/{serviceNo}: the ordered
// stop polyline for the route the service runs.
func (h *LookupHandler) GetRouteDetails(w http.ResponseWriter, r *http.Request) {
	serviceNo := chi.URLParam(r, "serviceNo")

	stops, err := h.repo.RouteStops(r.Context(), serviceNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Route details not found")
			return
		}
		log.Printf("route details lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch route details")
		return
	}

	writeJSON(w, http.StatusOK, stops)
}
