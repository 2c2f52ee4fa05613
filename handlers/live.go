package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/metrics"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/publisher"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/repository"
)

// remainingDistanceKm is a fixed placeholder: the system has no
// route-progress tracking, so every ETA assumes 5 km left.
const remainingDistanceKm = 5.0

// LiveRepository defines the storage operations for position ingestion and
// live queries.
type LiveRepository interface {
	VehicleForService(ctx context.Context, serviceNo string) (int64, error)
	UpsertPosition(ctx context.Context, vehicleID int64, lat, lng, speed float64, at time.Time) error
	PositionForService(ctx context.Context, serviceNo string) (*models.PositionRecord, error)
}

// IngestMetrics records ingestion outcomes and timings.
type IngestMetrics interface {
	ObserveIngest(outcome string, d time.Duration)
}

// PositionPublisher fans accepted reports out to subscribers. Optional.
type PositionPublisher interface {
	PublishPosition(ev publisher.PositionEvent) error
}

// UpdateLocationRequest is a driver position report. service_no, lat and
// lng are mandatory; zero lat/lng is treated as missing. Speed defaults to
// 0 when omitted and is not range-checked here; a non-positive speed only
// matters once someone asks for an ETA.
type UpdateLocationRequest struct {
	ServiceNo string  `json:"service_no" validate:"required"`
	Lat       float64 `json:"lat" validate:"required"`
	Lng       float64 `json:"lng" validate:"required"`
	Speed     float64 `json:"speed"`
}

// UpdateLocationResponse acknowledges a stored report with the effective
// server-side timestamp.
type UpdateLocationResponse struct {
	Message   string `json:"message"`
	Time      string `json:"time"`
	VehicleID int64  `json:"vehicle_id"`
}

// LiveHandler handles driver position ingestion, live tracking and ETA
// estimation.
type LiveHandler struct {
	repo     LiveRepository
	validate *validator.Validate
	metrics  IngestMetrics
	pub      PositionPublisher

	// simMode rejects driver reports while the movement simulator owns the
	// position table. The two writers must never share a fleet.
	simMode bool
}

func NewLiveHandler(repo LiveRepository, m IngestMetrics, simMode bool) *LiveHandler {
	return &LiveHandler{
		repo:     repo,
		validate: validator.New(),
		metrics:  m,
		simMode:  simMode,
	}
}

// SetPublisher attaches an optional position event publisher.
func (h *LiveHandler) SetPublisher(pub PositionPublisher) {
	h.pub = pub
}

// GetLive handles GET /api/live/{serviceNo}. An unknown service and a
// service that never reported both return 404.
func (h *LiveHandler) GetLive(w http.ResponseWriter, r *http.Request) {
	serviceNo := chi.URLParam(r, "serviceNo")

	rec, err := h.repo.PositionForService(r.Context(), serviceNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Live data not found")
			return
		}
		log.Printf("live position lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch live position")
		return
	}

	rec.BusID = 0 // response carries position only
	writeJSON(w, http.StatusOK, rec)
}

// GetETA handles GET /api/eta/{serviceNo}. The remaining distance is the
// fixed placeholder; a vehicle whose last reported speed is zero or
// negative has no defined ETA and is signalled as such rather than
// returning an infinite value.
func (h *LiveHandler) GetETA(w http.ResponseWriter, r *http.Request) {
	serviceNo := chi.URLParam(r, "serviceNo")

	rec, err := h.repo.PositionForService(r.Context(), serviceNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ETA data not found")
			return
		}
		log.Printf("eta lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to estimate ETA")
		return
	}

	if rec.Speed <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "ETA undefined: vehicle speed is zero")
		return
	}

	writeJSON(w, http.StatusOK, models.ETAEstimate{
		ServiceNo:           serviceNo,
		RemainingDistanceKm: remainingDistanceKm,
		SpeedKmph:           rec.Speed,
		EtaMinutes:          int(remainingDistanceKm / rec.Speed * 60),
	})
}

// UpdateLocation handles POST /api/update_location: validate, resolve the
// service to its vehicle, then atomically upsert the single position record
// for that vehicle. updated_at is server time, never client-supplied.
func (h *LiveHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.simMode {
		h.observe(metrics.OutcomeSimMode, start)
		writeError(w, http.StatusConflict, "Simulation mode is active; driver reports are disabled")
		return
	}

	var req UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.observe(metrics.OutcomeInvalid, start)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.observe(metrics.OutcomeInvalid, start)
		writeError(w, http.StatusBadRequest, "service_no, lat and lng are required")
		return
	}

	vehicleID, err := h.repo.VehicleForService(r.Context(), req.ServiceNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.observe(metrics.OutcomeUnknownService, start)
			writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		log.Printf("vehicle resolution failed: %v", err)
		h.observe(metrics.OutcomeStorageError, start)
		writeError(w, http.StatusInternalServerError, "Failed to update location")
		return
	}

	now := time.Now().UTC()
	if err := h.repo.UpsertPosition(r.Context(), vehicleID, req.Lat, req.Lng, req.Speed, now); err != nil {
		log.Printf("position upsert failed: %v", err)
		h.observe(metrics.OutcomeStorageError, start)
		writeError(w, http.StatusInternalServerError, "Failed to update location")
		return
	}

	reportID := uuid.New().String()
	log.Printf("position report %s: service=%s vehicle=%d", reportID, req.ServiceNo, vehicleID)

	if h.pub != nil {
		ev := publisher.PositionEvent{
			ReportID:  reportID,
			ServiceNo: req.ServiceNo,
			VehicleID: vehicleID,
			Lat:       req.Lat,
			Lng:       req.Lng,
			Speed:     req.Speed,
			UpdatedAt: now,
		}
		if err := h.pub.PublishPosition(ev); err != nil {
			// Delivery is best effort; the stored record already won.
			log.Printf("position event publish failed: %v", err)
		}
	}

	h.observe(metrics.OutcomeAccepted, start)
	writeJSON(w, http.StatusOK, UpdateLocationResponse{
		Message:   "Location updated successfully",
		Time:      now.Format(time.RFC3339),
		VehicleID: vehicleID,
	})
}

func (h *LiveHandler) observe(outcome string, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveIngest(outcome, time.Since(start))
	}
}
