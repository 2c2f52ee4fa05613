package models

import "time"

// PositionRecord is the single latest known location and speed for a
// vehicle. Exactly one record exists per vehicle; reports overwrite it in
// place. UpdatedAt is server wall-clock time at the moment of write, never
// a client-supplied timestamp.
type PositionRecord struct {
	BusID     int64     `json:"bus_id,omitempty"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Speed     float64   `json:"speed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ETAEstimate is a rough time-to-arrival derived from the last reported
// speed. RemainingDistanceKm is a fixed placeholder; no route-progress
// tracking exists.
type ETAEstimate struct {
	ServiceNo           string  `json:"service_no"`
	RemainingDistanceKm float64 `json:"remaining_distance_km"`
	SpeedKmph           float64 `json:"speed_kmph"`
	EtaMinutes          int     `json:"eta_minutes"`
}
