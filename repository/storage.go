package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"
)

// ErrNotFound is returned when a lookup matches no row. Handlers translate
// it to a 404; it deliberately does not distinguish "unknown service" from
// "service that never reported a position".
var ErrNotFound = errors.New("not found")

// Store is the full storage contract shared by the SQLite and Postgres
// backends. Reference data is read-only here; live_location is the only
// table with concurrent writers and is mutated exclusively through
// UpsertPosition and NudgeAllPositions.
type Store interface {
	// Reference lookups.
	ServiceRoute(ctx context.Context, serviceNo string) (*models.ServiceSummary, error)
	VehicleSummary(ctx context.Context, vehicleNo string) (*models.VehicleSummary, error)
	RouteStops(ctx context.Context, serviceNo string) ([]models.StopPoint, error)
	VehicleForService(ctx context.Context, serviceNo string) (int64, error)

	// Bidirectional search.
	Search(ctx context.Context, from, to, serviceType string) ([]models.SearchResult, error)
	Timetable(ctx context.Context, from, to string) ([]models.TimetableRow, error)

	// Read-mostly listings.
	Routes(ctx context.Context) ([]models.RouteListing, error)
	Stations(ctx context.Context) ([]string, error)
	DashboardCounts(ctx context.Context) (*models.DashboardCounts, error)

	// Live position state.
	UpsertPosition(ctx context.Context, vehicleID int64, lat, lng, speed float64, at time.Time) error
	PositionForService(ctx context.Context, serviceNo string) (*models.PositionRecord, error)
	NudgeAllPositions(ctx context.Context, dLat, dLng float64, at time.Time) (int64, error)

	// Lifecycle.
	InitSchema(ctx context.Context) error
	Seed(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// likePattern builds the case-insensitive containment pattern for a station
// fragment. An empty fragment yields "%%", which matches every station, so
// empty queries degrade to "list everything" rather than an error.
func likePattern(fragment string) string {
	return "%" + fragment + "%"
}
