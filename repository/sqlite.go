package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store over a SQLite database file (or :memory: for
// tests). Timestamps are stored as RFC3339 UTC strings.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens a SQLite database at the given path with WAL mode and
// foreign keys enabled, and verifies connectivity.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal=WAL&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single writer connection keeps concurrent upserts serialized at the
	// driver level instead of surfacing SQLITE_BUSY to callers.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InitSchema creates all tables and indexes if they do not exist.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	for _, stmt := range schemaIndexes {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// Seed loads the demo reference dataset. Safe to run repeatedly.
func (s *SQLiteStore) Seed(ctx context.Context) error {
	for _, stmt := range seedStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}
	return nil
}

// ServiceRoute resolves a service number to its route name. Duplicate
// service numbers resolve to the lowest service_id.
func (s *SQLiteStore) ServiceRoute(ctx context.Context, serviceNo string) (*models.ServiceSummary, error) {
	const query = `
		SELECT s.service_no, r.route_name
		FROM services s
		JOIN routes r ON s.route_id = r.route_id
		WHERE s.service_no = ?
		ORDER BY s.service_id
		LIMIT 1
	`

	var sum models.ServiceSummary
	err := s.db.QueryRowContext(ctx, query, serviceNo).Scan(&sum.ServiceNo, &sum.Route)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query service: %w", err)
	}
	return &sum, nil
}

// VehicleSummary resolves a vehicle number to its service, route and status.
func (s *SQLiteStore) VehicleSummary(ctx context.Context, vehicleNo string) (*models.VehicleSummary, error) {
	const query = `
		SELECT v.vehicle_no, s.service_no, r.route_name, v.status
		FROM vehicles v
		JOIN services s ON v.service_id = s.service_id
		JOIN routes r ON s.route_id = r.route_id
		WHERE v.vehicle_no = ?
		ORDER BY v.vehicle_id
		LIMIT 1
	`

	var sum models.VehicleSummary
	err := s.db.QueryRowContext(ctx, query, vehicleNo).Scan(&sum.VehicleNo, &sum.ServiceNo, &sum.Route, &sum.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query vehicle: %w", err)
	}
	return &sum, nil
}

// RouteStops returns the ordered stop polyline for the route a service runs.
func (s *SQLiteStore) RouteStops(ctx context.Context, serviceNo string) ([]models.StopPoint, error) {
	const query = `
		SELECT st.stop_name, st.lat, st.lng
		FROM stops st
		WHERE st.route_id = (
			SELECT route_id FROM services
			WHERE service_no = ?
			ORDER BY service_id
			LIMIT 1
		)
		ORDER BY st.stop_order
	`

	rows, err := s.db.QueryContext(ctx, query, serviceNo)
	if err != nil {
		return nil, fmt.Errorf("failed to query route stops: %w", err)
	}
	defer rows.Close()

	var stops []models.StopPoint
	for rows.Next() {
		var p models.StopPoint
		if err := rows.Scan(&p.Name, &p.Lat, &p.Lng); err != nil {
			return nil, fmt.Errorf("failed to scan stop row: %w", err)
		}
		stops = append(stops, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stop rows: %w", err)
	}
	if len(stops) == 0 {
		return nil, ErrNotFound
	}
	return stops, nil
}

// VehicleForService resolves a service number to its assigned vehicle id.
func (s *SQLiteStore) VehicleForService(ctx context.Context, serviceNo string) (int64, error) {
	const query = `
		SELECT v.vehicle_id
		FROM vehicles v
		JOIN services s ON v.service_id = s.service_id
		WHERE s.service_no = ?
		ORDER BY s.service_id, v.vehicle_id
		LIMIT 1
	`

	var vehicleID int64
	err := s.db.QueryRowContext(ctx, query, serviceNo).Scan(&vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to resolve vehicle for service: %w", err)
	}
	return vehicleID, nil
}

// Search matches routes whose endpoints contain the fragments in either
// direction, then joins every service and vehicle running them. Ordering is
// fixed so results are stable across calls.
func (s *SQLiteStore) Search(ctx context.Context, from, to, serviceType string) ([]models.SearchResult, error) {
	query := `
		SELECT s.service_no, r.route_name, s.service_type, s.ticket_price, v.vehicle_no
		FROM services s
		JOIN routes r ON s.route_id = r.route_id
		JOIN vehicles v ON v.service_id = s.service_id
		WHERE ((r.from_station LIKE ? AND r.to_station LIKE ?)
		   OR (r.from_station LIKE ? AND r.to_station LIKE ?))
	`
	args := []interface{}{likePattern(from), likePattern(to), likePattern(to), likePattern(from)}

	if serviceType != "" {
		query += " AND s.service_type = ?"
		args = append(args, serviceType)
	}
	query += " ORDER BY r.route_id, s.service_id, v.vehicle_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search routes: %w", err)
	}
	defer rows.Close()

	results := []models.SearchResult{}
	for rows.Next() {
		var res models.SearchResult
		if err := rows.Scan(&res.ServiceNo, &res.RouteName, &res.ServiceType, &res.TicketPrice, &res.VehicleNo); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}
	return results, nil
}

// Timetable applies the same bidirectional endpoint match as Search but
// projects scheduled arrivals via the timetable join.
func (s *SQLiteStore) Timetable(ctx context.Context, from, to string) ([]models.TimetableRow, error) {
	const query = `
		SELECT s.service_no, t.arrival_time
		FROM timetable t
		JOIN stops st ON t.stop_id = st.stop_id
		JOIN services s ON t.service_id = s.service_id
		JOIN routes r ON s.route_id = r.route_id
		WHERE ((r.from_station LIKE ? AND r.to_station LIKE ?)
		   OR (r.from_station LIKE ? AND r.to_station LIKE ?))
		ORDER BY s.service_id, t.time_id
	`

	rows, err := s.db.QueryContext(ctx, query,
		likePattern(from), likePattern(to), likePattern(to), likePattern(from))
	if err != nil {
		return nil, fmt.Errorf("failed to query timetable: %w", err)
	}
	defer rows.Close()

	entries := []models.TimetableRow{}
	for rows.Next() {
		var row models.TimetableRow
		if err := rows.Scan(&row.ServiceNo, &row.ArrivalTime); err != nil {
			return nil, fmt.Errorf("failed to scan timetable row: %w", err)
		}
		entries = append(entries, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timetable rows: %w", err)
	}
	return entries, nil
}

// Routes lists every stored route.
func (s *SQLiteStore) Routes(ctx context.Context) ([]models.RouteListing, error) {
	const query = `
		SELECT route_name, from_station, to_station
		FROM routes
		ORDER BY route_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	routes := []models.RouteListing{}
	for rows.Next() {
		var r models.RouteListing
		if err := rows.Scan(&r.RouteName, &r.From, &r.To); err != nil {
			return nil, fmt.Errorf("failed to scan route row: %w", err)
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating route rows: %w", err)
	}
	return routes, nil
}

// Stations returns the deduplicated union of all route endpoints in a
// deterministic order, so responses are stable for caching.
func (s *SQLiteStore) Stations(ctx context.Context) ([]string, error) {
	const query = `
		SELECT from_station FROM routes
		UNION
		SELECT to_station FROM routes
		ORDER BY 1
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	stations := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		stations = append(stations, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating station rows: %w", err)
	}
	return stations, nil
}

// DashboardCounts aggregates fleet-wide totals.
func (s *SQLiteStore) DashboardCounts(ctx context.Context) (*models.DashboardCounts, error) {
	var counts models.DashboardCounts

	queries := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM routes`, &counts.TotalRoutes},
		{`SELECT COUNT(*) FROM services`, &counts.TotalServices},
		{`SELECT COUNT(*) FROM vehicles`, &counts.TotalVehicles},
		{`SELECT COUNT(*) FROM vehicles WHERE status = 'Running'`, &counts.RunningBuses},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("failed to query dashboard counts: %w", err)
		}
	}
	return &counts, nil
}

// UpsertPosition writes the current position for a vehicle in a single
// atomic statement. The primary key conflict guarantees one row per vehicle
// no matter how many reporters race.
func (s *SQLiteStore) UpsertPosition(ctx context.Context, vehicleID int64, lat, lng, speed float64, at time.Time) error {
	const query = `
		INSERT INTO live_location (bus_id, lat, lng, speed, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (bus_id) DO UPDATE SET
			lat = excluded.lat,
			lng = excluded.lng,
			speed = excluded.speed,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, vehicleID, lat, lng, speed, at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}
	return nil
}

// PositionForService returns the last reported position for the vehicle
// assigned to a service. Unknown services and services that never reported
// both come back as ErrNotFound.
func (s *SQLiteStore) PositionForService(ctx context.Context, serviceNo string) (*models.PositionRecord, error) {
	const query = `
		SELECT l.bus_id, l.lat, l.lng, l.speed, l.updated_at
		FROM live_location l
		JOIN vehicles v ON l.bus_id = v.vehicle_id
		JOIN services s ON v.service_id = s.service_id
		WHERE s.service_no = ?
		ORDER BY s.service_id, v.vehicle_id
		LIMIT 1
	`

	var rec models.PositionRecord
	var updatedAtStr string
	err := s.db.QueryRowContext(ctx, query, serviceNo).Scan(&rec.BusID, &rec.Lat, &rec.Lng, &rec.Speed, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query position: %w", err)
	}

	rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse position timestamp: %w", err)
	}
	return &rec, nil
}

// NudgeAllPositions shifts every position record by a fixed offset and
// refreshes updated_at. Used only by the movement simulator; it shares the
// single-statement mutation contract with UpsertPosition.
func (s *SQLiteStore) NudgeAllPositions(ctx context.Context, dLat, dLng float64, at time.Time) (int64, error) {
	const query = `
		UPDATE live_location
		SET lat = lat + ?,
			lng = lng + ?,
			updated_at = ?
	`

	res, err := s.db.ExecContext(ctx, query, dLat, dLng, at.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to nudge positions: %w", err)
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return moved, nil
}
