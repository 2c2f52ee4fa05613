package repository

// Schema statements for the SQLite backend. live_location keys on bus_id so
// the upsert can rely on the primary key conflict; without it two reporters
// for the same vehicle could both insert.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS routes (
		route_id INTEGER PRIMARY KEY,
		route_name TEXT NOT NULL,
		from_station TEXT NOT NULL,
		to_station TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		service_id INTEGER PRIMARY KEY,
		service_no TEXT NOT NULL,
		route_id INTEGER NOT NULL,
		service_type TEXT NOT NULL,
		ticket_price REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id INTEGER PRIMARY KEY,
		vehicle_no TEXT NOT NULL,
		service_id INTEGER NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stops (
		stop_id INTEGER PRIMARY KEY,
		route_id INTEGER NOT NULL,
		stop_name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		stop_order INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS timetable (
		time_id INTEGER PRIMARY KEY,
		service_id INTEGER NOT NULL,
		stop_id INTEGER NOT NULL,
		arrival_time TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS live_location (
		bus_id INTEGER PRIMARY KEY,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		speed REAL NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS routes (
		route_id BIGSERIAL PRIMARY KEY,
		route_name TEXT NOT NULL,
		from_station TEXT NOT NULL,
		to_station TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		service_id BIGSERIAL PRIMARY KEY,
		service_no TEXT NOT NULL,
		route_id BIGINT NOT NULL,
		service_type TEXT NOT NULL,
		ticket_price DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id BIGSERIAL PRIMARY KEY,
		vehicle_no TEXT NOT NULL,
		service_id BIGINT NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stops (
		stop_id BIGSERIAL PRIMARY KEY,
		route_id BIGINT NOT NULL,
		stop_name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		stop_order INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS timetable (
		time_id BIGSERIAL PRIMARY KEY,
		service_id BIGINT NOT NULL,
		stop_id BIGINT NOT NULL,
		arrival_time TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS live_location (
		bus_id BIGINT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		speed DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// Indexes for the lookup paths the API actually takes: service and vehicle
// number resolution, endpoint matching, and the live join keys.
var schemaIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_services_service_no ON services(service_no)`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_vehicle_no ON vehicles(vehicle_no)`,
	`CREATE INDEX IF NOT EXISTS idx_routes_stations ON routes(from_station, to_station)`,
	`CREATE INDEX IF NOT EXISTS idx_services_route_id ON services(route_id)`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_service_id ON vehicles(service_id)`,
	`CREATE INDEX IF NOT EXISTS idx_stops_route_id ON stops(route_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_service_id ON timetable(service_id)`,
}

// Demo dataset: two Visakhapatnam routes with one service and vehicle each.
// Statements use ON CONFLICT DO NOTHING so seeding is repeatable on both
// backends.
var seedStatements = []string{
	`INSERT INTO routes (route_id, route_name, from_station, to_station) VALUES
		(1, 'Gajuwaka → Beach Road', 'Gajuwaka', 'Beach Road'),
		(2, 'Maddilapalem → Simhachalam', 'Maddilapalem', 'Simhachalam')
		ON CONFLICT (route_id) DO NOTHING`,
	`INSERT INTO services (service_id, service_no, route_id, service_type, ticket_price) VALUES
		(1, '28A', 1, 'Express', 30),
		(2, '6K', 2, 'Metro', 25)
		ON CONFLICT (service_id) DO NOTHING`,
	`INSERT INTO vehicles (vehicle_id, vehicle_no, service_id, status) VALUES
		(1, 'AP31 AB 1234', 1, 'Running'),
		(2, 'AP31 CD 5678', 2, 'Running')
		ON CONFLICT (vehicle_id) DO NOTHING`,
	`INSERT INTO stops (stop_id, route_id, stop_name, lat, lng, stop_order) VALUES
		(1, 1, 'Gajuwaka', 17.72, 83.30, 1),
		(2, 1, 'Maddilapalem', 17.73, 83.31, 2),
		(3, 1, 'Beach Road', 17.75, 83.33, 3)
		ON CONFLICT (stop_id) DO NOTHING`,
	`INSERT INTO timetable (time_id, service_id, stop_id, arrival_time) VALUES
		(1, 1, 1, '10:00'),
		(2, 1, 2, '10:20'),
		(3, 1, 3, '10:45')
		ON CONFLICT (time_id) DO NOTHING`,
}
