package models

// Route is an undirected connection between two named stations. Only one
// direction is stored; search treats the endpoints as interchangeable.
type Route struct {
	RouteID     int64  `json:"route_id"`
	RouteName   string `json:"route_name"`
	FromStation string `json:"from_station"`
	ToStation   string `json:"to_station"`
}

// Service is a scheduled run (number, fare, type) operating one route.
// ServiceNo is the externally visible identifier used for all lookups.
type Service struct {
	ServiceID   int64   `json:"service_id"`
	ServiceNo   string  `json:"service_no"`
	RouteID     int64   `json:"route_id"`
	ServiceType string  `json:"service_type"`
	TicketPrice float64 `json:"ticket_price"`
}

// Vehicle is a physical bus assigned to at most one service at a time.
type Vehicle struct {
	VehicleID int64  `json:"vehicle_id"`
	VehicleNo string `json:"vehicle_no"`
	ServiceID int64  `json:"service_id"`
	Status    string `json:"status"`
}

// Vehicle status values. The set is open-ended; these are the ones the
// reference data uses.
const (
	VehicleStatusRunning = "Running"
	VehicleStatusStopped = "Stopped"
)

// Stop is an ordered waypoint on a route. StopOrder defines traversal
// order and must be contiguous per route for the polyline to be meaningful.
type Stop struct {
	StopID    int64   `json:"stop_id"`
	RouteID   int64   `json:"route_id"`
	StopName  string  `json:"stop_name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	StopOrder int     `json:"stop_order"`
}

// TimetableEntry records a scheduled arrival of a service at a stop.
type TimetableEntry struct {
	TimeID      int64  `json:"time_id"`
	ServiceID   int64  `json:"service_id"`
	StopID      int64  `json:"stop_id"`
	ArrivalTime string `json:"arrival_time"`
}
