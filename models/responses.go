package models

// SearchResult is one row of the bidirectional route search: a (service,
// vehicle) pair on a route whose endpoints match the query fragments.
type SearchResult struct {
	ServiceNo   string  `json:"service_no"`
	RouteName   string  `json:"route_name"`
	ServiceType string  `json:"service_type"`
	TicketPrice float64 `json:"ticket_price"`
	VehicleNo   string  `json:"vehicle_no"`
}

// TimetableRow projects a timetable entry for the bidirectional timetable
// lookup.
type TimetableRow struct {
	ServiceNo   string `json:"service_no"`
	ArrivalTime string `json:"arrival_time"`
}

// ServiceSummary resolves a service number to its route name.
type ServiceSummary struct {
	ServiceNo string `json:"service_no"`
	Route     string `json:"route"`
}

// VehicleSummary resolves a vehicle number to its service, route and status.
type VehicleSummary struct {
	VehicleNo string `json:"vehicle_no"`
	ServiceNo string `json:"service_no"`
	Route     string `json:"route"`
	Status    string `json:"status"`
}

// RouteListing is the shape returned by the route list endpoint.
type RouteListing struct {
	RouteName string `json:"route_name"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// StopPoint is one point of a route's ordered stop polyline.
type StopPoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// DashboardCounts aggregates fleet-wide totals for the dashboard.
type DashboardCounts struct {
	TotalRoutes   int `json:"total_routes"`
	TotalServices int `json:"total_services"`
	TotalVehicles int `json:"total_vehicles"`
	RunningBuses  int `json:"running_buses"`
}
