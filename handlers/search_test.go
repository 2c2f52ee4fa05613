package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"
)

func TestSearchEndpointBidirectional(t *testing.T) {
	router, _ := newTestServer(t, false)

	forward := doRequest(t, router, http.MethodGet, "/api/search?from=gajuwaka&to=beach", "")
	reverse := doRequest(t, router, http.MethodGet, "/api/search?from=beach&to=gajuwaka", "")
	require.Equal(t, http.StatusOK, forward.Code)
	require.Equal(t, http.StatusOK, reverse.Code)
	assert.JSONEq(t, forward.Body.String(), reverse.Body.String())

	var results []models.SearchResult
	decodeBody(t, forward, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "28A", results[0].ServiceNo)
	assert.Equal(t, "Gajuwaka → Beach Road", results[0].RouteName)
	assert.Equal(t, "AP31 AB 1234", results[0].VehicleNo)
}

func TestSearchEndpointServiceTypeFilter(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/search?from=gajuwaka&to=beach&service=Metro", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []models.SearchResult
	decodeBody(t, rec, &results)
	assert.Empty(t, results)
}

func TestSearchEndpointNoParamsListsAll(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/search", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []models.SearchResult
	decodeBody(t, rec, &results)
	assert.Len(t, results, 2)
}

func TestTimetableEndpoint(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/timetable?from=gajuwaka&to=beach", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []models.TimetableRow
	decodeBody(t, rec, &rows)
	require.Len(t, rows, 3)
	assert.Equal(t, "10:00", rows[0].ArrivalTime)
}

func TestServiceLookup(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/service/28A", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sum models.ServiceSummary
	decodeBody(t, rec, &sum)
	assert.Equal(t, "28A", sum.ServiceNo)
	assert.Equal(t, "Gajuwaka → Beach Road", sum.Route)

	missing := doRequest(t, router, http.MethodGet, "/api/service/999Z", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestVehicleLookup(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/vehicle/AP31%20AB%201234", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sum models.VehicleSummary
	decodeBody(t, rec, &sum)
	assert.Equal(t, "28A", sum.ServiceNo)
	assert.Equal(t, "Gajuwaka → Beach Road", sum.Route)
	assert.Equal(t, "Running", sum.Status)

	missing := doRequest(t, router, http.MethodGet, "/api/vehicle/XX00%20YY%200000", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRouteDetails(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/route_details/28A", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stops []models.StopPoint
	decodeBody(t, rec, &stops)
	require.Len(t, stops, 3)
	assert.Equal(t, "Gajuwaka", stops[0].Name)
	assert.Equal(t, "Beach Road", stops[2].Name)

	missing := doRequest(t, router, http.MethodGet, "/api/route_details/999Z", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
