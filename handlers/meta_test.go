package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/handlers"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"
)

func TestRoutesEndpoint(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/routes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=")

	var routes []models.RouteListing
	decodeBody(t, rec, &routes)
	require.Len(t, routes, 2)
	assert.Equal(t, "Gajuwaka → Beach Road", routes[0].RouteName)
	assert.Equal(t, "Gajuwaka", routes[0].From)
	assert.Equal(t, "Beach Road", routes[0].To)
}

func TestStationsEndpoint(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/stations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stations []string
	decodeBody(t, rec, &stations)
	assert.Equal(t, []string{"Beach Road", "Gajuwaka", "Maddilapalem", "Simhachalam"}, stations)
}

func TestDashboardEndpoint(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var counts models.DashboardCounts
	decodeBody(t, rec, &counts)
	assert.Equal(t, 2, counts.TotalRoutes)
	assert.Equal(t, 2, counts.TotalServices)
	assert.Equal(t, 2, counts.TotalVehicles)
	assert.Equal(t, 2, counts.RunningBuses)
}

// countingMetaRepo counts how often each listing actually hits storage.
type countingMetaRepo struct {
	routesCalls    int
	stationsCalls  int
	dashboardCalls int
}

func (c *countingMetaRepo) Routes(context.Context) ([]models.RouteListing, error) {
	c.routesCalls++
	return []models.RouteListing{{RouteName: "A → B", From: "A", To: "B"}}, nil
}

func (c *countingMetaRepo) Stations(context.Context) ([]string, error) {
	c.stationsCalls++
	return []string{"A", "B"}, nil
}

func (c *countingMetaRepo) DashboardCounts(context.Context) (*models.DashboardCounts, error) {
	c.dashboardCalls++
	return &models.DashboardCounts{TotalRoutes: 1}, nil
}

func TestMetaListingsAreCached(t *testing.T) {
	repo := &countingMetaRepo{}
	h := handlers.NewMetaHandler(repo, handlers.MetaCacheTTLs{
		Routes:    time.Minute,
		Stations:  time.Minute,
		Dashboard: time.Minute,
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.GetRoutes(rec, httptest.NewRequest(http.MethodGet, "/api/routes", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.GetStations(rec, httptest.NewRequest(http.MethodGet, "/api/stations", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, repo.routesCalls)
	assert.Equal(t, 1, repo.stationsCalls)
	assert.Equal(t, 1, repo.dashboardCalls)
}
