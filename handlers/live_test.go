package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/handlers"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/models"
)

func TestUpdateLocationThenLiveQuery(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodPost, "/api/update_location",
		`{"service_no": "28A", "lat": 17.72, "lng": 83.30, "speed": 40}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var ack handlers.UpdateLocationResponse
	decodeBody(t, rec, &ack)
	assert.Equal(t, "Location updated successfully", ack.Message)
	assert.Equal(t, int64(1), ack.VehicleID)

	reported, err := time.Parse(time.RFC3339, ack.Time)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), reported, 5*time.Second)

	live := doRequest(t, router, http.MethodGet, "/api/live/28A", "")
	require.Equal(t, http.StatusOK, live.Code)

	var pos models.PositionRecord
	decodeBody(t, live, &pos)
	assert.Equal(t, 17.72, pos.Lat)
	assert.Equal(t, 83.30, pos.Lng)
	assert.Equal(t, 40.0, pos.Speed)
	assert.True(t, pos.UpdatedAt.Equal(reported), "updated_at = %v, want %v", pos.UpdatedAt, reported)
}

func TestUpdateLocationOverwritesInPlace(t *testing.T) {
	router, _ := newTestServer(t, false)

	first := doRequest(t, router, http.MethodPost, "/api/update_location",
		`{"service_no": "28A", "lat": 17.72, "lng": 83.30, "speed": 35}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := doRequest(t, router, http.MethodPost, "/api/update_location",
		`{"service_no": "28A", "lat": 17.74, "lng": 83.32, "speed": 45}`)
	require.Equal(t, http.StatusOK, second.Code)

	live := doRequest(t, router, http.MethodGet, "/api/live/28A", "")
	require.Equal(t, http.StatusOK, live.Code)

	var pos models.PositionRecord
	decodeBody(t, live, &pos)
	assert.Equal(t, 17.74, pos.Lat)
	assert.Equal(t, 83.32, pos.Lng)
	assert.Equal(t, 45.0, pos.Speed)
}

func TestUpdateLocationValidation(t *testing.T) {
	router, _ := newTestServer(t, false)

	cases := []struct {
		name string
		body string
	}{
		{"missing service_no", `{"lat": 17.72, "lng": 83.30}`},
		{"missing lat", `{"service_no": "28A", "lng": 83.30}`},
		{"missing lng", `{"service_no": "28A", "lat": 17.72}`},
		{"malformed json", `{"service_no": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/update_location", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body handlers.ErrorResponse
			decodeBody(t, rec, &body)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestUpdateLocationUnknownService(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodPost, "/api/update_location",
		`{"service_no": "999Z", "lat": 17.72, "lng": 83.30}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateLocationRejectedInSimMode(t *testing.T) {
	router, _ := newTestServer(t, true)

	rec := doRequest(t, router, http.MethodPost, "/api/update_location",
		`{"service_no": "28A", "lat": 17.72, "lng": 83.30, "speed": 40}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLiveNotFoundSymmetry(t *testing.T) {
	router, _ := newTestServer(t, false)

	// Unknown service and seeded-but-silent service look identical.
	unknown := doRequest(t, router, http.MethodGet, "/api/live/999Z", "")
	silent := doRequest(t, router, http.MethodGet, "/api/live/28A", "")
	assert.Equal(t, http.StatusNotFound, unknown.Code)
	assert.Equal(t, http.StatusNotFound, silent.Code)
	assert.JSONEq(t, unknown.Body.String(), silent.Body.String())
}

func TestETAFromLastReportedSpeed(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodPost, "/api/update_location",
		`{"service_no": "28A", "lat": 17.72, "lng": 83.30, "speed": 40}`)
	require.Equal(t, http.StatusOK, rec.Code)

	eta := doRequest(t, router, http.MethodGet, "/api/eta/28A", "")
	require.Equal(t, http.StatusOK, eta.Code)

	var est models.ETAEstimate
	decodeBody(t, eta, &est)
	assert.Equal(t, "28A", est.ServiceNo)
	assert.Equal(t, 5.0, est.RemainingDistanceKm)
	assert.Equal(t, 40.0, est.SpeedKmph)
	assert.Equal(t, 7, est.EtaMinutes) // floor(5/40*60)
}

func TestETAUndefinedAtZeroSpeed(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodPost, "/api/update_location",
		`{"service_no": "28A", "lat": 17.72, "lng": 83.30}`)
	require.Equal(t, http.StatusOK, rec.Code)

	eta := doRequest(t, router, http.MethodGet, "/api/eta/28A", "")
	assert.Equal(t, http.StatusUnprocessableEntity, eta.Code)

	var body handlers.ErrorResponse
	decodeBody(t, eta, &body)
	assert.Contains(t, body.Error, "ETA undefined")
}

func TestETANotFound(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/eta/28A", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
