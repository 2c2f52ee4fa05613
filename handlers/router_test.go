package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/handlers"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/repository"
)

// newTestServer builds the full API surface over a seeded throwaway SQLite
// database.
func newTestServer(t *testing.T, simMode bool) (http.Handler, *repository.SQLiteStore) {
	t.Helper()

	store, err := repository.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.InitSchema(ctx))
	require.NoError(t, store.Seed(ctx))

	router := handlers.NewRouter(
		handlers.NewSearchHandler(store, nil),
		handlers.NewLookupHandler(store),
		handlers.NewMetaHandler(store, handlers.DefaultMetaCacheTTLs),
		handlers.NewLiveHandler(store, nil, simMode),
		store,
	)
	return router, store
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestRootBanner(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.Equal(t, "APSRTC Backend Running Successfully", body["message"])
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t, false)

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "connected", body["database"])
}
