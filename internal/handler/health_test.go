package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/handler"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func getHealth(t *testing.T, db handler.Pinger) (int, handler.HealthResponse) {
	t.Helper()
	srv := handler.NewServer(nil, nil, db, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	code, body := getHealth(t, nil)

	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body.Status)
}

func TestGetHealth_pingsDatabase(t *testing.T) {
	called := false
	code, body := getHealth(t, pingerFunc(func(context.Context) error {
		called = true
		return nil
	}))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
}

func TestGetHealth_returns503WhenDatabaseDown(t *testing.T) {
	code, body := getHealth(t, pingerFunc(func(context.Context) error {
		return errors.New("connection refused")
	}))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body.Status)
}

func TestGetOpenAPI_servesEmbeddedDocument(t *testing.T) {
	srv := handler.NewServer(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/api/trips/{id}")
}
