package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiagnostics struct {
	pingErr error
	listErr error
	names   []string
}

func (f *fakeDiagnostics) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeDiagnostics) ListCollections(ctx context.Context, limit int) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.names) > limit {
		return f.names[:limit], nil
	}
	return f.names, nil
}

func runTestEndpoint(handler *DiagnosticsHandler) (*httptest.ResponseRecorder, testResponse) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	handler.TestDatabase(rr, req)

	var resp testResponse
	json.Unmarshal(rr.Body.Bytes(), &resp)
	return rr, resp
}

func TestTestDatabaseConnected(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "workout_planner")

	handler := &DiagnosticsHandler{Store: &fakeDiagnostics{names: []string{"workouts"}}}
	rr, resp := runTestEndpoint(handler)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "running", resp.Backend)
	assert.Equal(t, "connected and working", resp.Database)
	assert.Equal(t, "connected", resp.ConnectionStatus)
	assert.Equal(t, "set", resp.DatabaseURL)
	assert.Equal(t, "set", resp.DatabaseName)
	assert.Equal(t, []string{"workouts"}, resp.Collections)
}

func TestTestDatabaseUnreachableStillReturns200(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_NAME", "")

	handler := &DiagnosticsHandler{Store: &fakeDiagnostics{pingErr: errors.New("server selection timeout")}}
	rr, resp := runTestEndpoint(handler)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "error: server selection timeout", resp.Database)
	assert.Equal(t, "not connected", resp.ConnectionStatus)
	assert.Equal(t, "not set", resp.DatabaseURL)
	assert.Empty(t, resp.Collections)
}

func TestTestDatabaseListErrorIsTruncated(t *testing.T) {
	long := "this error message is deliberately much longer than fifty characters in total"
	handler := &DiagnosticsHandler{Store: &fakeDiagnostics{listErr: errors.New(long)}}

	rr, resp := runTestEndpoint(handler)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "connected but error: "+long[:50], resp.Database)
}

func TestTestDatabaseWithoutStore(t *testing.T) {
	handler := &DiagnosticsHandler{}

	rr, resp := runTestEndpoint(handler)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "not available", resp.Database)
}
