package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"
)

// Diagnostics is the narrow introspection surface the /test endpoint needs
// from the persistence layer.
type Diagnostics interface {
	Ping(ctx context.Context) error
	ListCollections(ctx context.Context, limit int) ([]string, error)
}

// DiagnosticsHandler reports database availability without ever failing the
// request itself.
type DiagnosticsHandler struct {
	Store Diagnostics
}

type testResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// TestDatabase handles GET /test
func (h *DiagnosticsHandler) TestDatabase(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	response := testResponse{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      envStatus("DATABASE_URL"),
		DatabaseName:     envStatus("DATABASE_NAME"),
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}

	if h.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.Store.Ping(ctx); err != nil {
			response.Database = "error: " + truncate(err.Error(), 50)
		} else {
			response.ConnectionStatus = "connected"
			names, err := h.Store.ListCollections(ctx, 10)
			if err != nil {
				response.Database = "connected but error: " + truncate(err.Error(), 50)
			} else {
				response.Database = "connected and working"
				response.Collections = names
			}
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func envStatus(key string) string {
	if os.Getenv(key) == "" {
		return "not set"
	}
	return "set"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
