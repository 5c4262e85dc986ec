package handlers

import (
	"encoding/json"
	"net/http"
)

func ApiInfoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"message": "Workout Planner API v1",
		"endpoints": map[string]string{
			"workouts": "/api/workouts",
			"health":   "/health",
			"test":     "/test",
		},
	}
	json.NewEncoder(w).Encode(response)
}
