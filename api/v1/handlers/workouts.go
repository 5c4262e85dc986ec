package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/workout-planner/backend/api/v1/database"
	"github.com/workout-planner/backend/api/v1/models"
)

// WorkoutStore is the persistence surface the handlers depend on.
// *database.Store implements it; tests substitute a double.
type WorkoutStore interface {
	CreateWorkout(ctx context.Context, workout *models.Workout) error
	GetWorkout(ctx context.Context, id primitive.ObjectID) (*models.Workout, error)
	ListWorkouts(ctx context.Context, day string) ([]models.Workout, error)
	UpdateWorkout(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutHandler holds the store connection
type WorkoutHandler struct {
	Store WorkoutStore
}

// CreateWorkoutRequest is the payload for POST /api/workouts. Required
// fields are pointers so a missing key can be told apart from a zero value.
type CreateWorkoutRequest struct {
	Title     *string `json:"title"`
	Sets      *int    `json:"sets"`
	Reps      *int    `json:"reps"`
	Day       *string `json:"day"`
	Notes     *string `json:"notes"`
	Completed *bool   `json:"completed"`
}

// Validate ensures request correctness.
func (r *CreateWorkoutRequest) Validate() error {
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		return errors.New("title is required")
	}
	if r.Sets == nil {
		return errors.New("sets is required")
	}
	if r.Reps == nil {
		return errors.New("reps is required")
	}
	if r.Day == nil || strings.TrimSpace(*r.Day) == "" {
		return errors.New("day is required")
	}
	return nil
}

// ToWorkout converts a validated request into the storage model.
func (r *CreateWorkoutRequest) ToWorkout() *models.Workout {
	return &models.Workout{
		Title:     *r.Title,
		Sets:      *r.Sets,
		Reps:      *r.Reps,
		Day:       *r.Day,
		Notes:     r.Notes,
		Completed: r.Completed,
	}
}

// UpdateWorkoutRequest is the payload for PATCH /api/workouts/{id}. It keeps
// the raw fields so that an omitted key and an explicit null stay distinct.
type UpdateWorkoutRequest struct {
	fields map[string]json.RawMessage
}

func (r *UpdateWorkoutRequest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.fields)
}

// SetDocument builds the partial update from only the keys explicitly present
// in the payload. Explicit nulls are kept and clear the field; unknown keys
// are ignored.
func (r *UpdateWorkoutRequest) SetDocument() (bson.M, error) {
	set := bson.M{}

	for key, raw := range r.fields {
		switch key {
		case "title", "day", "notes":
			var v *string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("%s must be a string", key)
			}
			set[key] = v
		case "sets", "reps":
			var v *int
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("%s must be an integer", key)
			}
			set[key] = v
		case "completed":
			var v *bool
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("%s must be a boolean", key)
			}
			set[key] = v
		}
	}

	return set, nil
}

// CreateWorkout handles POST /api/workouts
func (h *WorkoutHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout := req.ToWorkout()
	if err := h.Store.CreateWorkout(r.Context(), workout); err != nil {
		sendStoreError(w, err)
		return
	}

	// Return the record as the store persisted it, not the request echo
	created, err := h.Store.GetWorkout(r.Context(), workout.ID)
	if err != nil {
		sendStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetWorkouts handles GET /api/workouts with an optional exact-match day filter
func (h *WorkoutHandler) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	day := r.URL.Query().Get("day")

	workouts, err := h.Store.ListWorkouts(r.Context(), day)
	if err != nil {
		sendStoreError(w, err)
		return
	}

	if workouts == nil {
		workouts = []models.Workout{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(workouts)
}

// UpdateWorkout handles PATCH /api/workouts/{id}
func (h *WorkoutHandler) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := parseWorkoutID(r)
	if err != nil {
		SendError(w, "Invalid workout ID", http.StatusBadRequest)
		return
	}

	var req UpdateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	set, err := req.SetDocument()
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(set) == 0 {
		SendError(w, "No fields to update", http.StatusBadRequest)
		return
	}

	updated, err := h.Store.UpdateWorkout(r.Context(), id, set)
	if err != nil {
		sendStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(updated)
}

// DeleteWorkout handles DELETE /api/workouts/{id}. A 204 carries no body.
func (h *WorkoutHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := parseWorkoutID(r)
	if err != nil {
		SendError(w, "Invalid workout ID", http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteWorkout(r.Context(), id); err != nil {
		sendStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseWorkoutID converts the path identifier into the storage-native form.
func parseWorkoutID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
}

// sendStoreError maps persistence errors onto fixed status codes without
// leaking driver error text to clients.
func sendStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNoWorkoutError):
		SendError(w, "Workout not found", http.StatusNotFound)
	case errors.Is(err, database.ErrDatabaseError):
		SendError(w, "Unable to process request at this time", http.StatusInternalServerError)
	default:
		SendError(w, "An unexpected error occurred", http.StatusInternalServerError)
	}
}
