package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workout-planner/backend/api/v1/models"
)

const WorkoutCollection = "workouts"

var ErrNoWorkoutError = errors.New("workout does not exist")

// CreateWorkout inserts the workout and populates its ID from the store.
func (s *Store) CreateWorkout(ctx context.Context, workout *models.Workout) error {
	id, err := s.CreateDocument(ctx, WorkoutCollection, workout)
	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}

	workout.ID = id
	return nil
}

// GetWorkout fetches a single workout by its identifier.
func (s *Store) GetWorkout(ctx context.Context, id primitive.ObjectID) (*models.Workout, error) {
	var workout models.Workout
	err := s.Collection(WorkoutCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoWorkoutError
		}
		return nil, fmt.Errorf("%w: failed to get workout", ErrDatabaseError)
	}

	return &workout, nil
}

// ListWorkouts returns every workout, or only those for the given day when
// day is non-empty. The match is exact.
func (s *Store) ListWorkouts(ctx context.Context, day string) ([]models.Workout, error) {
	filter := bson.M{}
	if day != "" {
		filter["day"] = day
	}

	workouts, err := GetDocuments[models.Workout](ctx, s, WorkoutCollection, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	return workouts, nil
}

// UpdateWorkout applies the given $set document to one workout and stamps
// updated_at from the database server clock. Returns the record as it stands
// after the update.
func (s *Store) UpdateWorkout(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Workout, error) {
	update := bson.M{
		"$set":         set,
		"$currentDate": bson.M{"updated_at": true},
	}

	res, err := s.Collection(WorkoutCollection).UpdateByID(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to update workout", ErrDatabaseError)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNoWorkoutError
	}

	return s.GetWorkout(ctx, id)
}

// DeleteWorkout removes one workout by its identifier.
func (s *Store) DeleteWorkout(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.Collection(WorkoutCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: failed to delete workout", ErrDatabaseError)
	}
	if res.DeletedCount == 0 {
		return ErrNoWorkoutError
	}

	return nil
}
