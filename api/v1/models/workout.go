package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a single planned workout, keyed by the Mongo-assigned ObjectID.
// The ID is exposed as a hex string on the wire.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Sets      int                `bson:"sets" json:"sets"`
	Reps      int                `bson:"reps" json:"reps"`
	Day       string             `bson:"day" json:"day"`
	Notes     *string            `bson:"notes,omitempty" json:"notes,omitempty"`       // could be empty
	Completed *bool              `bson:"completed,omitempty" json:"completed,omitempty"` // could be empty
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
