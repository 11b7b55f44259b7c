package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a point-valued task defined by an administrator.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Points      int                `bson:"points" json:"points"`
	Date        string             `bson:"date,omitempty" json:"date,omitempty"` // YYYY-MM-DD
	Time        string             `bson:"time,omitempty" json:"time,omitempty"` // HH:MM
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ActivityStatus is an activity as seen by one student.
type ActivityStatus struct {
	Activity
	Completed bool `json:"completed"`
}
