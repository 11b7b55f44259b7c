package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Completion records that a user claimed an activity's reward.
type Completion struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	ActivityID   primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	PointsEarned int                `bson:"points_earned" json:"points_earned"`
	CompletedAt  time.Time          `bson:"completed_at" json:"completed_at"`
}

// CompletionEntry is a history row with the activity name resolved.
type CompletionEntry struct {
	Completion
	ActivityName string `json:"activity_name"`
}
