package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Camp struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	Mentors   []primitive.ObjectID `bson:"mentors" json:"mentors"`
	CreatedBy primitive.ObjectID   `bson:"created_by" json:"created_by"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
}

// CampKid is a child enrolled in a camp. Its points are separate from User.Points.
type CampKid struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampID      primitive.ObjectID `bson:"camp_id" json:"camp_id"`
	Nickname    string             `bson:"nickname" json:"nickname"`
	FirstName   string             `bson:"first_name" json:"first_name"`
	LastName    string             `bson:"last_name" json:"last_name"`
	GroupNumber int                `bson:"group_number" json:"group_number"`
	Points      int                `bson:"points" json:"points"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
