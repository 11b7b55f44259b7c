package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Session is the identity established at the auth boundary. It is a
// convenience copy; authorization decisions re-read the stored profile.
type Session struct {
	UserID      primitive.ObjectID
	DisplayName string
	Role        string
}
