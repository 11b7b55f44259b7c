package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is one profile record in the users collection.
type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username       string              `bson:"username" json:"username"`
	FirstName      string              `bson:"first_name" json:"first_name"`
	LastName       string              `bson:"last_name" json:"last_name"`
	Nickname       string              `bson:"nickname" json:"nickname"`
	Email          string              `bson:"email,omitempty" json:"email,omitempty"`
	StudentID      string              `bson:"student_id,omitempty" json:"student_id,omitempty"`
	HashedPassword string              `bson:"hashed_password" json:"-"`
	Role           string              `bson:"role" json:"role"`
	Points         int                 `bson:"points" json:"points"`
	CampMentor     bool                `bson:"camp_mentor,omitempty" json:"camp_mentor,omitempty"`
	CampID         *primitive.ObjectID `bson:"camp_id,omitempty" json:"camp_id,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	LastLoginAt    time.Time           `bson:"last_login_at" json:"last_login_at"`
}

// DisplayName prefers the nickname and falls back to the full name.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the stored role is admin.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MentorsCamp reports whether the user is flagged as mentor of the given camp.
func (u *User) MentorsCamp(campID primitive.ObjectID) bool {
	return u.CampMentor && u.CampID != nil && *u.CampID == campID
}

// PublicUser is the roster view of a user handed to admin screens.
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Nickname  string             `json:"nickname"`
	Role      string             `json:"role"`
	Points    int                `json:"points"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Nickname:  u.Nickname,
		Role:      u.Role,
		Points:    u.Points,
	}
}
