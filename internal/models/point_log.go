package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MethodQRScan = "qr_scan"
	MethodManual = "manual"
)

// PointLog is an append-only audit record of an admin point award.
type PointLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID   primitive.ObjectID `bson:"student_id" json:"student_id"`
	StudentName string             `bson:"student_name" json:"student_name"`
	Points      int                `bson:"points" json:"points"`
	Method      string             `bson:"method" json:"method"`
	AdminID     primitive.ObjectID `bson:"admin_id" json:"admin_id"`
	AdminName   string             `bson:"admin_name" json:"admin_name"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
