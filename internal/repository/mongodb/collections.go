package mongodb

import "time"

// Collection names
const (
	UsersCollection      = "users"
	AttendanceCollection = "attendance"
)

type userDocument struct {
	UserID     string    `bson:"user_id"`
	Name       string    `bson:"name"`
	Department *string   `bson:"department,omitempty"`
	ClassCode  string    `bson:"class_code"`
	IsActive   bool      `bson:"is_active"`
	CreatedAt  time.Time `bson:"created_at"`
}

type attendanceDocument struct {
	UserID    string `bson:"user_id"`
	Name      string `bson:"name"`
	Date      string `bson:"date"`
	Time      string `bson:"time"`
	ClassCode string `bson:"class_code"`
}
