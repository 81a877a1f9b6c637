package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
)

type Payment struct {
	gorm.Model
	UserID        uint
	User          User
	CourseID      uint
	Course        Course
	Amount        string `gorm:"default:0"`       // decimal string
	Status        string `gorm:"default:pending"` // completed, pending, failed
	PaymentMethod string
	TransactionID string `gorm:"unique;not null"`
	EnrolledAt    time.Time
}
