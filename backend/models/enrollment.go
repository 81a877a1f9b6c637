package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentCancelled = "CANCELLED"
)

// Enrollment is what the admin panel lists as an "order": one user
// taking one course. CompletedAt is set iff Status is COMPLETED.
type Enrollment struct {
	gorm.Model
	UserID             uint
	User               User
	CourseID           uint
	Course             Course
	Status             string `gorm:"default:ACTIVE"` // ACTIVE, COMPLETED, CANCELLED
	ProgressPercentage int    `gorm:"default:0"`      // 0..100
	CompletedLessons   int    `gorm:"default:0"`
	EnrolledAt         time.Time
	CompletedAt        *time.Time
}
