package models

import "gorm.io/gorm"

const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"

	CourseDraft     = "DRAFT"
	CoursePublished = "PUBLISHED"
	CourseArchived  = "ARCHIVED"
)

type Course struct {
	gorm.Model
	Title        string `gorm:"not null"`
	Description  string
	Price        string `gorm:"default:0"` // decimal string, e.g. "49.99"
	Level        string `gorm:"default:BEGINNER"` // BEGINNER, INTERMEDIATE, ADVANCED
	Status       string `gorm:"default:DRAFT"`    // DRAFT, PUBLISHED, ARCHIVED
	CategoryID   uint
	Category     Category
	ThumbnailURL string
	Lessons      []Lesson `gorm:"constraint:OnDelete:CASCADE"`
}

const (
	VideoUpload  = "UPLOAD"
	VideoDrive   = "DRIVE"
	VideoYouTube = "YOUTUBE"
	VideoVimeo   = "VIMEO"
)

type Lesson struct {
	gorm.Model
	CourseID    uint
	Title       string `gorm:"not null"`
	Description string
	VideoSource string `gorm:"default:UPLOAD"` // UPLOAD, DRIVE, YOUTUBE, VIMEO
	VideoURL    string
	Duration    int  // minutes
	Position    int  // 1-based, renumbered when a lesson is removed
	IsPreview   bool `gorm:"default:false"`
}
