package controllers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"coursehub_backend/backend/config"
	"coursehub_backend/backend/models"
	"coursehub_backend/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

var courseLevels = map[string]bool{
	models.LevelBeginner:     true,
	models.LevelIntermediate: true,
	models.LevelAdvanced:     true,
}

var courseStatuses = map[string]bool{
	models.CourseDraft:     true,
	models.CoursePublished: true,
	models.CourseArchived:  true,
}

// GetCourses lists courses with optional search and status filters.
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	search := c.Query("search")
	status := c.Query("status")

	query := cc.DB.Model(&models.Course{}).Preload("Category")

	if search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, cc.courseToMap(course))
	}

	return utils.Success(c, fiber.StatusOK, result)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Preload("Category").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	lessons := make([]fiber.Map, 0, len(course.Lessons))
	for _, lesson := range course.Lessons {
		lessons = append(lessons, lessonToMap(lesson))
	}

	m := cc.courseToMap(course)
	m["lessons"] = lessons

	return utils.Success(c, fiber.StatusOK, m)
}

// CreateCourse accepts a multipart form so the thumbnail can ride along
// with the course fields.
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	course := models.Course{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Price:       strings.TrimSpace(c.FormValue("price")),
		Level:       c.FormValue("level", models.LevelBeginner),
		Status:      c.FormValue("status", models.CourseDraft),
	}

	if fieldErrors := cc.validateCourseForm(c, &course); len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	if thumbURL, err := cc.saveThumbnail(c); err != nil {
		return utils.InternalServerError(c, "Failed to store thumbnail")
	} else if thumbURL != "" {
		course.ThumbnailURL = thumbURL
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	cc.DB.Preload("Category").First(&course, course.ID)
	return utils.Created(c, cc.courseToMap(course))
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	course.Title = strings.TrimSpace(c.FormValue("title", course.Title))
	course.Description = strings.TrimSpace(c.FormValue("description", course.Description))
	course.Price = strings.TrimSpace(c.FormValue("price", course.Price))
	course.Level = c.FormValue("level", course.Level)
	course.Status = c.FormValue("status", course.Status)

	if fieldErrors := cc.validateCourseForm(c, &course); len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	if thumbURL, err := cc.saveThumbnail(c); err != nil {
		return utils.InternalServerError(c, "Failed to store thumbnail")
	} else if thumbURL != "" {
		course.ThumbnailURL = thumbURL
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	cc.DB.Preload("Category").First(&course, course.ID)
	return utils.Success(c, fiber.StatusOK, cc.courseToMap(course))
}

// DeleteCourse removes a course and its lessons.
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return utils.NoContent(c)
}

type LessonRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description"`
	VideoSource string `json:"video_source" validate:"omitempty,oneof=UPLOAD DRIVE YOUTUBE VIMEO"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration" validate:"gte=0"`
	Position    int    `json:"position" validate:"gte=0"`
	IsPreview   bool   `json:"is_preview"`
}

// AddLesson appends a lesson to a course. A zero position places it at
// the end.
func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validator.New().Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	position := req.Position
	if position == 0 {
		var maxPos int
		cc.DB.Model(&models.Lesson{}).
			Where("course_id = ?", course.ID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos)
		position = maxPos + 1
	}

	videoSource := req.VideoSource
	if videoSource == "" {
		videoSource = models.VideoUpload
	}

	lesson := models.Lesson{
		CourseID:    course.ID,
		Title:       req.Title,
		Description: req.Description,
		VideoSource: videoSource,
		VideoURL:    req.VideoURL,
		Duration:    req.Duration,
		Position:    position,
		IsPreview:   req.IsPreview,
	}
	if err := cc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return utils.Created(c, lessonToMap(lesson))
}

func lessonToMap(l models.Lesson) fiber.Map {
	return fiber.Map{
		"id":           l.ID,
		"course_id":    l.CourseID,
		"title":        l.Title,
		"description":  l.Description,
		"video_source": l.VideoSource,
		"video_url":    l.VideoURL,
		"duration":     l.Duration,
		"position":     l.Position,
		"is_preview":   l.IsPreview,
	}
}

// DeleteLesson removes a lesson and renumbers the remaining ones so
// positions stay 1..n without gaps.
func (cc *CoursesController) DeleteLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := cc.DB.Where("course_id = ?", courseID).First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&lesson).Error; err != nil {
			return err
		}
		return tx.Model(&models.Lesson{}).
			Where("course_id = ? AND position > ?", courseID, lesson.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete lesson")
	}

	return utils.NoContent(c)
}

// Enroll signs the authenticated user up for a course and records the
// pending payment the admin panel later approves.
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if course.Status != models.CoursePublished {
		return utils.BadRequest(c, "Course is not open for enrollment")
	}

	var existing models.Enrollment
	if err := cc.DB.Where("user_id = ? AND course_id = ?", userID, course.ID).
		First(&existing).Error; err == nil {
		return utils.Error(c, fiber.StatusConflict,
			fiber.NewError(fiber.StatusConflict, "Already enrolled in this course"))
	}

	paymentMethod := c.FormValue("payment_method", "card")
	now := time.Now()

	var enrollment models.Enrollment
	var payment models.Payment
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		enrollment = models.Enrollment{
			UserID:     userID,
			CourseID:   course.ID,
			Status:     models.EnrollmentActive,
			EnrolledAt: now,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		payment = models.Payment{
			UserID:        userID,
			CourseID:      course.ID,
			Amount:        course.Price,
			Status:        models.PaymentPending,
			PaymentMethod: paymentMethod,
			TransactionID: uuid.NewString(),
			EnrolledAt:    now,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not enroll")
	}

	return utils.Created(c, fiber.Map{
		"enrollment_id":  enrollment.ID,
		"transaction_id": payment.TransactionID,
		"amount":         payment.Amount,
		"status":         payment.Status,
	})
}

func (cc *CoursesController) validateCourseForm(c *fiber.Ctx, course *models.Course) map[string]string {
	fieldErrors := map[string]string{}

	if course.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if course.Description == "" {
		fieldErrors["description"] = "Description is required"
	}

	if course.Price == "" {
		fieldErrors["price"] = "Price is required"
	} else if price, err := strconv.ParseFloat(course.Price, 64); err != nil || price < 0 {
		fieldErrors["price"] = "Price must be a non-negative number"
	}

	if !courseLevels[course.Level] {
		fieldErrors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED"
	}
	if !courseStatuses[course.Status] {
		fieldErrors["status"] = "Status must be DRAFT, PUBLISHED or ARCHIVED"
	}

	if categoryIDStr := c.FormValue("category_id"); categoryIDStr != "" {
		categoryID, err := strconv.Atoi(categoryIDStr)
		if err != nil {
			fieldErrors["category_id"] = "Invalid category ID"
		} else {
			var category models.Category
			if err := cc.DB.First(&category, categoryID).Error; err != nil {
				fieldErrors["category_id"] = "Category not found"
			} else {
				course.CategoryID = category.ID
			}
		}
	} else if course.CategoryID == 0 {
		fieldErrors["category_id"] = "Category is required"
	}

	return fieldErrors
}

// saveThumbnail stores the uploaded thumbnail, if any, under the upload
// dir and returns its public path. No file in the form is not an error.
func (cc *CoursesController) saveThumbnail(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("thumbnail")
	if err != nil || file == nil {
		return "", nil
	}

	if err := os.MkdirAll(cc.Cfg.UploadDir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(cc.Cfg.UploadDir, filename)); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}

func (cc *CoursesController) courseToMap(course models.Course) fiber.Map {
	var totalLessons int64
	cc.DB.Model(&models.Lesson{}).Where("course_id = ?", course.ID).Count(&totalLessons)

	var totalEnrollments int64
	cc.DB.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&totalEnrollments)

	return fiber.Map{
		"id":                course.ID,
		"title":             course.Title,
		"description":       course.Description,
		"price":             course.Price,
		"level":             course.Level,
		"status":            course.Status,
		"thumbnail_url":     course.ThumbnailURL,
		"total_lessons":     totalLessons,
		"total_enrollments": totalEnrollments,
		"category": fiber.Map{
			"id":   course.CategoryID,
			"name": course.Category.Name,
		},
		"created_at": course.CreatedAt,
	}
}
