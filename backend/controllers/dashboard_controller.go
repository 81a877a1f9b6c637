package controllers

import (
	"time"

	"coursehub_backend/backend/config"
	"coursehub_backend/backend/models"
	"coursehub_backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// GetStats builds the overview snapshot: totals, 30-day deltas, top
// courses by enrollment and the most recent enrollments. Revenue counts
// completed payments only.
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	var totalStudents, totalCourses, totalEnrollments, pendingPayments int64

	dc.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&totalStudents)
	dc.DB.Model(&models.Course{}).Count(&totalCourses)
	dc.DB.Model(&models.Enrollment{}).Count(&totalEnrollments)
	dc.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentPending).Count(&pendingPayments)

	var completedPayments []models.Payment
	if err := dc.DB.Where("status = ?", models.PaymentCompleted).
		Find(&completedPayments).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch payments")
	}

	now := time.Now()
	monthAgo := now.AddDate(0, 0, -30)
	twoMonthsAgo := now.AddDate(0, 0, -60)

	var totalRevenue, currentRevenue, previousRevenue float64
	for _, p := range completedPayments {
		amount := utils.ParseAmount(p.Amount)
		totalRevenue += amount
		if p.CreatedAt.After(monthAgo) {
			currentRevenue += amount
		} else if p.CreatedAt.After(twoMonthsAgo) {
			previousRevenue += amount
		}
	}

	var currentStudents, previousStudents int64
	dc.DB.Model(&models.User{}).
		Where("role = ? AND created_at > ?", models.RoleStudent, monthAgo).
		Count(&currentStudents)
	dc.DB.Model(&models.User{}).
		Where("role = ? AND created_at BETWEEN ? AND ?", models.RoleStudent, twoMonthsAgo, monthAgo).
		Count(&previousStudents)

	var currentEnrollments, previousEnrollments int64
	dc.DB.Model(&models.Enrollment{}).
		Where("enrolled_at > ?", monthAgo).
		Count(&currentEnrollments)
	dc.DB.Model(&models.Enrollment{}).
		Where("enrolled_at BETWEEN ? AND ?", twoMonthsAgo, monthAgo).
		Count(&previousEnrollments)

	topCourses := dc.topCourses(5)
	recentEnrollments := dc.recentEnrollments(5)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"total_students":     totalStudents,
		"total_courses":      totalCourses,
		"total_enrollments":  totalEnrollments,
		"total_revenue":      totalRevenue,
		"pending_payments":   pendingPayments,
		"students_delta":     percentageDelta(float64(currentStudents), float64(previousStudents)),
		"enrollments_delta":  percentageDelta(float64(currentEnrollments), float64(previousEnrollments)),
		"revenue_delta":      percentageDelta(currentRevenue, previousRevenue),
		"top_courses":        topCourses,
		"recent_enrollments": recentEnrollments,
	})
}

// percentageDelta compares the last 30 days to the 30 before. A zero
// baseline reports 100% growth when anything happened at all.
func percentageDelta(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

func (dc *DashboardController) topCourses(limit int) []fiber.Map {
	var rows []struct {
		ID          uint
		Title       string
		Price       string
		Enrollments int64
	}

	dc.DB.Raw(`
		SELECT c.id, c.title, c.price, COUNT(e.id) AS enrollments
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id AND e.deleted_at IS NULL
		WHERE c.deleted_at IS NULL
		GROUP BY c.id, c.title, c.price
		ORDER BY enrollments DESC, c.id ASC
		LIMIT ?
	`, limit).Scan(&rows)

	result := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		result = append(result, fiber.Map{
			"id":          row.ID,
			"title":       row.Title,
			"price":       row.Price,
			"enrollments": row.Enrollments,
		})
	}
	return result
}

func (dc *DashboardController) recentEnrollments(limit int) []fiber.Map {
	var enrollments []models.Enrollment
	dc.DB.Preload("User").Preload("Course").
		Order("enrolled_at DESC").
		Limit(limit).
		Find(&enrollments)

	result := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		result = append(result, fiber.Map{
			"id":          e.ID,
			"user_name":   e.User.FullName,
			"course":      e.Course.Title,
			"status":      e.Status,
			"enrolled_at": e.EnrolledAt,
		})
	}
	return result
}
