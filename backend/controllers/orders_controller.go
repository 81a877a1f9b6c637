package controllers

import (
	"errors"
	"strconv"
	"time"

	"coursehub_backend/backend/config"
	"coursehub_backend/backend/models"
	"coursehub_backend/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrdersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewOrdersController(db *gorm.DB, cfg *config.Config) *OrdersController {
	return &OrdersController{DB: db, Cfg: cfg}
}

const ordersPerPage = 20

// GetOrders lists enrollments page by page, optionally narrowed to one
// status. Filtering happens server-side; changing the filter means a new
// request.
func (oc *OrdersController) GetOrders(c *fiber.Ctx) error {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	query := oc.DB.Model(&models.Enrollment{}).Preload("User").Preload("Course")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var enrollments []models.Enrollment
	if err := query.Order("enrolled_at DESC").
		Offset((page - 1) * ordersPerPage).
		Limit(ordersPerPage).
		Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch orders")
	}

	data := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		data = append(data, orderToMap(e))
	}

	return utils.Paginate(c, data, total, page, ordersPerPage, len(data))
}

type UpdateOrderRequest struct {
	Status             string `json:"status" validate:"required,oneof=ACTIVE COMPLETED CANCELLED"`
	ProgressPercentage *int   `json:"progress_percentage" validate:"omitempty,gte=0,lte=100"`
	CompletedLessons   *int   `json:"completed_lessons" validate:"omitempty,gte=0"`
}

// UpdateOrder changes an enrollment's status. completed_at is set when
// the status becomes COMPLETED and cleared otherwise.
func (oc *OrdersController) UpdateOrder(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid order ID")
	}

	var enrollment models.Enrollment
	if err := oc.DB.First(&enrollment, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Order not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validator.New().Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	enrollment.Status = req.Status
	if req.ProgressPercentage != nil {
		enrollment.ProgressPercentage = *req.ProgressPercentage
	}
	if req.CompletedLessons != nil {
		enrollment.CompletedLessons = *req.CompletedLessons
	}

	if enrollment.Status == models.EnrollmentCompleted {
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
		enrollment.ProgressPercentage = 100
	} else {
		enrollment.CompletedAt = nil
	}

	if err := oc.DB.Save(&enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not update order")
	}

	oc.DB.Preload("User").Preload("Course").First(&enrollment, enrollment.ID)
	return utils.Success(c, fiber.StatusOK, orderToMap(enrollment))
}

func orderToMap(e models.Enrollment) fiber.Map {
	return fiber.Map{
		"id": e.ID,
		"user": fiber.Map{
			"id":        e.UserID,
			"full_name": e.User.FullName,
			"email":     e.User.Email,
		},
		"course": fiber.Map{
			"id":    e.CourseID,
			"title": e.Course.Title,
		},
		"status":              e.Status,
		"progress_percentage": e.ProgressPercentage,
		"completed_lessons":   e.CompletedLessons,
		"enrolled_at":         e.EnrolledAt,
		"completed_at":        e.CompletedAt,
	}
}
