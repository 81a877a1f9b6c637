package controllers

import (
	"errors"
	"strconv"

	"coursehub_backend/backend/config"
	"coursehub_backend/backend/models"
	"coursehub_backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPaymentsController(db *gorm.DB, cfg *config.Config) *PaymentsController {
	return &PaymentsController{DB: db, Cfg: cfg}
}

const paymentsPerPage = 20

// GetTransactions lists payments page by page with an optional status
// filter.
func (pc *PaymentsController) GetTransactions(c *fiber.Ctx) error {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	query := pc.DB.Model(&models.Payment{}).Preload("User").Preload("Course")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var payments []models.Payment
	if err := query.Order("created_at DESC").
		Offset((page - 1) * paymentsPerPage).
		Limit(paymentsPerPage).
		Find(&payments).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch transactions")
	}

	data := make([]fiber.Map, 0, len(payments))
	for _, p := range payments {
		data = append(data, paymentToMap(p))
	}

	return utils.Paginate(c, data, total, page, paymentsPerPage, len(data))
}

// ApprovePayment confirms a single pending payment.
func (pc *PaymentsController) ApprovePayment(c *fiber.Ctx) error {
	paymentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid payment ID")
	}

	var payment models.Payment
	if err := pc.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Payment not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if payment.Status != models.PaymentPending {
		return utils.Error(c, fiber.StatusConflict,
			fiber.NewError(fiber.StatusConflict, "Only pending payments can be approved"))
	}

	payment.Status = models.PaymentCompleted
	if err := pc.DB.Save(&payment).Error; err != nil {
		return utils.InternalServerError(c, "Could not approve payment")
	}

	pc.DB.Preload("User").Preload("Course").First(&payment, payment.ID)
	return utils.Success(c, fiber.StatusOK, paymentToMap(payment))
}

// ApproveAllPending flips every pending payment to completed and reports
// how many were affected.
func (pc *PaymentsController) ApproveAllPending(c *fiber.Ctx) error {
	result := pc.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPending).
		Update("status", models.PaymentCompleted)
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not approve pending payments")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"approved": result.RowsAffected,
	})
}

func paymentToMap(p models.Payment) fiber.Map {
	return fiber.Map{
		"id": p.ID,
		"user": fiber.Map{
			"id":        p.UserID,
			"full_name": p.User.FullName,
			"email":     p.User.Email,
		},
		"course": fiber.Map{
			"id":    p.CourseID,
			"title": p.Course.Title,
		},
		"amount":         p.Amount,
		"status":         p.Status,
		"payment_method": p.PaymentMethod,
		"transaction_id": p.TransactionID,
		"enrolled_at":    p.EnrolledAt,
	}
}
