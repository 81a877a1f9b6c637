package controllers

import (
	"errors"
	"strconv"
	"strings"

	"coursehub_backend/backend/config"
	"coursehub_backend/backend/models"
	"coursehub_backend/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UsersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg}
}

const studentsPerPage = 20

// GetStudents lists student accounts with optional name/email search.
func (uc *UsersController) GetStudents(c *fiber.Ctx) error {
	search := c.Query("search")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	query := uc.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent)
	if search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", needle, needle)
	}

	var total int64
	query.Count(&total)

	var students []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * studentsPerPage).
		Limit(studentsPerPage).
		Find(&students).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch students")
	}

	data := make([]fiber.Map, 0, len(students))
	for _, u := range students {
		data = append(data, userToMap(u))
	}

	return utils.Paginate(c, data, total, page, studentsPerPage, len(data))
}

// GetAdmins lists every ADMIN and SUPER_ADMIN account.
func (uc *UsersController) GetAdmins(c *fiber.Ctx) error {
	var admins []models.User
	if err := uc.DB.
		Where("role IN ?", []string{models.RoleAdmin, models.RoleSuperAdmin}).
		Order("created_at ASC").
		Find(&admins).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch admins")
	}

	data := make([]fiber.Map, 0, len(admins))
	for _, u := range admins {
		data = append(data, userToMap(u))
	}

	return utils.Success(c, fiber.StatusOK, data)
}

type PromoteRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN SUPER_ADMIN"`
}

// PromoteUser raises a student to ADMIN or SUPER_ADMIN.
func (uc *UsersController) PromoteUser(c *fiber.Ctx) error {
	user, errResp := uc.findUser(c)
	if user == nil {
		return errResp
	}

	var req PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validator.New().Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if user.Role != models.RoleStudent {
		return utils.Error(c, fiber.StatusConflict,
			fiber.NewError(fiber.StatusConflict, "Only students can be promoted"))
	}

	user.Role = req.Role
	if err := uc.DB.Save(user).Error; err != nil {
		return utils.InternalServerError(c, "Could not promote user")
	}

	return utils.Success(c, fiber.StatusOK, userToMap(*user))
}

// DemoteUser turns an admin back into a student. Super admins are never
// demotable through the API.
func (uc *UsersController) DemoteUser(c *fiber.Ctx) error {
	user, errResp := uc.findUser(c)
	if user == nil {
		return errResp
	}

	if user.Role == models.RoleSuperAdmin {
		return utils.Forbidden(c, "Super admins cannot be demoted")
	}
	if user.Role != models.RoleAdmin {
		return utils.Error(c, fiber.StatusConflict,
			fiber.NewError(fiber.StatusConflict, "Only admins can be demoted"))
	}

	user.Role = models.RoleStudent
	if err := uc.DB.Save(user).Error; err != nil {
		return utils.InternalServerError(c, "Could not demote user")
	}

	return utils.Success(c, fiber.StatusOK, userToMap(*user))
}

// DeleteUser removes an account entirely. Reserved for super admins;
// super admin accounts themselves cannot be deleted.
func (uc *UsersController) DeleteUser(c *fiber.Ctx) error {
	user, errResp := uc.findUser(c)
	if user == nil {
		return errResp
	}

	if user.Role == models.RoleSuperAdmin {
		return utils.Forbidden(c, "Super admins cannot be deleted")
	}

	if err := uc.DB.Delete(user).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}

	return utils.NoContent(c)
}

func (uc *UsersController) findUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "User not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}

	return &user, nil
}

func userToMap(u models.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"full_name":  u.FullName,
		"email":      u.Email,
		"role":       u.Role,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
	}
}
