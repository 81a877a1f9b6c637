package controllers

import (
	"errors"
	"strconv"

	"coursehub_backend/backend/config"
	"coursehub_backend/backend/models"
	"coursehub_backend/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoriesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCategoriesController(db *gorm.DB, cfg *config.Config) *CategoriesController {
	return &CategoriesController{DB: db, Cfg: cfg}
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

// GetCategories returns every category with its course count. An empty
// table yields an empty data array, not an error.
func (cc *CategoriesController) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := cc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch categories")
	}

	result := make([]fiber.Map, 0, len(categories))
	for _, category := range categories {
		var coursesCount int64
		cc.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&coursesCount)

		result = append(result, fiber.Map{
			"id":            category.ID,
			"name":          category.Name,
			"slug":          category.Slug,
			"description":   category.Description,
			"courses_count": coursesCount,
			"created_at":    category.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /categories [post]
func (cc *CategoriesController) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := validator.New().Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	// Derive the slug from the name when none was supplied.
	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	} else {
		slug = utils.GenerateSlug(slug)
	}
	if slug == "" {
		return utils.BadRequest(c, "Name does not produce a valid slug")
	}

	slug, err := utils.EnsureUniqueSlug(cc.DB, slug, "categories", "slug")
	if err != nil {
		return utils.InternalServerError(c, "Failed to check slug uniqueness")
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		return utils.Error(c, fiber.StatusConflict,
			fiber.NewError(fiber.StatusConflict, "Category already exists"))
	}

	return utils.Created(c, fiber.Map{
		"id":            category.ID,
		"name":          category.Name,
		"slug":          category.Slug,
		"description":   category.Description,
		"courses_count": 0,
		"created_at":    category.CreatedAt,
	})
}

func (cc *CategoriesController) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := validator.New().Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	category.Name = req.Name
	category.Description = req.Description
	if req.Slug != "" {
		slug := utils.GenerateSlug(req.Slug)
		if slug == "" {
			return utils.BadRequest(c, "Slug does not contain any url-safe characters")
		}
		if slug != category.Slug {
			slug, err = utils.EnsureUniqueSlug(cc.DB, slug, "categories", "slug")
			if err != nil {
				return utils.InternalServerError(c, "Failed to check slug uniqueness")
			}
			category.Slug = slug
		}
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not update category")
	}

	var coursesCount int64
	cc.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&coursesCount)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":            category.ID,
		"name":          category.Name,
		"slug":          category.Slug,
		"description":   category.Description,
		"courses_count": coursesCount,
		"created_at":    category.CreatedAt,
	})
}

func (cc *CategoriesController) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var coursesCount int64
	cc.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&coursesCount)
	if coursesCount > 0 {
		return utils.Error(c, fiber.StatusConflict,
			fiber.NewError(fiber.StatusConflict, "Category still has courses assigned"))
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete category")
	}

	return utils.NoContent(c)
}
