package routes

import (
	"coursehub_backend/backend/config"
	"coursehub_backend/backend/controllers"
	"coursehub_backend/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg)
	superAdminMiddleware := middleware.SuperAdminMiddleware(cfg)

	app.Get("/api/user/profile", authMiddleware, authController.GetProfile)

	// Categories
	categoriesController := controllers.NewCategoriesController(db, cfg)
	categories := app.Group("/api/categories", authMiddleware)
	categories.Get("/", categoriesController.GetCategories)
	categories.Post("/", adminMiddleware, categoriesController.CreateCategory)
	categories.Put("/:id", adminMiddleware, categoriesController.UpdateCategory)
	categories.Delete("/:id", adminMiddleware, categoriesController.DeleteCategory)

	// Courses
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/enroll", coursesController.Enroll)
	courses.Post("/", adminMiddleware, coursesController.CreateCourse)
	courses.Put("/:id", adminMiddleware, coursesController.UpdateCourse)
	courses.Delete("/:id", adminMiddleware, coursesController.DeleteCourse)
	courses.Post("/:id/lessons", adminMiddleware, coursesController.AddLesson)
	courses.Delete("/:id/lessons/:lessonId", adminMiddleware, coursesController.DeleteLesson)

	// Orders
	ordersController := controllers.NewOrdersController(db, cfg)
	orders := app.Group("/api/orders", authMiddleware, adminMiddleware)
	orders.Get("/", ordersController.GetOrders)
	orders.Put("/:id", ordersController.UpdateOrder)

	// Payments
	paymentsController := controllers.NewPaymentsController(db, cfg)
	payments := app.Group("/api/payments", authMiddleware, adminMiddleware)
	payments.Get("/transactions", paymentsController.GetTransactions)
	payments.Post("/approve-all", paymentsController.ApproveAllPending)
	payments.Post("/:id/approve", paymentsController.ApprovePayment)

	// Users
	usersController := controllers.NewUsersController(db, cfg)
	users := app.Group("/api/users", authMiddleware, adminMiddleware)
	users.Get("/students", usersController.GetStudents)
	users.Get("/admins", usersController.GetAdmins)
	users.Post("/:id/promote", usersController.PromoteUser)
	users.Post("/:id/demote", usersController.DemoteUser)
	users.Delete("/:id", superAdminMiddleware, usersController.DeleteUser)

	// Dashboard
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard/stats", authMiddleware, adminMiddleware, dashboardController.GetStats)

	// Uploaded thumbnails
	app.Static("/uploads", cfg.UploadDir)
}
