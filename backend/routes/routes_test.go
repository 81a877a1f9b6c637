package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"coursehub_backend/backend/config"
	"coursehub_backend/backend/models"
	"coursehub_backend/backend/routes"
	"coursehub_backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	app          *fiber.App
	db           *gorm.DB
	cfg          *config.Config
	adminToken   string
	studentToken string
	studentID    uint
)

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func setup() {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
		UploadDir:  os.TempDir(),
	}

	var err error
	db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	admin := models.User{
		FullName:     "Ada Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	db.Create(&admin)
	adminToken, _ = utils.GenerateJWTToken(admin.ID, admin.Role, cfg)

	student := models.User{
		FullName:     "Sam Student",
		Email:        "sam@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}
	db.Create(&student)
	studentID = student.ID
	studentToken, _ = utils.GenerateJWTToken(student.ID, student.Role, cfg)
}

func doJSON(t *testing.T, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func doMultipart(t *testing.T, method, path, token string, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func dataOf(t *testing.T, resp *http.Response) interface{} {
	return decodeBody(t, resp)["data"]
}

func TestAuth(t *testing.T) {
	t.Run("RegisterCreatesStudent", func(t *testing.T) {
		resp := doJSON(t, "POST", "/api/auth/register", "", map[string]string{
			"full_name": "New User",
			"email":     "new@example.com",
			"password":  "verysecret1",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["token"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, models.RoleStudent, user["role"])
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		resp := doJSON(t, "POST", "/api/auth/login", "", map[string]string{
			"email":    "admin@example.com",
			"password": "wrong",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("LoginReturnsToken", func(t *testing.T) {
		resp := doJSON(t, "POST", "/api/auth/login", "", map[string]string{
			"email":    "admin@example.com",
			"password": "password123",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, decodeBody(t, resp)["token"])
	})

	t.Run("MissingTokenIs401", func(t *testing.T) {
		resp := doJSON(t, "GET", "/api/categories", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("StudentCannotReachAdminRoutes", func(t *testing.T) {
		resp := doJSON(t, "GET", "/api/orders", studentToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestCategories(t *testing.T) {
	t.Run("EmptyListIsNotAnError", func(t *testing.T) {
		resp := doJSON(t, "GET", "/api/categories", studentToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["data"], 0)
	})

	t.Run("BlankSlugIsDerivedFromName", func(t *testing.T) {
		resp := doJSON(t, "POST", "/api/categories", adminToken, map[string]string{
			"name":        "Web Dev",
			"description": "Frontend and backend",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		category := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, "web-dev", category["slug"])
		assert.Equal(t, float64(0), category["courses_count"])
	})

	t.Run("CollidingSlugGetsSuffix", func(t *testing.T) {
		resp := doJSON(t, "POST", "/api/categories", adminToken, map[string]string{
			"name": "Web! Dev!",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		category := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, "web-dev-2", category["slug"])
	})

	t.Run("NonLatinNameYieldsASCIISlug", func(t *testing.T) {
		resp := doJSON(t, "POST", "/api/categories", adminToken, map[string]string{
			"name": "Курсы Go",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		category := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, "go", category["slug"])
	})

	t.Run("NameWithNoASCIIIsRejected", func(t *testing.T) {
		resp := doJSON(t, "POST", "/api/categories", adminToken, map[string]string{
			"name": "Программирование",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UpdateKeepsSlugWhenOmitted", func(t *testing.T) {
		created := dataOf(t, doJSON(t, "POST", "/api/categories", adminToken, map[string]string{
			"name": "Databases",
		})).(map[string]interface{})
		id := uint(created["id"].(float64))

		resp := doJSON(t, "PUT", fmt.Sprintf("/api/categories/%d", id), adminToken, map[string]string{
			"name":        "Databases & Storage",
			"description": "Everything persistent",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		category := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, "Databases & Storage", category["name"])
		assert.Equal(t, "databases", category["slug"])
	})

	t.Run("DeleteRemovesCategory", func(t *testing.T) {
		created := dataOf(t, doJSON(t, "POST", "/api/categories", adminToken, map[string]string{
			"name": "Temporary",
		})).(map[string]interface{})
		id := uint(created["id"].(float64))

		resp := doJSON(t, "DELETE", fmt.Sprintf("/api/categories/%d", id), adminToken, nil)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, "DELETE", fmt.Sprintf("/api/categories/%d", id), adminToken, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("StudentCannotCreate", func(t *testing.T) {
		resp := doJSON(t, "POST", "/api/categories", studentToken, map[string]string{
			"name": "Nope",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func createCategory(t *testing.T, name string) uint {
	t.Helper()
	created := dataOf(t, doJSON(t, "POST", "/api/categories", adminToken, map[string]string{
		"name": name,
	})).(map[string]interface{})
	return uint(created["id"].(float64))
}

func createCourse(t *testing.T, title, price, status string, categoryID uint) uint {
	t.Helper()
	resp := doMultipart(t, "POST", "/api/courses", adminToken, map[string]string{
		"title":       title,
		"description": "About " + title,
		"price":       price,
		"level":       models.LevelBeginner,
		"status":      status,
		"category_id": fmt.Sprint(categoryID),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	course := dataOf(t, resp).(map[string]interface{})
	return uint(course["id"].(float64))
}

func TestCourses(t *testing.T) {
	categoryID := createCategory(t, "Courses Fixture")

	t.Run("MissingRequiredFieldsBlockCreation", func(t *testing.T) {
		resp := doMultipart(t, "POST", "/api/courses", adminToken, map[string]string{
			"price": "10",
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeBody(t, resp)
		details := body["details"].(map[string]interface{})
		assert.Contains(t, details, "title")
		assert.Contains(t, details, "description")
		assert.Contains(t, details, "category_id")
	})

	t.Run("NegativePriceIsRejected", func(t *testing.T) {
		resp := doMultipart(t, "POST", "/api/courses", adminToken, map[string]string{
			"title":       "Bad Price",
			"description": "x",
			"price":       "-5",
			"category_id": fmt.Sprint(categoryID),
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("CreateAndFetch", func(t *testing.T) {
		id := createCourse(t, "Intro to Go", "49.99", models.CoursePublished, categoryID)

		resp := doJSON(t, "GET", fmt.Sprintf("/api/courses/%d", id), studentToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		course := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, "Intro to Go", course["title"])
		assert.Equal(t, "49.99", course["price"])
		category := course["category"].(map[string]interface{})
		assert.Equal(t, "Courses Fixture", category["name"])
	})

	t.Run("LessonsAppendAndRenumber", func(t *testing.T) {
		id := createCourse(t, "Lesson Course", "10", models.CourseDraft, categoryID)

		lessonIDs := make([]uint, 0, 3)
		for i, title := range []string{"First", "Second", "Third"} {
			resp := doJSON(t, "POST", fmt.Sprintf("/api/courses/%d/lessons", id), adminToken, map[string]interface{}{
				"title":        title,
				"video_source": "YOUTUBE",
				"video_url":    "https://youtu.be/x",
				"duration":     5 + i,
			})
			require.Equal(t, fiber.StatusCreated, resp.StatusCode)
			lesson := dataOf(t, resp).(map[string]interface{})
			assert.Equal(t, float64(i+1), lesson["position"])
			assert.NotContains(t, lesson, "CreatedAt")
			lessonIDs = append(lessonIDs, uint(lesson["id"].(float64)))
		}

		resp := doJSON(t, "DELETE", fmt.Sprintf("/api/courses/%d/lessons/%d", id, lessonIDs[0]), adminToken, nil)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		var remaining []models.Lesson
		db.Where("course_id = ?", id).Order("position ASC").Find(&remaining)
		require.Len(t, remaining, 2)
		assert.Equal(t, 1, remaining[0].Position)
		assert.Equal(t, "Second", remaining[0].Title)
		assert.Equal(t, 2, remaining[1].Position)

		// Course detail serializes lessons in snake_case, in order.
		resp = doJSON(t, "GET", fmt.Sprintf("/api/courses/%d", id), adminToken, nil)
		course := dataOf(t, resp).(map[string]interface{})
		lessons := course["lessons"].([]interface{})
		require.Len(t, lessons, 2)
		first := lessons[0].(map[string]interface{})
		assert.Equal(t, "Second", first["title"])
		assert.Equal(t, float64(1), first["position"])
	})

	t.Run("DeleteCascadesLessons", func(t *testing.T) {
		id := createCourse(t, "Doomed Course", "10", models.CourseDraft, categoryID)
		doJSON(t, "POST", fmt.Sprintf("/api/courses/%d/lessons", id), adminToken, map[string]interface{}{
			"title": "Orphan-to-be",
		})

		resp := doJSON(t, "DELETE", fmt.Sprintf("/api/courses/%d", id), adminToken, nil)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		var lessonCount int64
		db.Model(&models.Lesson{}).Where("course_id = ?", id).Count(&lessonCount)
		assert.Equal(t, int64(0), lessonCount)
	})

	t.Run("EnrollCreatesPendingPayment", func(t *testing.T) {
		id := createCourse(t, "Enrollable", "100", models.CoursePublished, categoryID)

		resp := doJSON(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", id), studentToken, nil)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		enrollment := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, models.PaymentPending, enrollment["status"])
		assert.NotEmpty(t, enrollment["transaction_id"])
		assert.Equal(t, "100", enrollment["amount"])

		// Enrolling twice is a conflict.
		resp = doJSON(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", id), studentToken, nil)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("DraftCourseRejectsEnrollment", func(t *testing.T) {
		id := createCourse(t, "Unpublished", "100", models.CourseDraft, categoryID)
		resp := doJSON(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", id), studentToken, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestOrders(t *testing.T) {
	categoryID := createCategory(t, "Orders Fixture")
	courseID := createCourse(t, "Ordered Course", "25", models.CoursePublished, categoryID)

	enrollment := models.Enrollment{
		UserID:     studentID,
		CourseID:   courseID,
		Status:     models.EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	db.Create(&enrollment)

	t.Run("ListUsesPaginationEnvelope", func(t *testing.T) {
		resp := doJSON(t, "GET", "/api/orders?page=1", adminToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Contains(t, body, "data")
		assert.Contains(t, body, "total")
		assert.Contains(t, body, "current_page")
		assert.Contains(t, body, "last_page")
		assert.Contains(t, body, "per_page")
		assert.Contains(t, body, "from")
		assert.Contains(t, body, "to")
		assert.Equal(t, float64(1), body["current_page"])
	})

	t.Run("StatusFilterNarrowsList", func(t *testing.T) {
		resp := doJSON(t, "GET", "/api/orders?status=CANCELLED", adminToken, nil)
		body := decodeBody(t, resp)
		assert.Len(t, body["data"], 0)
		assert.Equal(t, float64(0), body["total"])
	})

	t.Run("CompletingSetsCompletedAt", func(t *testing.T) {
		resp := doJSON(t, "PUT", fmt.Sprintf("/api/orders/%d", enrollment.ID), adminToken, map[string]interface{}{
			"status": models.EnrollmentCompleted,
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		order := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, models.EnrollmentCompleted, order["status"])
		assert.NotNil(t, order["completed_at"])
		assert.Equal(t, float64(100), order["progress_percentage"])
	})

	t.Run("ReactivatingClearsCompletedAt", func(t *testing.T) {
		resp := doJSON(t, "PUT", fmt.Sprintf("/api/orders/%d", enrollment.ID), adminToken, map[string]interface{}{
			"status": models.EnrollmentActive,
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		order := dataOf(t, resp).(map[string]interface{})
		assert.Nil(t, order["completed_at"])
	})

	t.Run("UnknownStatusIsRejected", func(t *testing.T) {
		resp := doJSON(t, "PUT", fmt.Sprintf("/api/orders/%d", enrollment.ID), adminToken, map[string]interface{}{
			"status": "PAUSED",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestPayments(t *testing.T) {
	categoryID := createCategory(t, "Payments Fixture")
	courseID := createCourse(t, "Paid Course", "100", models.CoursePublished, categoryID)

	seed := func(amount, status string) models.Payment {
		payment := models.Payment{
			UserID:        studentID,
			CourseID:      courseID,
			Amount:        amount,
			Status:        status,
			PaymentMethod: "card",
			TransactionID: uuid.NewString(),
			EnrolledAt:    time.Now(),
		}
		db.Create(&payment)
		return payment
	}

	completed := seed("100", models.PaymentCompleted)
	pending := seed("50", models.PaymentPending)
	seed("30", models.PaymentFailed)

	t.Run("RevenueCountsOnlyCompleted", func(t *testing.T) {
		resp := doJSON(t, "GET", "/api/dashboard/stats", adminToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		stats := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, float64(100), stats["total_revenue"])
	})

	t.Run("ApproveFlipsPendingToCompleted", func(t *testing.T) {
		resp := doJSON(t, "POST", fmt.Sprintf("/api/payments/%d/approve", pending.ID), adminToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		payment := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, models.PaymentCompleted, payment["status"])
	})

	t.Run("ApproveCompletedIsConflict", func(t *testing.T) {
		resp := doJSON(t, "POST", fmt.Sprintf("/api/payments/%d/approve", completed.ID), adminToken, nil)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("ApproveAllClearsPendingCount", func(t *testing.T) {
		seed("10", models.PaymentPending)
		seed("20", models.PaymentPending)

		var pendingBefore int64
		db.Model(&models.Payment{}).Where("status = ?", models.PaymentPending).Count(&pendingBefore)
		require.GreaterOrEqual(t, pendingBefore, int64(2))

		resp := doJSON(t, "POST", "/api/payments/approve-all", adminToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		result := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, float64(pendingBefore), result["approved"])

		stats := dataOf(t, doJSON(t, "GET", "/api/dashboard/stats", adminToken, nil)).(map[string]interface{})
		assert.Equal(t, float64(0), stats["pending_payments"])
	})

	t.Run("TransactionsListFiltersByStatus", func(t *testing.T) {
		resp := doJSON(t, "GET", "/api/payments/transactions?status=failed", adminToken, nil)
		body := decodeBody(t, resp)
		rows := body["data"].([]interface{})
		require.NotEmpty(t, rows)
		for _, row := range rows {
			assert.Equal(t, models.PaymentFailed, row.(map[string]interface{})["status"])
		}
	})
}

func TestUsers(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	seedUser := func(name, email, role string) models.User {
		user := models.User{
			FullName:     name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
		}
		db.Create(&user)
		return user
	}

	t.Run("StudentSearchMatchesNameAndEmail", func(t *testing.T) {
		seedUser("Frida Findable", "frida@example.com", models.RoleStudent)

		resp := doJSON(t, "GET", "/api/users/students?search=findable", adminToken, nil)
		body := decodeBody(t, resp)
		rows := body["data"].([]interface{})
		require.Len(t, rows, 1)
		assert.Equal(t, "Frida Findable", rows[0].(map[string]interface{})["full_name"])
	})

	t.Run("PromoteStudentToAdmin", func(t *testing.T) {
		target := seedUser("Petra Promotable", "petra@example.com", models.RoleStudent)

		resp := doJSON(t, "POST", fmt.Sprintf("/api/users/%d/promote", target.ID), adminToken, map[string]string{
			"role": models.RoleAdmin,
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		user := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, models.RoleAdmin, user["role"])
	})

	t.Run("PromoteToUnknownRoleIsRejected", func(t *testing.T) {
		target := seedUser("Rex Rolewrong", "rex@example.com", models.RoleStudent)

		resp := doJSON(t, "POST", fmt.Sprintf("/api/users/%d/promote", target.ID), adminToken, map[string]string{
			"role": "EMPEROR",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("DemoteAdminToStudent", func(t *testing.T) {
		target := seedUser("Dana Demotable", "dana@example.com", models.RoleAdmin)

		resp := doJSON(t, "POST", fmt.Sprintf("/api/users/%d/demote", target.ID), adminToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		user := dataOf(t, resp).(map[string]interface{})
		assert.Equal(t, models.RoleStudent, user["role"])
	})

	t.Run("SuperAdminIsNeverDemotable", func(t *testing.T) {
		target := seedUser("Sue Supreme", "sue@example.com", models.RoleSuperAdmin)

		resp := doJSON(t, "POST", fmt.Sprintf("/api/users/%d/demote", target.ID), adminToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var unchanged models.User
		db.First(&unchanged, target.ID)
		assert.Equal(t, models.RoleSuperAdmin, unchanged.Role)
	})

	t.Run("DeleteRequiresSuperAdmin", func(t *testing.T) {
		target := seedUser("Del Target", "del1@example.com", models.RoleStudent)

		resp := doJSON(t, "DELETE", fmt.Sprintf("/api/users/%d", target.ID), adminToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("SuperAdminDeletesUser", func(t *testing.T) {
		super := seedUser("Root Admin", "root@example.com", models.RoleSuperAdmin)
		superToken, err := utils.GenerateJWTToken(super.ID, super.Role, cfg)
		require.NoError(t, err)

		target := seedUser("Del Target Two", "del2@example.com", models.RoleStudent)

		resp := doJSON(t, "DELETE", fmt.Sprintf("/api/users/%d", target.ID), superToken, nil)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, "DELETE", fmt.Sprintf("/api/users/%d", target.ID), superToken, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		// Super admin accounts are themselves off limits.
		other := seedUser("Other Root", "root2@example.com", models.RoleSuperAdmin)
		resp = doJSON(t, "DELETE", fmt.Sprintf("/api/users/%d", other.ID), superToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("AdminsListContainsBothAdminRoles", func(t *testing.T) {
		resp := doJSON(t, "GET", "/api/users/admins", adminToken, nil)
		rows := dataOf(t, resp).([]interface{})

		roles := map[string]bool{}
		for _, row := range rows {
			roles[row.(map[string]interface{})["role"].(string)] = true
		}
		assert.True(t, roles[models.RoleAdmin])
		assert.True(t, roles[models.RoleSuperAdmin])
	})
}

func TestDashboardStats(t *testing.T) {
	resp := doJSON(t, "GET", "/api/dashboard/stats", adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := dataOf(t, resp).(map[string]interface{})
	for _, key := range []string{
		"total_students", "total_courses", "total_enrollments",
		"total_revenue", "pending_payments",
		"students_delta", "enrollments_delta", "revenue_delta",
		"top_courses", "recent_enrollments",
	} {
		assert.Contains(t, stats, key)
	}

	assert.GreaterOrEqual(t, stats["total_students"].(float64), float64(2))
	topCourses := stats["top_courses"].([]interface{})
	assert.NotEmpty(t, topCourses)
}
