package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Login authenticates and keeps the returned token on the client.
func (c *Client) Login(email, password string) (User, error) {
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.sendJSON(http.MethodPost, "/api/auth/login", payload, &resp); err != nil {
		return User{}, err
	}
	c.SetToken(resp.Token)
	return resp.User, nil
}

/* ---------- categories ---------- */

type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug,omitempty"`
}

func (c *Client) ListCategories() ([]Category, error) {
	var resp envelope[[]Category]
	if err := c.getJSON("/api/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateCategory(payload CategoryPayload) (Category, error) {
	var resp envelope[Category]
	err := c.sendJSON(http.MethodPost, "/api/categories", payload, &resp)
	return resp.Data, err
}

func (c *Client) UpdateCategory(id uint, payload CategoryPayload) (Category, error) {
	var resp envelope[Category]
	err := c.sendJSON(http.MethodPut, fmt.Sprintf("/api/categories/%d", id), payload, &resp)
	return resp.Data, err
}

func (c *Client) DeleteCategory(id uint) error {
	return c.sendJSON(http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil, nil)
}

/* ---------- courses ---------- */

// CourseForm carries the multipart fields for course create/update.
// Thumbnail is optional.
type CourseForm struct {
	Title       string
	Description string
	Price       string
	Level       string
	Status      string
	CategoryID  uint
	Thumbnail   *NamedReader
}

func (f CourseForm) fields() map[string]string {
	fields := map[string]string{
		"title":       f.Title,
		"description": f.Description,
		"price":       f.Price,
		"level":       f.Level,
		"status":      f.Status,
	}
	if f.CategoryID != 0 {
		fields["category_id"] = strconv.FormatUint(uint64(f.CategoryID), 10)
	}
	return fields
}

func (f CourseForm) files() map[string]NamedReader {
	if f.Thumbnail == nil {
		return nil
	}
	return map[string]NamedReader{"thumbnail": *f.Thumbnail}
}

func (c *Client) ListCourses(search, status string) ([]Course, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if status != "" {
		query.Set("status", status)
	}

	var resp envelope[[]Course]
	if err := c.getJSON("/api/courses", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetCourse(id uint) (Course, error) {
	var resp envelope[Course]
	err := c.getJSON(fmt.Sprintf("/api/courses/%d", id), nil, &resp)
	return resp.Data, err
}

func (c *Client) CreateCourse(form CourseForm) (Course, error) {
	var resp envelope[Course]
	err := c.sendMultipart(http.MethodPost, "/api/courses", form.fields(), form.files(), &resp)
	return resp.Data, err
}

func (c *Client) UpdateCourse(id uint, form CourseForm) (Course, error) {
	var resp envelope[Course]
	err := c.sendMultipart(http.MethodPut, fmt.Sprintf("/api/courses/%d", id), form.fields(), form.files(), &resp)
	return resp.Data, err
}

func (c *Client) DeleteCourse(id uint) error {
	return c.sendJSON(http.MethodDelete, fmt.Sprintf("/api/courses/%d", id), nil, nil)
}

type LessonPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoSource string `json:"video_source"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration"`
	Position    int    `json:"position"`
	IsPreview   bool   `json:"is_preview"`
}

func (c *Client) AddLesson(courseID uint, payload LessonPayload) (Lesson, error) {
	var resp envelope[Lesson]
	err := c.sendJSON(http.MethodPost, fmt.Sprintf("/api/courses/%d/lessons", courseID), payload, &resp)
	return resp.Data, err
}

func (c *Client) DeleteLesson(courseID, lessonID uint) error {
	return c.sendJSON(http.MethodDelete,
		fmt.Sprintf("/api/courses/%d/lessons/%d", courseID, lessonID), nil, nil)
}

/* ---------- orders ---------- */

func (c *Client) ListOrders(status string, page int) (Page[Order], error) {
	var resp Page[Order]
	err := c.getJSON("/api/orders", pageQuery(status, page), &resp)
	return resp, err
}

type OrderPayload struct {
	Status             string `json:"status"`
	ProgressPercentage *int   `json:"progress_percentage,omitempty"`
	CompletedLessons   *int   `json:"completed_lessons,omitempty"`
}

func (c *Client) UpdateOrder(id uint, payload OrderPayload) (Order, error) {
	var resp envelope[Order]
	err := c.sendJSON(http.MethodPut, fmt.Sprintf("/api/orders/%d", id), payload, &resp)
	return resp.Data, err
}

/* ---------- payments ---------- */

func (c *Client) ListTransactions(status string, page int) (Page[Payment], error) {
	var resp Page[Payment]
	err := c.getJSON("/api/payments/transactions", pageQuery(status, page), &resp)
	return resp, err
}

func (c *Client) ApprovePayment(id uint) (Payment, error) {
	var resp envelope[Payment]
	err := c.sendJSON(http.MethodPost, fmt.Sprintf("/api/payments/%d/approve", id), nil, &resp)
	return resp.Data, err
}

// ApproveAllPending approves every pending payment and reports how many
// were flipped.
func (c *Client) ApproveAllPending() (int64, error) {
	var resp envelope[struct {
		Approved int64 `json:"approved"`
	}]
	err := c.sendJSON(http.MethodPost, "/api/payments/approve-all", nil, &resp)
	return resp.Data.Approved, err
}

/* ---------- users ---------- */

func (c *Client) ListStudents(search string, page int) (Page[User], error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var resp Page[User]
	err := c.getJSON("/api/users/students", query, &resp)
	return resp, err
}

func (c *Client) ListAdmins() ([]User, error) {
	var resp envelope[[]User]
	if err := c.getJSON("/api/users/admins", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) PromoteUser(id uint, role string) (User, error) {
	var resp envelope[User]
	payload := map[string]string{"role": role}
	err := c.sendJSON(http.MethodPost, fmt.Sprintf("/api/users/%d/promote", id), payload, &resp)
	return resp.Data, err
}

func (c *Client) DemoteUser(id uint) (User, error) {
	var resp envelope[User]
	err := c.sendJSON(http.MethodPost, fmt.Sprintf("/api/users/%d/demote", id), nil, &resp)
	return resp.Data, err
}

// DeleteUser removes an account. Requires a SUPER_ADMIN token.
func (c *Client) DeleteUser(id uint) error {
	return c.sendJSON(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

/* ---------- dashboard ---------- */

func (c *Client) GetDashboardStats() (DashboardStats, error) {
	var resp envelope[DashboardStats]
	err := c.getJSON("/api/dashboard/stats", nil, &resp)
	return resp.Data, err
}

func pageQuery(status string, page int) url.Values {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	return query
}
