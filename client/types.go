package client

import "time"

// Page is the server's pagination envelope for orders, payments and
// students.
type Page[T any] struct {
	Data        []T   `json:"data"`
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type Category struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	CoursesCount int64     `json:"courses_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Course struct {
	ID               uint        `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Price            string      `json:"price"`
	Level            string      `json:"level"`
	Status           string      `json:"status"`
	ThumbnailURL     string      `json:"thumbnail_url"`
	TotalLessons     int64       `json:"total_lessons"`
	TotalEnrollments int64       `json:"total_enrollments"`
	Category         CategoryRef `json:"category"`
	Lessons          []Lesson    `json:"lessons,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

type Lesson struct {
	ID          uint   `json:"id"`
	CourseID    uint   `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoSource string `json:"video_source"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration"`
	Position    int    `json:"position"`
	IsPreview   bool   `json:"is_preview"`
}

type UserRef struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type CourseRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type Order struct {
	ID                 uint       `json:"id"`
	User               UserRef    `json:"user"`
	Course             CourseRef  `json:"course"`
	Status             string     `json:"status"`
	ProgressPercentage int        `json:"progress_percentage"`
	CompletedLessons   int        `json:"completed_lessons"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	CompletedAt        *time.Time `json:"completed_at"`
}

type Payment struct {
	ID            uint      `json:"id"`
	User          UserRef   `json:"user"`
	Course        CourseRef `json:"course"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	EnrolledAt    time.Time `json:"enrolled_at"`
}

type User struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

type TopCourse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Enrollments int64  `json:"enrollments"`
}

type RecentEnrollment struct {
	ID         uint      `json:"id"`
	UserName   string    `json:"user_name"`
	Course     string    `json:"course"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type DashboardStats struct {
	TotalStudents     int64              `json:"total_students"`
	TotalCourses      int64              `json:"total_courses"`
	TotalEnrollments  int64              `json:"total_enrollments"`
	TotalRevenue      float64            `json:"total_revenue"`
	PendingPayments   int64              `json:"pending_payments"`
	StudentsDelta     float64            `json:"students_delta"`
	EnrollmentsDelta  float64            `json:"enrollments_delta"`
	RevenueDelta      float64            `json:"revenue_delta"`
	TopCourses        []TopCourse        `json:"top_courses"`
	RecentEnrollments []RecentEnrollment `json:"recent_enrollments"`
}
