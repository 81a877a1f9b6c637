package client

import (
	"fmt"
	"strings"
)

// CategoriesPanel pairs the categories list store with its modal form.
// Mutations go through the form session; on success the store is
// patched in place from the server's response instead of refetched.
type CategoriesPanel struct {
	api   *Client
	Store *ListStore[Category]
	Form  *FormSession[Category]
}

func NewCategoriesPanel(api *Client) *CategoriesPanel {
	return &CategoriesPanel{
		api: api,
		Store: NewListStore(StoreConfig[Category]{
			ID: func(c Category) uint { return c.ID },
			Matches: func(c Category, term string) bool {
				return strings.Contains(strings.ToLower(c.Name), term)
			},
		}),
		Form: NewFormSession[Category](),
	}
}

func (p *CategoriesPanel) Load() error {
	return p.Store.Refresh(func() ([]Category, error) {
		return p.api.ListCategories()
	})
}

func (p *CategoriesPanel) SubmitCreate(payload CategoryPayload) error {
	return p.Form.Submit(func() error {
		created, err := p.api.CreateCategory(payload)
		if err != nil {
			return err
		}
		p.Store.ApplyCreate(created)
		return nil
	})
}

func (p *CategoriesPanel) SubmitEdit(id uint, payload CategoryPayload) error {
	return p.Form.Submit(func() error {
		updated, err := p.api.UpdateCategory(id, payload)
		if err != nil {
			return err
		}
		p.Store.ApplyUpdate(updated)
		return nil
	})
}

func (p *CategoriesPanel) SubmitDelete(id uint) error {
	return p.Form.Submit(func() error {
		if err := p.api.DeleteCategory(id); err != nil {
			return err
		}
		p.Store.ApplyDelete(id)
		return nil
	})
}

// CoursesPanel drives the courses table plus the two-step create
// wizard.
type CoursesPanel struct {
	api   *Client
	Store *ListStore[Course]
	Form  *FormSession[Course]
}

func NewCoursesPanel(api *Client) *CoursesPanel {
	return &CoursesPanel{
		api: api,
		Store: NewListStore(StoreConfig[Course]{
			ID: func(c Course) uint { return c.ID },
			Matches: func(c Course, term string) bool {
				return strings.Contains(strings.ToLower(c.Title), term)
			},
			StatusOf: func(c Course) string { return c.Status },
		}),
		Form: NewFormSession[Course](),
	}
}

func (p *CoursesPanel) Load() error {
	return p.Store.Refresh(func() ([]Course, error) {
		return p.api.ListCourses("", p.Store.StatusFilter())
	})
}

// FilterStatus is a server-side filter: changing it refetches.
func (p *CoursesPanel) FilterStatus(status string) error {
	p.Store.SetStatusFilter(status)
	return p.Load()
}

func (p *CoursesPanel) SubmitEdit(id uint, form CourseForm) error {
	return p.Form.Submit(func() error {
		updated, err := p.api.UpdateCourse(id, form)
		if err != nil {
			return err
		}
		p.Store.ApplyUpdate(updated)
		return nil
	})
}

func (p *CoursesPanel) SubmitDelete(id uint) error {
	return p.Form.Submit(func() error {
		if err := p.api.DeleteCourse(id); err != nil {
			return err
		}
		p.Store.ApplyDelete(id)
		return nil
	})
}

// WizardStep is the course-create wizard's position: details first,
// then the lesson list.
type WizardStep int

const (
	StepDetails WizardStep = iota
	StepLessons
)

// CourseWizard collects a course and its lessons across two steps and
// commits them in one go: course create, then each lesson in order.
// Commit runs through the panel's form session, so a second commit
// while one is in flight is rejected. A lesson failure does not roll
// the course back; Commit reports which lesson failed so the operator
// can retry the rest.
type CourseWizard struct {
	step    WizardStep
	Details CourseForm
	Lessons []LessonPayload
}

func NewCourseWizard() *CourseWizard {
	return &CourseWizard{step: StepDetails}
}

func (w *CourseWizard) Step() WizardStep { return w.step }

func (w *CourseWizard) Next() { w.step = StepLessons }

func (w *CourseWizard) Back() { w.step = StepDetails }

// AddLesson queues a lesson at the next position.
func (w *CourseWizard) AddLesson(lesson LessonPayload) {
	lesson.Position = len(w.Lessons) + 1
	w.Lessons = append(w.Lessons, lesson)
}

// RemoveLesson drops the lesson at the given index and renumbers the
// rest so positions stay 1..n.
func (w *CourseWizard) RemoveLesson(index int) {
	if index < 0 || index >= len(w.Lessons) {
		return
	}
	w.Lessons = append(w.Lessons[:index], w.Lessons[index+1:]...)
	for i := range w.Lessons {
		w.Lessons[i].Position = i + 1
	}
}

// Commit creates the course and then its lessons sequentially. The
// wizard is the panel's create dialog, so Commit opens it if needed
// and submits through the form session.
func (w *CourseWizard) Commit(panel *CoursesPanel) (Course, error) {
	if panel.Form.State() == FormClosed {
		panel.Form.OpenCreate()
	}

	var course Course
	err := panel.Form.Submit(func() error {
		created, err := panel.api.CreateCourse(w.Details)
		if err != nil {
			return err
		}
		course = created
		panel.Store.ApplyCreate(created)

		for i, lesson := range w.Lessons {
			if _, err := panel.api.AddLesson(created.ID, lesson); err != nil {
				return fmt.Errorf("course created but lesson %d of %d failed: %w",
					i+1, len(w.Lessons), err)
			}
		}
		return nil
	})
	return course, err
}

// OrdersPanel is the server-paginated enrollments table.
type OrdersPanel struct {
	api   *Client
	Store *ListStore[Order]
	Form  *FormSession[Order]
}

func NewOrdersPanel(api *Client) *OrdersPanel {
	return &OrdersPanel{
		api: api,
		Store: NewListStore(StoreConfig[Order]{
			ID: func(o Order) uint { return o.ID },
			Matches: func(o Order, term string) bool {
				return strings.Contains(strings.ToLower(o.User.FullName), term) ||
					strings.Contains(strings.ToLower(o.Course.Title), term)
			},
			StatusOf: func(o Order) string { return o.Status },
		}),
		Form: NewFormSession[Order](),
	}
}

func (p *OrdersPanel) Load() error {
	return p.Store.Refresh(func() ([]Order, error) {
		page, err := p.api.ListOrders(p.Store.StatusFilter(), p.Store.Page())
		return page.Data, err
	})
}

func (p *OrdersPanel) FilterStatus(status string) error {
	p.Store.SetStatusFilter(status)
	p.Store.SetPage(1)
	return p.Load()
}

func (p *OrdersPanel) GoToPage(page int) error {
	p.Store.SetPage(page)
	return p.Load()
}

func (p *OrdersPanel) SubmitStatusChange(id uint, payload OrderPayload) error {
	return p.Form.Submit(func() error {
		updated, err := p.api.UpdateOrder(id, payload)
		if err != nil {
			return err
		}
		p.Store.ApplyUpdate(updated)
		return nil
	})
}

// PaymentsPanel is the transactions table with single and bulk approve.
type PaymentsPanel struct {
	api   *Client
	Store *ListStore[Payment]
	Form  *FormSession[Payment]
}

func NewPaymentsPanel(api *Client) *PaymentsPanel {
	return &PaymentsPanel{
		api: api,
		Store: NewListStore(StoreConfig[Payment]{
			ID: func(p Payment) uint { return p.ID },
			Matches: func(p Payment, term string) bool {
				return strings.Contains(strings.ToLower(p.User.FullName), term) ||
					strings.Contains(strings.ToLower(p.TransactionID), term)
			},
			StatusOf: func(p Payment) string { return p.Status },
		}),
		Form: NewFormSession[Payment](),
	}
}

func (p *PaymentsPanel) Load() error {
	return p.Store.Refresh(func() ([]Payment, error) {
		page, err := p.api.ListTransactions(p.Store.StatusFilter(), p.Store.Page())
		return page.Data, err
	})
}

func (p *PaymentsPanel) FilterStatus(status string) error {
	p.Store.SetStatusFilter(status)
	p.Store.SetPage(1)
	return p.Load()
}

func (p *PaymentsPanel) GoToPage(page int) error {
	p.Store.SetPage(page)
	return p.Load()
}

func (p *PaymentsPanel) Approve(id uint) error {
	return p.Form.Submit(func() error {
		updated, err := p.api.ApprovePayment(id)
		if err != nil {
			return err
		}
		p.Store.ApplyUpdate(updated)
		return nil
	})
}

// ApproveAll bulk-approves and then refreshes, since the server touched
// rows beyond the loaded page.
func (p *PaymentsPanel) ApproveAll() (int64, error) {
	approved, err := p.api.ApproveAllPending()
	if err != nil {
		return 0, err
	}
	return approved, p.Load()
}

// StudentsPanel is the server-paginated students table with promote and
// demote actions.
type StudentsPanel struct {
	api   *Client
	Store *ListStore[User]
	Form  *FormSession[User]
}

func NewStudentsPanel(api *Client) *StudentsPanel {
	return &StudentsPanel{
		api: api,
		Store: NewListStore(StoreConfig[User]{
			ID: func(u User) uint { return u.ID },
			Matches: func(u User, term string) bool {
				return strings.Contains(strings.ToLower(u.FullName), term) ||
					strings.Contains(strings.ToLower(u.Email), term)
			},
			StatusOf: func(u User) string { return u.Role },
		}),
		Form: NewFormSession[User](),
	}
}

func (p *StudentsPanel) Load() error {
	return p.Store.Refresh(func() ([]User, error) {
		page, err := p.api.ListStudents("", p.Store.Page())
		return page.Data, err
	})
}

func (p *StudentsPanel) GoToPage(page int) error {
	p.Store.SetPage(page)
	return p.Load()
}

// Promote raises a student; the promoted user leaves the students list.
func (p *StudentsPanel) Promote(id uint, role string) error {
	return p.Form.Submit(func() error {
		if _, err := p.api.PromoteUser(id, role); err != nil {
			return err
		}
		p.Store.ApplyDelete(id)
		return nil
	})
}

// OverviewPanel holds the read-only dashboard snapshot. No CRUD here,
// just the stats plus the two top-N lists inside them.
type OverviewPanel struct {
	api   *Client
	Stats DashboardStats
}

func NewOverviewPanel(api *Client) *OverviewPanel {
	return &OverviewPanel{api: api}
}

func (p *OverviewPanel) Load() error {
	stats, err := p.api.GetDashboardStats()
	if err != nil {
		// Previous snapshot stays on screen.
		return err
	}
	p.Stats = stats
	return nil
}

// DefaultFactories wires every tab to its panel constructor.
func DefaultFactories(api *Client) map[Tab]func() Panel {
	return map[Tab]func() Panel{
		TabOverview:   func() Panel { return NewOverviewPanel(api) },
		TabCourses:    func() Panel { return NewCoursesPanel(api) },
		TabStudents:   func() Panel { return NewStudentsPanel(api) },
		TabOrders:     func() Panel { return NewOrdersPanel(api) },
		TabCategories: func() Panel { return NewCategoriesPanel(api) },
		TabPayments:   func() Panel { return NewPaymentsPanel(api) },
	}
}
