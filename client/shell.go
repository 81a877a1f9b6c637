package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Tab identifies one admin panel section.
type Tab int

const (
	TabOverview Tab = iota
	TabCourses
	TabStudents
	TabOrders
	TabCategories
	TabPayments
)

var tabNames = map[Tab]string{
	TabOverview:   "overview",
	TabCourses:    "courses",
	TabStudents:   "students",
	TabOrders:     "orders",
	TabCategories: "categories",
	TabPayments:   "payments",
}

func (t Tab) String() string {
	if name, ok := tabNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tab(%d)", int(t))
}

// ParseTab resolves a stored tab name; unknown names fall back to the
// overview.
func ParseTab(name string) Tab {
	for tab, n := range tabNames {
		if n == name {
			return tab
		}
	}
	return TabOverview
}

// Panel is one tab's controller pair: a list store plus whatever modal
// sessions it needs. Load runs the initial fetch on (re)entry.
type Panel interface {
	Load() error
}

// Preferences is the durable UI state: theme, sidebar and last tab.
// It is loaded and saved only at the shell boundary.
type Preferences struct {
	DarkMode    bool   `json:"dark_mode"`
	SidebarOpen bool   `json:"sidebar_open"`
	ActiveTab   string `json:"active_tab"`
}

// LoadPreferences reads stored preferences; a missing file yields
// defaults.
func LoadPreferences(path string) (Preferences, error) {
	prefs := Preferences{SidebarOpen: true, ActiveTab: TabOverview.String()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, err
	}

	if err := json.Unmarshal(data, &prefs); err != nil {
		return Preferences{SidebarOpen: true, ActiveTab: TabOverview.String()}, err
	}
	return prefs, nil
}

func SavePreferences(path string, prefs Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Shell owns the active tab, the sidebar and theme flags, and the
// mapping from tab to panel. Switching tabs discards the previous
// panel and builds the new one fresh, so every entry refetches.
type Shell struct {
	mu sync.Mutex

	prefs     Preferences
	prefsPath string

	activeTab Tab
	panel     Panel

	factories map[Tab]func() Panel
}

func NewShell(prefsPath string, factories map[Tab]func() Panel) (*Shell, error) {
	prefs, err := LoadPreferences(prefsPath)
	if err != nil {
		return nil, err
	}

	s := &Shell{
		prefs:     prefs,
		prefsPath: prefsPath,
		activeTab: ParseTab(prefs.ActiveTab),
		factories: factories,
	}
	return s, nil
}

func (s *Shell) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// ActivePanel returns the currently mounted panel, building it on first
// access.
func (s *Shell) ActivePanel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panel == nil {
		s.panel = s.buildPanel(s.activeTab)
	}
	return s.panel
}

// SwitchTab changes the active section. The old panel is dropped; the
// new one starts empty and loads on first access.
func (s *Shell) SwitchTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tab == s.activeTab {
		return
	}
	s.activeTab = tab
	s.panel = s.buildPanel(tab)
	s.prefs.ActiveTab = tab.String()
	s.persist()
}

func (s *Shell) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.DarkMode
}

func (s *Shell) SetDarkMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.DarkMode = on
	s.persist()
}

func (s *Shell) SidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.SidebarOpen
}

func (s *Shell) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.SidebarOpen = !s.prefs.SidebarOpen
	s.persist()
}

func (s *Shell) buildPanel(tab Tab) Panel {
	if factory, ok := s.factories[tab]; ok {
		return factory()
	}
	return nil
}

func (s *Shell) persist() {
	// Preference writes are best effort; a failed save only loses the
	// next session's theme.
	_ = SavePreferences(s.prefsPath, s.prefs)
}

// AuthGate decides whether the admin shell may render. The shell must
// wait until Resolved reports true before checking roles.
type AuthGate struct {
	mu       sync.Mutex
	user     *User
	resolved bool
}

// Resolve records the session lookup result; a nil user means no valid
// session.
func (g *AuthGate) Resolve(user *User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = user
	g.resolved = true
}

func (g *AuthGate) Resolved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolved
}

func (g *AuthGate) IsAdmin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user != nil && (g.user.Role == "ADMIN" || g.user.Role == "SUPER_ADMIN")
}

func (g *AuthGate) IsSuperAdmin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user != nil && g.user.Role == "SUPER_ADMIN"
}
