package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePanel struct {
	loads int
}

func (p *fakePanel) Load() error {
	p.loads++
	return nil
}

func testFactories() (map[Tab]func() Panel, *int) {
	built := 0
	factories := map[Tab]func() Panel{}
	for tab := range tabNames {
		tab := tab
		factories[tab] = func() Panel {
			built++
			return &fakePanel{}
		}
	}
	return factories, &built
}

func TestParseTabFallsBackToOverview(t *testing.T) {
	assert.Equal(t, TabCourses, ParseTab("courses"))
	assert.Equal(t, TabPayments, ParseTab("payments"))
	assert.Equal(t, TabOverview, ParseTab("no-such-tab"))
	assert.Equal(t, TabOverview, ParseTab(""))
}

func TestPreferencesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	prefs := Preferences{DarkMode: true, SidebarOpen: false, ActiveTab: "payments"}
	require.NoError(t, SavePreferences(path, prefs))

	loaded, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)
}

func TestMissingPreferencesYieldDefaults(t *testing.T) {
	loaded, err := LoadPreferences(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.False(t, loaded.DarkMode)
	assert.True(t, loaded.SidebarOpen)
	assert.Equal(t, "overview", loaded.ActiveTab)
}

func TestSwitchTabBuildsFreshPanel(t *testing.T) {
	factories, built := testFactories()
	shell, err := NewShell(filepath.Join(t.TempDir(), "prefs.json"), factories)
	require.NoError(t, err)

	assert.Equal(t, TabOverview, shell.ActiveTab())

	first := shell.ActivePanel()
	assert.Same(t, first, shell.ActivePanel())
	assert.Equal(t, 1, *built)

	shell.SwitchTab(TabCourses)
	second := shell.ActivePanel()
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, *built)

	// Returning to a tab does not resurrect its old panel state.
	shell.SwitchTab(TabOverview)
	assert.NotSame(t, first, shell.ActivePanel())
	assert.Equal(t, 3, *built)

	// Switching to the already-active tab keeps the panel.
	shell.SwitchTab(TabOverview)
	assert.Equal(t, 3, *built)
}

func TestShellPersistsPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	factories, _ := testFactories()

	shell, err := NewShell(path, factories)
	require.NoError(t, err)

	shell.SetDarkMode(true)
	shell.ToggleSidebar()
	shell.SwitchTab(TabStudents)

	reloaded, err := NewShell(path, factories)
	require.NoError(t, err)
	assert.True(t, reloaded.DarkMode())
	assert.False(t, reloaded.SidebarOpen())
	assert.Equal(t, TabStudents, reloaded.ActiveTab())
}

func TestAuthGate(t *testing.T) {
	gate := &AuthGate{}
	assert.False(t, gate.Resolved())
	assert.False(t, gate.IsAdmin())

	gate.Resolve(&User{Role: "STUDENT"})
	assert.True(t, gate.Resolved())
	assert.False(t, gate.IsAdmin())
	assert.False(t, gate.IsSuperAdmin())

	gate.Resolve(&User{Role: "ADMIN"})
	assert.True(t, gate.IsAdmin())
	assert.False(t, gate.IsSuperAdmin())

	gate.Resolve(&User{Role: "SUPER_ADMIN"})
	assert.True(t, gate.IsAdmin())
	assert.True(t, gate.IsSuperAdmin())

	// No session at all.
	gate.Resolve(nil)
	assert.True(t, gate.Resolved())
	assert.False(t, gate.IsAdmin())
}
