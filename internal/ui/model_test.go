package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/log"
	"github.com/zjrosen/stobind/internal/profile"
	"github.com/zjrosen/stobind/internal/pubsub"
	"github.com/zjrosen/stobind/internal/testutil"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	db := testutil.NewTestDB(t)
	repo := db.ProfileRepository()
	prof := testutil.CombatProfile(t, "Browser")
	require.NoError(t, repo.Save(prof))

	return New(Config{
		Repo:        repo,
		Profile:     prof,
		Environment: profile.EnvSpace,
		ShowIcons:   true,
	})
}

func TestModel_NavigationFollowsKeyOrder(t *testing.T) {
	m := newTestModel(t)

	// CombatProfile space binds sort Space, Tab, F1.
	sel, ok := m.SelectedKey()
	require.True(t, ok)
	assert.Equal(t, "Space", sel)

	next, _ := m.Update(keyPress('j'))
	m = next.(Model)
	sel, _ = m.SelectedKey()
	assert.Equal(t, "Tab", sel)

	next, _ = m.Update(keyPress('G'))
	m = next.(Model)
	sel, _ = m.SelectedKey()
	assert.Equal(t, "F1", sel)

	// Cursor clamps at the edges.
	next, _ = m.Update(keyPress('j'))
	m = next.(Model)
	sel, _ = m.SelectedKey()
	assert.Equal(t, "F1", sel)
}

func TestModel_SwitchEnvironment(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, profile.EnvSpace, m.Environment())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, profile.EnvGround, m.Environment())

	sel, ok := m.SelectedKey()
	require.True(t, ok)
	assert.Equal(t, "F1", sel, "ground has a single F1 binding")
}

func TestModel_ToggleStabilizePersists(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := db.ProfileRepository()
	prof := testutil.NewProfile(t, "Toggler").
		WithBinding("F1", "Target_Self", "+STOTrayExecByTray 0 0").
		BuildAndSave(repo)

	m := New(Config{Repo: repo, Profile: prof, Environment: profile.EnvSpace})

	next, _ := m.Update(keyPress('s'))
	m = next.(Model)
	assert.Nil(t, m.err)

	saved, err := repo.FindByName("Toggler")
	require.NoError(t, err)
	assert.True(t, saved.StabilizationFlags(profile.EnvSpace)["F1"])

	// Toggling again clears the flag.
	next, _ = m.Update(keyPress('s'))
	m = next.(Model)
	saved, err = repo.FindByName("Toggler")
	require.NoError(t, err)
	assert.False(t, saved.StabilizationFlags(profile.EnvSpace)["F1"])
}

func TestModel_ToggleStabilizeRejectsSingleCommand(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := db.ProfileRepository()
	prof := testutil.NewProfile(t, "Single").
		WithBinding("F1", "Target_Self").
		BuildAndSave(repo)

	m := New(Config{Repo: repo, Profile: prof, Environment: profile.EnvSpace})

	next, _ := m.Update(keyPress('s'))
	m = next.(Model)
	assert.Error(t, m.err)

	saved, err := repo.FindByName("Single")
	require.NoError(t, err)
	assert.False(t, saved.StabilizationFlags(profile.EnvSpace)["F1"])
}

func TestModel_ReloadPicksUpExternalChanges(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := db.ProfileRepository()
	prof := testutil.NewProfile(t, "Watched").
		WithBinding("F1", "Target_Self").
		BuildAndSave(repo)

	m := New(Config{Repo: repo, Profile: prof, Environment: profile.EnvSpace})

	// Another writer adds a binding behind the browser's back.
	other, err := repo.FindByName("Watched")
	require.NoError(t, err)
	other.Bindings(profile.EnvSpace)["F2"] = keybind.Binding{
		Key:      "F2",
		Commands: []keybind.CommandEntry{keybind.NewCommandEntry("Target_Enemy_Near")},
	}
	require.NoError(t, repo.Save(other))

	next, _ := m.Update(ProfileReloadedMsg{})
	m = next.(Model)
	assert.Nil(t, m.err)
	assert.Contains(t, m.View(), "F2")
}

func TestModel_StatusBarShowsLogTail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := db.ProfileRepository()
	prof := testutil.NewProfile(t, "Tail").
		WithBinding("F1", "Target_Self").
		BuildAndSave(repo)

	m := New(Config{Repo: repo, Profile: prof, Environment: profile.EnvSpace, StatusBar: true})

	next, _ := m.Update(log.LogEvent{Type: pubsub.UpdatedEvent, Payload: "merge finished imported=3\n"})
	m = next.(Model)
	assert.Contains(t, m.View(), "merge finished imported=3")
}

func TestModel_ViewShowsStabilizedMarker(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "Browser — space binds")
	assert.Contains(t, view, stabilizedMarker)
	assert.Contains(t, view, "Target_Enemy_Next")
}
