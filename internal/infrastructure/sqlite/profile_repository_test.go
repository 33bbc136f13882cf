package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/profile"
)

// setupTestRepo creates a new DB and returns the repository for testing.
// The DB is closed when the test completes.
func setupTestRepo(t *testing.T) profile.Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db.ProfileRepository()
}

func testProfile(t *testing.T, name string) *profile.Profile {
	t.Helper()
	p := profile.New(name)
	p.Bindings(profile.EnvSpace)["F1"] = keybind.Binding{
		Key:      "F1",
		Commands: []keybind.CommandEntry{keybind.NewCommandEntry("FireAll")},
		Line:     3,
		Raw:      "FireAll",
	}
	p.Bindings(profile.EnvSpace)["Space"] = keybind.Binding{
		Key: "Space",
		Commands: []keybind.CommandEntry{
			keybind.NewCommandEntry("+STOTrayExecByTray 0 0"),
			keybind.NewCommandEntry("+STOTrayExecByTray 0 1"),
		},
		Line: 4,
		Raw:  "+STOTrayExecByTray 0 0 $$ +STOTrayExecByTray 0 1",
	}
	p.Bindings(profile.EnvGround)["G"] = keybind.Binding{
		Key:      "G",
		Commands: []keybind.CommandEntry{keybind.NewCommandEntry("aim")},
	}
	p.Aliases["AttackRun"] = keybind.Alias{Name: "AttackRun", Commands: "FireAll $$ FirePhasers"}
	require.NoError(t, p.SetStabilization(profile.EnvSpace, "Space", true))
	return p
}

func TestProfileRepository_SaveAndFindByName(t *testing.T) {
	repo := setupTestRepo(t)

	p := testProfile(t, "Alpha")
	require.Equal(t, int64(0), p.ID)
	require.NoError(t, repo.Save(p))
	require.Greater(t, p.ID, int64(0), "profile gets an ID on insert")

	found, err := repo.FindByName("Alpha")
	require.NoError(t, err)
	require.Equal(t, p.GUID, found.GUID)
	require.Equal(t, "Alpha", found.Name)

	space := found.Bindings(profile.EnvSpace)
	require.Len(t, space, 2)
	require.Equal(t, "FireAll", space["F1"].Commands[0].Command)
	require.Equal(t, 3, space["F1"].Line)
	require.Equal(t, "tray", space["Space"].Commands[0].Type)
	require.Len(t, found.Bindings(profile.EnvGround), 1)

	require.Equal(t, "FireAll $$ FirePhasers", found.Aliases["AttackRun"].Commands)
	require.True(t, found.StabilizationFlags(profile.EnvSpace)["Space"])
}

func TestProfileRepository_SaveUpdateReplacesContents(t *testing.T) {
	repo := setupTestRepo(t)

	p := testProfile(t, "Alpha")
	require.NoError(t, repo.Save(p))
	originalID := p.ID

	delete(p.Bindings(profile.EnvSpace), "F1")
	p.Bindings(profile.EnvSpace)["F2"] = keybind.Binding{
		Key:      "F2",
		Commands: []keybind.CommandEntry{keybind.NewCommandEntry("Target")},
	}
	require.NoError(t, repo.Save(p))
	require.Equal(t, originalID, p.ID, "update must not change the ID")

	found, err := repo.FindByName("Alpha")
	require.NoError(t, err)
	space := found.Bindings(profile.EnvSpace)
	require.NotContains(t, space, "F1")
	require.Contains(t, space, "F2")
}

func TestProfileRepository_FindByGUID(t *testing.T) {
	repo := setupTestRepo(t)

	p := testProfile(t, "Alpha")
	require.NoError(t, repo.Save(p))

	found, err := repo.FindByGUID(p.GUID)
	require.NoError(t, err)
	require.Equal(t, "Alpha", found.Name)
}

func TestProfileRepository_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByName("nope")
	var notFound *profile.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "nope", notFound.Name)
}

func TestProfileRepository_List(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(testProfile(t, "Bravo")))
	require.NoError(t, repo.Save(testProfile(t, "Alpha")))

	profiles, err := repo.List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, "Alpha", profiles[0].Name, "list is ordered by name")
	require.Equal(t, "Bravo", profiles[1].Name)
	require.NotEmpty(t, profiles[0].Bindings(profile.EnvSpace), "list loads contents")
}

func TestProfileRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(testProfile(t, "Alpha")))
	require.NoError(t, repo.Delete("Alpha"))

	_, err := repo.FindByName("Alpha")
	var notFound *profile.NotFoundError
	require.True(t, errors.As(err, &notFound))

	err = repo.Delete("Alpha")
	require.True(t, errors.As(err, &notFound), "deleting twice reports not found")
}

func TestProfileRepository_RoundTripThroughService(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Save(profile.New("Alpha")))

	p, err := repo.FindByName("Alpha")
	require.NoError(t, err)
	p.Bindings(profile.EnvSpace)["F1"] = keybind.Binding{
		Key:      "F1",
		Commands: []keybind.CommandEntry{keybind.NewCommandEntry(`say "hi"`)},
		Raw:      `say "hi"`,
	}
	require.NoError(t, repo.Save(p))

	found, err := repo.FindByName("Alpha")
	require.NoError(t, err)
	entry := found.Bindings(profile.EnvSpace)["F1"].Commands[0]
	require.Equal(t, "communication", entry.Type)
	require.Equal(t, "hi", entry.Parameters["message"])
}
