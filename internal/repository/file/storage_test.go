package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	"taskManager/internal/repository"
	"taskManager/internal/repository/file"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(t *testing.T) file.Params {
	dir := t.TempDir()
	return file.Params{
		TasksPath:       filepath.Join(dir, "tasks.txt"),
		UsersPath:       filepath.Join(dir, "user.txt"),
		AdminUsers:      []string{"admin"},
		DefaultUsername: "admin",
		DefaultPassword: "password",
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTask(id int, owner string) *task.Task {
	return &task.Task{
		ID:           id,
		Owner:        owner,
		Title:        "Test Task",
		Description:  "Test Description",
		DueDate:      date(2025, time.June, 1),
		AssignedDate: date(2025, time.May, 1),
	}
}

// TestStorage_Load_SeedsMissingFiles checks that absent backing files are
// created: an empty tasks file and a users file with the default account.
func TestStorage_Load_SeedsMissingFiles(t *testing.T) {
	ctx := context.Background()
	params := testParams(t)
	storage := file.NewStorage(params)

	require.NoError(t, storage.Load(ctx))

	tasksData, err := os.ReadFile(params.TasksPath)
	require.NoError(t, err)
	assert.Empty(t, tasksData)

	usersData, err := os.ReadFile(params.UsersPath)
	require.NoError(t, err)
	assert.Equal(t, "admin;password", string(usersData))

	admin, err := storage.LookupUser(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)
}

func TestStorage_Load_ParsesExistingFiles(t *testing.T) {
	ctx := context.Background()
	params := testParams(t)

	require.NoError(t, os.WriteFile(params.TasksPath, []byte(
		"alice;First;do it;23 Sep 2024;01 Jan 2024;No;1\n"+
			"\n"+
			"bob;Second;done already;05 Mar 2024;01 Jan 2024;Yes;2\n"), 0644))
	require.NoError(t, os.WriteFile(params.UsersPath, []byte(
		"admin;password\nalice;a\nbob;b"), 0644))

	storage := file.NewStorage(params)
	require.NoError(t, storage.Load(ctx))

	tasks, err := storage.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "First", tasks[0].Title)
	assert.True(t, tasks[1].Completed)

	users, err := storage.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	// file order is preserved for report iteration
	assert.Equal(t, "admin", users[0].Name)
	assert.Equal(t, "alice", users[1].Name)
	assert.Equal(t, "bob", users[2].Name)
	assert.Equal(t, user.RoleAdmin, users[0].Role)
	assert.Equal(t, user.RoleUser, users[1].Role)
}

// TestStorage_Load_MalformedLineIsFatal checks that a bad record aborts
// the load instead of being skipped.
func TestStorage_Load_MalformedLineIsFatal(t *testing.T) {
	ctx := context.Background()

	t.Run("tasks file", func(t *testing.T) {
		params := testParams(t)
		require.NoError(t, os.WriteFile(params.TasksPath, []byte("not a task line"), 0644))

		err := file.NewStorage(params).Load(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrMalformedRecord)
	})

	t.Run("users file", func(t *testing.T) {
		params := testParams(t)
		require.NoError(t, os.WriteFile(params.UsersPath, []byte("admin password"), 0644))

		err := file.NewStorage(params).Load(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrMalformedRecord)
	})
}

// TestStorage_Create_PersistsAcrossReload checks the full-file rewrite by
// loading a second storage from the same paths.
func TestStorage_Create_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	params := testParams(t)

	storage := file.NewStorage(params)
	require.NoError(t, storage.Load(ctx))
	require.NoError(t, storage.Create(ctx, newTask(1, "admin")))
	require.NoError(t, storage.Create(ctx, newTask(2, "admin")))

	reloaded := file.NewStorage(params)
	require.NoError(t, reloaded.Load(ctx))

	tasks, err := reloaded.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 1, tasks[0].ID)
	assert.Equal(t, 2, tasks[1].ID)
}

func TestStorage_Update(t *testing.T) {
	ctx := context.Background()
	params := testParams(t)

	storage := file.NewStorage(params)
	require.NoError(t, storage.Load(ctx))

	created := newTask(1, "admin")
	require.NoError(t, storage.Create(ctx, created))

	created.Completed = true
	require.NoError(t, storage.Update(ctx, created))

	reloaded := file.NewStorage(params)
	require.NoError(t, reloaded.Load(ctx))
	got, err := reloaded.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	err = storage.Update(ctx, newTask(99, "admin"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := file.NewStorage(testParams(t))
	require.NoError(t, storage.Load(ctx))

	_, err := storage.GetByID(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_GetByOwner(t *testing.T) {
	ctx := context.Background()
	storage := file.NewStorage(testParams(t))
	require.NoError(t, storage.Load(ctx))

	require.NoError(t, storage.Create(ctx, newTask(1, "alice")))
	require.NoError(t, storage.Create(ctx, newTask(2, "bob")))
	require.NoError(t, storage.Create(ctx, newTask(3, "alice")))

	mine, err := storage.GetByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 1, mine[0].ID)
	assert.Equal(t, 3, mine[1].ID)

	none, err := storage.GetByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	params := testParams(t)
	storage := file.NewStorage(params)
	require.NoError(t, storage.Load(ctx))

	require.NoError(t, storage.CreateUser(ctx, &user.User{Name: "alice", Password: "a", Role: user.RoleUser}))

	err := storage.CreateUser(ctx, &user.User{Name: "alice", Password: "other", Role: user.RoleUser})
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)

	reloaded := file.NewStorage(params)
	require.NoError(t, reloaded.Load(ctx))
	users, err := reloaded.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Name)
	assert.Equal(t, "alice", users[1].Name)
}
