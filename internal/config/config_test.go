package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskManager/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_MissingFileFallsBackToDefaults checks that the program runs
// without a config.yml, using the historical file names.
func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)

	assert.Equal(t, "tasks.txt", cfg.Storage.TasksFile)
	assert.Equal(t, "user.txt", cfg.Storage.UsersFile)
	assert.Equal(t, "task_overview.txt", cfg.Storage.TaskOverviewFile)
	assert.Equal(t, "user_overview.txt", cfg.Storage.UserOverviewFile)
	assert.Equal(t, []string{"admin"}, cfg.Auth.AdminUsers)
	assert.Equal(t, "admin", cfg.Auth.DefaultUsername)
	assert.Equal(t, "password", cfg.Auth.DefaultPassword)
}

func TestLoad_ParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  tasks_file: /data/tasks.txt
  users_file: /data/user.txt
logging:
  development: false
auth:
  admin_users:
    - root
    - admin
`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/tasks.txt", cfg.Storage.TasksFile)
	assert.Equal(t, "/data/user.txt", cfg.Storage.UsersFile)
	// unset keys keep their defaults
	assert.Equal(t, "task_overview.txt", cfg.Storage.TaskOverviewFile)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, []string{"root", "admin"}, cfg.Auth.AdminUsers)
}

func TestLoad_RejectsBadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [not a mapping"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
