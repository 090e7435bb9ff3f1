package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Auth    AuthConfig    `yaml:"auth"`
}

type StorageConfig struct {
	TasksFile        string `yaml:"tasks_file"`
	UsersFile        string `yaml:"users_file"`
	TaskOverviewFile string `yaml:"task_overview_file"`
	UserOverviewFile string `yaml:"user_overview_file"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type AuthConfig struct {
	AdminUsers      []string `yaml:"admin_users"`
	DefaultUsername string   `yaml:"default_username"`
	DefaultPassword string   `yaml:"default_password"`
}

func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			TasksFile:        "tasks.txt",
			UsersFile:        "user.txt",
			TaskOverviewFile: "task_overview.txt",
			UserOverviewFile: "user_overview.txt",
		},
		Logging: LoggingConfig{
			Development: true,
		},
		Auth: AuthConfig{
			AdminUsers:      []string{"admin"},
			DefaultUsername: "admin",
			DefaultPassword: "password",
		},
	}
}

// Load reads the yaml config at path. A missing file is not an error:
// the built-in defaults reproduce the historical file layout.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}
