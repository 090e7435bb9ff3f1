package app

import (
	"context"
	"fmt"
	"os"

	"taskManager/internal/cli"
	"taskManager/internal/config"
	"taskManager/internal/logger"
	"taskManager/internal/report"
	"taskManager/internal/repository/file"
	"taskManager/internal/service"
)

type App struct {
	config  *config.Config
	storage *file.Storage
	tasks   service.TaskService
	auth    service.AuthService
	reports *report.Generator
	runner  *cli.Runner
	// shutdown hooks, run in reverse registration order
	shutdowns []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Sync()
	})

	a.storage = file.NewStorage(file.Params{
		TasksPath:       a.config.Storage.TasksFile,
		UsersPath:       a.config.Storage.UsersFile,
		AdminUsers:      a.config.Auth.AdminUsers,
		DefaultUsername: a.config.Auth.DefaultUsername,
		DefaultPassword: a.config.Auth.DefaultPassword,
	})
	if err := a.storage.Load(ctx); err != nil {
		return fmt.Errorf("loading storage: %w", err)
	}

	a.tasks = service.NewTaskService(a.storage, a.storage)
	a.auth = service.NewAuthService(a.storage)
	a.reports = report.NewGenerator(a.storage, a.storage,
		a.config.Storage.TaskOverviewFile,
		a.config.Storage.UserOverviewFile)
	a.runner = cli.NewRunner(os.Stdin, os.Stdout, &a.tasks, &a.auth, a.reports)

	return nil
}

func (a *App) Run(ctx context.Context) error {
	logger.Info("App: interactive session started")
	return a.runner.Run(ctx)
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
