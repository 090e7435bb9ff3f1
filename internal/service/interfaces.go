package service

import (
	"context"

	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
)

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	GetAll(context.Context) ([]*task.Task, error)
	GetByOwner(context.Context, string) ([]*task.Task, error)
	GetByID(context.Context, int) (*task.Task, error)
}

type UserRepository interface {
	Users(context.Context) ([]*user.User, error)
	LookupUser(context.Context, string) (*user.User, error)
	CreateUser(context.Context, *user.User) error
}
