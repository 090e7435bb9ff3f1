package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskManager/internal/codec"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/repository"

	"go.uber.org/zap"
)

type TaskService struct {
	tasks TaskRepository
	users UserRepository
}

func NewTaskService(tasks TaskRepository, users UserRepository) TaskService {
	return TaskService{
		tasks: tasks,
		users: users,
	}
}

// CreateTask validates the assignee and the free-text fields, assigns the
// next sequential id and today's assigned date, and persists the task.
// Nothing is mutated on a validation failure.
func (s *TaskService) CreateTask(ctx context.Context, owner, title, description string, dueDate time.Time) (*task.Task, error) {
	if _, err := s.users.LookupUser(ctx, owner); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Service: assignee is not registered", zap.String("owner", owner))
			return nil, NewUnknownUser(owner)
		}
		return nil, fmt.Errorf("looking up assignee: %w", err)
	}

	if !codec.ValidateField(title) {
		return nil, NewInvalidCharacter("title")
	}
	if !codec.ValidateField(description) {
		return nil, NewInvalidCharacter("description")
	}

	existing, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting tasks: %w", err)
	}

	newTask := &task.Task{
		ID:           len(existing) + 1,
		Owner:        owner,
		Title:        title,
		Description:  description,
		DueDate:      dueDate,
		AssignedDate: DateOnly(time.Now()),
		Completed:    false,
	}

	if err := s.tasks.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	logger.Info("Service: task created",
		zap.Int("id", newTask.ID),
		zap.String("owner", owner))
	return newTask, nil
}

func (s *TaskService) ListAll(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListMine(ctx context.Context, username string) ([]*task.Task, error) {
	tasks, err := s.tasks.GetByOwner(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing tasks of %s: %w", username, err)
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int) (*task.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: task not found", zap.Int("id", id))
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return t, nil
}

// MarkComplete is a terminal transition: there is no way back to open.
func (s *TaskService) MarkComplete(ctx context.Context, id int) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	t.Completed = true
	if err := s.tasks.Update(ctx, t); err != nil {
		return fmt.Errorf("completing task %d: %w", id, err)
	}

	logger.Info("Service: task completed", zap.Int("id", id))
	return nil
}

// EditTask applies the given options to an open task and persists it.
// Completed tasks are immutable. The new owner is checked for the
// delimiter but not for existence: referential integrity after creation
// is not enforced.
func (s *TaskService) EditTask(ctx context.Context, id int, options ...task.TaskOption) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if t.Completed {
		logger.Warn("Service: refusing to edit completed task", zap.Int("id", id))
		return NewAlreadyCompleted(id)
	}

	updated := *t
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&updated)
	}

	if !codec.ValidateField(updated.Owner) {
		return NewInvalidCharacter("owner")
	}

	*t = updated
	if err := s.tasks.Update(ctx, t); err != nil {
		return fmt.Errorf("updating task %d: %w", id, err)
	}

	logger.Info("Service: task updated", zap.Int("id", id))
	return nil
}

// DateOnly drops the time component; all stored dates are UTC midnights,
// matching what the codec parses back.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
