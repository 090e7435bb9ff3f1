// Package file implements the flat-file backed storage for tasks and
// user credentials. Both collections are loaded once at startup and the
// whole backing file is rewritten on every mutation.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"taskManager/internal/codec"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	"taskManager/internal/repository"

	"go.uber.org/zap"
)

type Params struct {
	TasksPath       string
	UsersPath       string
	AdminUsers      []string
	DefaultUsername string
	DefaultPassword string
}

type Storage struct {
	params Params
	admins map[string]struct{}

	mtx   *sync.RWMutex
	tasks []*task.Task
	users map[string]*user.User
	// usernames in file order, so reports iterate deterministically
	order []string
}

func NewStorage(params Params) *Storage {
	admins := make(map[string]struct{}, len(params.AdminUsers))
	for _, name := range params.AdminUsers {
		admins[name] = struct{}{}
	}

	return &Storage{
		params: params,
		admins: admins,
		mtx:    &sync.RWMutex{},
		tasks:  []*task.Task{},
		users:  make(map[string]*user.User),
		order:  []string{},
	}
}

// Load reads both backing files into memory, creating them when absent.
// The users file is seeded with the configured default account. Any line
// that fails to decode aborts the load: a store that cannot be fully
// parsed cannot be trusted.
func (s *Storage) Load(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.loadTasks(); err != nil {
		return err
	}
	if err := s.loadUsers(); err != nil {
		return err
	}

	logger.Info("Repository: storage loaded",
		zap.Int("tasks", len(s.tasks)),
		zap.Int("users", len(s.order)))
	return nil
}

func (s *Storage) loadTasks() error {
	data, err := readOrCreate(s.params.TasksPath, "")
	if err != nil {
		return fmt.Errorf("reading tasks file: %w", err)
	}

	s.tasks = s.tasks[:0]
	for _, line := range splitRecords(data) {
		t, err := codec.DecodeTask(line)
		if err != nil {
			return fmt.Errorf("tasks file %s: %w", s.params.TasksPath, err)
		}
		s.tasks = append(s.tasks, t)
	}
	return nil
}

func (s *Storage) loadUsers() error {
	seed := codec.EncodeUser(&user.User{
		Name:     s.params.DefaultUsername,
		Password: s.params.DefaultPassword,
	})

	data, err := readOrCreate(s.params.UsersPath, seed)
	if err != nil {
		return fmt.Errorf("reading users file: %w", err)
	}

	s.users = make(map[string]*user.User)
	s.order = s.order[:0]
	for _, line := range splitRecords(data) {
		u, err := codec.DecodeUser(line)
		if err != nil {
			return fmt.Errorf("users file %s: %w", s.params.UsersPath, err)
		}
		// the 2-field wire format carries no role; admins are named in config
		if _, ok := s.admins[u.Name]; ok {
			u.Role = user.RoleAdmin
		}
		s.users[u.Name] = u
		s.order = append(s.order, u.Name)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.tasks = append(s.tasks, taskToCreate)
	if err := s.persistTasks(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return err
	}
	return nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i, t := range s.tasks {
		if t.ID == taskToUpdate.ID {
			s.tasks[i] = taskToUpdate
			return s.persistTasks()
		}
	}
	return repository.ErrNotFound
}

func (s *Storage) GetByID(ctx context.Context, id int) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAll returns every task in insertion order.
func (s *Storage) GetAll(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, len(s.tasks))
	copy(res, s.tasks)
	return res, nil
}

func (s *Storage) GetByOwner(ctx context.Context, owner string) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, t := range s.tasks {
		if t.Owner == owner {
			res = append(res, t)
		}
	}
	return res, nil
}

// Users returns every user in file order.
func (s *Storage) Users(ctx context.Context) ([]*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*user.User, 0, len(s.order))
	for _, name := range s.order {
		res = append(res, s.users[name])
	}
	return res, nil
}

func (s *Storage) LookupUser(ctx context.Context, name string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *Storage) CreateUser(ctx context.Context, userToCreate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.users[userToCreate.Name]; ok {
		return repository.ErrDuplicateUser
	}
	if _, ok := s.admins[userToCreate.Name]; ok {
		userToCreate.Role = user.RoleAdmin
	}

	s.users[userToCreate.Name] = userToCreate
	s.order = append(s.order, userToCreate.Name)
	if err := s.persistUsers(); err != nil {
		delete(s.users, userToCreate.Name)
		s.order = s.order[:len(s.order)-1]
		return err
	}
	return nil
}

// persistTasks rewrites the whole tasks file from the in-memory slice.
// Callers must hold the write lock.
func (s *Storage) persistTasks() error {
	lines := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		lines = append(lines, codec.EncodeTask(t))
	}

	if err := os.WriteFile(s.params.TasksPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("writing tasks file: %w", err)
	}
	return nil
}

func (s *Storage) persistUsers() error {
	lines := make([]string, 0, len(s.order))
	for _, name := range s.order {
		lines = append(lines, codec.EncodeUser(s.users[name]))
	}

	if err := os.WriteFile(s.params.UsersPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("writing users file: %w", err)
	}
	return nil
}

func readOrCreate(path, seed string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		return "", err
	}
	logger.Info("Repository: backing file created", zap.String("path", path))
	return seed, nil
}

func splitRecords(data string) []string {
	res := []string{}
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		res = append(res, line)
	}
	return res
}
