package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskManager/internal/codec"
	"taskManager/internal/logger"
	"taskManager/internal/models/user"
	"taskManager/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) AuthService {
	return AuthService{
		users: users,
	}
}

// Authenticate checks the credentials and opens a session. An unknown
// user and a wrong password are distinct failures so the caller can
// report them separately; both are plain rejections.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.users.LookupUser(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Service: login for unknown user", zap.String("username", username))
			return nil, NewUnknownUser(username)
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if u.Password != password {
		logger.Warn("Service: wrong password", zap.String("username", username))
		return nil, NewWrongPassword(username)
	}

	session := &Session{
		ID:        uuid.New(),
		User:      u,
		StartedAt: time.Now(),
	}

	logger.Info("Service: login successful",
		zap.String("username", username),
		zap.String("session_id", session.ID.String()))
	return session, nil
}

func (s *AuthService) UserExists(ctx context.Context, username string) (bool, error) {
	_, err := s.users.LookupUser(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("looking up user: %w", err)
	}
	return true, nil
}

// Register adds a new account. New users always get the plain role;
// admin identities come from config at load time.
func (s *AuthService) Register(ctx context.Context, username, password, confirm string) (*user.User, error) {
	taken, err := s.UserExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		logger.Warn("Service: username taken", zap.String("username", username))
		return nil, NewDuplicateUsername(username)
	}

	if !codec.ValidateField(username) || !codec.ValidateField(password) {
		return nil, NewInvalidCharacter("username or password")
	}

	if password != confirm {
		return nil, NewPasswordMismatch()
	}

	newUser := &user.User{
		Name:     username,
		Password: password,
		Role:     user.RoleUser,
	}

	if err := s.users.CreateUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	logger.Info("Service: user registered", zap.String("username", username))
	return newUser, nil
}
