package service

import (
	"time"

	"taskManager/internal/models/user"

	"github.com/google/uuid"
)

// Session is a successful login. Exactly one session is live at a time.
type Session struct {
	ID        uuid.UUID
	User      *user.User
	StartedAt time.Time
}

func (s *Session) Username() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Name
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User.IsAdmin()
}
