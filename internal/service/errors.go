package service

import (
	"errors"
	"fmt"

	"taskManager/internal/repository"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeUnknownUser      = "UNKNOWN_USER"
	CodeWrongPassword    = "WRONG_PASSWORD"
	CodeInvalidCharacter = "INVALID_CHARACTER"
	CodeDuplicateUser    = "DUPLICATE_USERNAME"
	CodePasswordMismatch = "PASSWORD_MISMATCH"
	CodeAlreadyCompleted = "ALREADY_COMPLETED"
	CodeInvalidDate      = "INVALID_DATE"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

// CodeOf extracts the business code from an error chain, or "" when the
// error carries none.
func CodeOf(err error) string {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr.Code
	}
	return ""
}

func NewNotFound(id int) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("task %d not found", id),
		Details: map[string]any{"id": id},
		Err:     repository.ErrNotFound,
	}
}

func NewUnknownUser(name string) *BusinessError {
	return &BusinessError{
		Code:    CodeUnknownUser,
		Message: fmt.Sprintf("user %q does not exist", name),
		Details: map[string]any{"username": name},
	}
}

func NewWrongPassword(name string) *BusinessError {
	return &BusinessError{
		Code:    CodeWrongPassword,
		Message: "wrong password",
		Details: map[string]any{"username": name},
	}
}

func NewInvalidCharacter(field string) *BusinessError {
	return &BusinessError{
		Code:    CodeInvalidCharacter,
		Message: fmt.Sprintf("%s cannot contain the ';' character", field),
		Details: map[string]any{"field": field},
	}
}

func NewDuplicateUsername(name string) *BusinessError {
	return &BusinessError{
		Code:    CodeDuplicateUser,
		Message: fmt.Sprintf("username %q is already taken", name),
		Details: map[string]any{"username": name},
	}
}

func NewPasswordMismatch() *BusinessError {
	return &BusinessError{
		Code:    CodePasswordMismatch,
		Message: "passwords do not match",
	}
}

func NewAlreadyCompleted(id int) *BusinessError {
	return &BusinessError{
		Code:    CodeAlreadyCompleted,
		Message: fmt.Sprintf("task %d is completed and cannot be edited", id),
		Details: map[string]any{"id": id},
	}
}

func NewInvalidDate(value string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeInvalidDate,
		Message: fmt.Sprintf("date %q does not match the dd Mon yyyy format", value),
		Details: map[string]any{"value": value},
		Err:     err,
	}
}
