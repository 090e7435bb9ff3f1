package repository

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrDuplicateUser   = errors.New("duplicate username")
)
