package store

import "errors"

var (
	ErrRunExists           = errors.New("run already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
)
