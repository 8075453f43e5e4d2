package errs

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("user with this username already exists")
	ErrEmailTaken    = errors.New("user with this email already exists")
	ErrBadPassword   = errors.New("incorrect password")
	ErrNotAvailable  = errors.New("book is not available")
	ErrInvalidFilter = errors.New("that filter doesn't exist")
)
