package repo

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when an insert violates the unique
// constraint on users.username.
var ErrDuplicateUsername = errors.New("username already registered")
