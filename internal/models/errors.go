package models

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a document whose name is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidName is returned for document names that are empty, unsafe,
	// or not .md/.txt.
	ErrInvalidName = errors.New("invalid document name")
	// ErrUnauthorized is returned when a mutating operation lacks a signed-in user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUsernameTaken is returned by signup for an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidUsername is returned by signup for an empty username.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidPassword is returned by signup for a too short password.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrStorage marks unreadable or corrupt persisted state.
	ErrStorage = errors.New("storage error")
)
