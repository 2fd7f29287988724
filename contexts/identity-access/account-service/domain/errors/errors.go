package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid registration input")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileExists      = errors.New("profile already exists for user")
	ErrSessionInvalid     = errors.New("session is missing or expired")
)
