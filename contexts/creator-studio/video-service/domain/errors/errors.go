package errors

import "errors"

var (
	ErrVideoNotFound     = errors.New("video not found")
	ErrPlacementNotFound = errors.New("placement not found")
	ErrForbidden         = errors.New("entity belongs to another user")
	ErrInvalidRequest    = errors.New("invalid video input")
	ErrVideoNotReady     = errors.New("video has no downloadable file yet")
)
