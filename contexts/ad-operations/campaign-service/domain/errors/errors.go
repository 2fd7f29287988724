package errors

import "errors"

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrAdNotFound       = errors.New("ad not found")
	ErrForbidden        = errors.New("entity belongs to another user")
	ErrInvalidRequest   = errors.New("invalid campaign input")
	ErrCampaignNotOwned = errors.New("campaign does not exist or belongs to another user")
)
