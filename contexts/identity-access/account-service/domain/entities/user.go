package entities

import (
	"strings"
	"time"
)

type UserType string

const (
	UserTypeCompany    UserType = "company"
	UserTypeIndividual UserType = "individual"
)

func IsSupportedUserType(value UserType) bool {
	switch value {
	case UserTypeCompany, UserTypeIndividual:
		return true
	default:
		return false
	}
}

// User is the account record. PasswordHash never leaves the module.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	FullName     string
	UserType     UserType
	CreatedAt    time.Time
}

// CompanyProfile is the one-to-one company extension of a User.
type CompanyProfile struct {
	ID          int64
	UserID      int64
	CompanyName string
	Industry    string
	Website     string
	CreatedAt   time.Time
}

// CreatorProfile is the one-to-one creator extension of a User.
type CreatorProfile struct {
	ID              int64
	UserID          int64
	DisplayName     string
	Category        string
	SubscriberCount int64
	CreatedAt       time.Time
}

// Session is server-held state keyed by an opaque cookie token.
type Session struct {
	Token     string
	UserID    int64
	UserType  UserType
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func NormalizeUsername(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
