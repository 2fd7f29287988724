package ports

import (
	"context"
	"time"

	"advidly/contexts/identity-access/account-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

// TokenGenerator issues opaque session tokens.
type TokenGenerator interface {
	NewToken(ctx context.Context) (string, error)
}

type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
	FullName        string
	UserType        entities.UserType
}

type UserRepository interface {
	// CreateUser assigns the next user id; uniqueness of email and username
	// is case-insensitive.
	CreateUser(ctx context.Context, user entities.User) (entities.User, error)
	GetUser(ctx context.Context, userID int64) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)

	CreateCompanyProfile(ctx context.Context, profile entities.CompanyProfile) (entities.CompanyProfile, error)
	CreateCreatorProfile(ctx context.Context, profile entities.CreatorProfile) (entities.CreatorProfile, error)
	GetCompanyProfileByUser(ctx context.Context, userID int64) (entities.CompanyProfile, error)
	GetCreatorProfileByUser(ctx context.Context, userID int64) (entities.CreatorProfile, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session entities.Session) error
	GetSession(ctx context.Context, token string) (entities.Session, bool, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
