package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"advidly/contexts/identity-access/account-service/domain/entities"
	domainerrors "advidly/contexts/identity-access/account-service/domain/errors"
	"advidly/contexts/identity-access/account-service/ports"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	Users      ports.UserRepository
	Sessions   ports.SessionRepository
	Clock      ports.Clock
	Tokens     ports.TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

func (s Service) Register(ctx context.Context, input ports.RegisterInput) (entities.User, error) {
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)
	fullName := strings.TrimSpace(input.FullName)

	if email == "" || !strings.Contains(email, "@") ||
		username == "" ||
		len(input.Password) < 8 ||
		fullName == "" ||
		!entities.IsSupportedUserType(input.UserType) {
		return entities.User{}, domainerrors.ErrInvalidRequest
	}
	if input.Password != input.ConfirmPassword {
		return entities.User{}, domainerrors.ErrInvalidRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, err
	}

	now := s.now()
	user, err := s.Users.CreateUser(ctx, entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		UserType:     input.UserType,
		CreatedAt:    now,
	})
	if err != nil {
		return entities.User{}, err
	}

	// Profile creation failures after user creation are not compensated; the
	// user record stays and the caller sees the error.
	switch user.UserType {
	case entities.UserTypeCompany:
		_, err = s.Users.CreateCompanyProfile(ctx, entities.CompanyProfile{
			UserID:      user.ID,
			CompanyName: user.FullName,
			CreatedAt:   now,
		})
	case entities.UserTypeIndividual:
		_, err = s.Users.CreateCreatorProfile(ctx, entities.CreatorProfile{
			UserID:      user.ID,
			DisplayName: user.FullName,
			CreatedAt:   now,
		})
	}
	if err != nil {
		return entities.User{}, err
	}

	ResolveLogger(s.Logger).Info("user registered",
		"event", "account_user_registered",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.ID,
		"user_type", string(user.UserType),
	)
	return user, nil
}

// Login returns the same sentinel for an unknown email and a wrong password
// so responses carry no account-enumeration signal.
func (s Service) Login(ctx context.Context, email string, password string) (entities.User, entities.Session, error) {
	user, err := s.Users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return entities.User{}, entities.Session{}, domainerrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return entities.User{}, entities.Session{}, domainerrors.ErrInvalidCredentials
	}

	token, err := s.Tokens.NewToken(ctx)
	if err != nil {
		return entities.User{}, entities.Session{}, err
	}

	now := s.now()
	session := entities.Session{
		Token:     token,
		UserID:    user.ID,
		UserType:  user.UserType,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL()),
	}
	if err := s.Sessions.CreateSession(ctx, session); err != nil {
		return entities.User{}, entities.Session{}, err
	}

	ResolveLogger(s.Logger).Info("user logged in",
		"event", "account_user_logged_in",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return user, session, nil
}

func (s Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.Sessions.DeleteSession(ctx, token)
}

func (s Service) GetUser(ctx context.Context, userID int64) (entities.User, error) {
	return s.Users.GetUser(ctx, userID)
}

// ValidateSession resolves a cookie token into session state. Expired
// sessions are deleted on observation.
func (s Service) ValidateSession(ctx context.Context, token string) (entities.Session, error) {
	if strings.TrimSpace(token) == "" {
		return entities.Session{}, domainerrors.ErrSessionInvalid
	}
	session, found, err := s.Sessions.GetSession(ctx, token)
	if err != nil {
		return entities.Session{}, err
	}
	if !found {
		return entities.Session{}, domainerrors.ErrSessionInvalid
	}
	if session.Expired(s.now()) {
		_ = s.Sessions.DeleteSession(ctx, token)
		return entities.Session{}, domainerrors.ErrSessionInvalid
	}
	return session, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) sessionTTL() time.Duration {
	if s.SessionTTL <= 0 {
		return 24 * time.Hour
	}
	return s.SessionTTL
}
