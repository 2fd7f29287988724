package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"advidly/contexts/identity-access/account-service/domain/entities"
	domainerrors "advidly/contexts/identity-access/account-service/domain/errors"

	"github.com/google/uuid"
)

// Store keeps one map per entity kind with per-kind auto-incrementing ids.
// Identifiers are never reused within a process lifetime.
type Store struct {
	mu sync.RWMutex

	users           map[int64]entities.User
	companyProfiles map[int64]entities.CompanyProfile
	creatorProfiles map[int64]entities.CreatorProfile
	sessions        map[string]entities.Session

	nextUserID           int64
	nextCompanyProfileID int64
	nextCreatorProfileID int64
}

func NewStore() *Store {
	return &Store{
		users:           make(map[int64]entities.User),
		companyProfiles: make(map[int64]entities.CompanyProfile),
		creatorProfiles: make(map[int64]entities.CreatorProfile),
		sessions:        make(map[string]entities.Session),

		nextUserID:           1,
		nextCompanyProfileID: 1,
		nextCreatorProfileID: 1,
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return entities.User{}, domainerrors.ErrEmailTaken
		}
		if strings.EqualFold(existing.Username, user.Username) {
			return entities.User{}, domainerrors.ErrUsernameTaken
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) GetUser(_ context.Context, userID int64) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, strings.TrimSpace(email)) {
			return user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) CreateCompanyProfile(_ context.Context, profile entities.CompanyProfile) (entities.CompanyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.companyProfiles {
		if existing.UserID == profile.UserID {
			return entities.CompanyProfile{}, domainerrors.ErrProfileExists
		}
	}

	profile.ID = s.nextCompanyProfileID
	s.nextCompanyProfileID++
	s.companyProfiles[profile.ID] = profile
	return profile, nil
}

func (s *Store) CreateCreatorProfile(_ context.Context, profile entities.CreatorProfile) (entities.CreatorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.creatorProfiles {
		if existing.UserID == profile.UserID {
			return entities.CreatorProfile{}, domainerrors.ErrProfileExists
		}
	}

	profile.ID = s.nextCreatorProfileID
	s.nextCreatorProfileID++
	s.creatorProfiles[profile.ID] = profile
	return profile, nil
}

func (s *Store) GetCompanyProfileByUser(_ context.Context, userID int64) (entities.CompanyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, profile := range s.companyProfiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return entities.CompanyProfile{}, domainerrors.ErrUserNotFound
}

func (s *Store) GetCreatorProfileByUser(_ context.Context, userID int64) (entities.CreatorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, profile := range s.creatorProfiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return entities.CreatorProfile{}, domainerrors.ErrUserNotFound
}

func (s *Store) CreateSession(_ context.Context, session entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Token] = session
	return nil
}

func (s *Store) GetSession(_ context.Context, token string) (entities.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[token]
	if !exists {
		return entities.Session{}, false, nil
	}
	return session, true, nil
}

func (s *Store) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			pruned++
		}
	}
	return pruned, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewToken(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
