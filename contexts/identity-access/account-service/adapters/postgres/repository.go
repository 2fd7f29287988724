package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"advidly/contexts/identity-access/account-service/domain/entities"
	domainerrors "advidly/contexts/identity-access/account-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	row := userModelFromEntity(user)

	var taken int64
	if err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("email_lower = ?", row.EmailLower).
		Count(&taken).Error; err != nil {
		return entities.User{}, err
	}
	if taken > 0 {
		return entities.User{}, domainerrors.ErrEmailTaken
	}
	if err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("username_lower = ?", row.UsernameLower).
		Count(&taken).Error; err != nil {
		return entities.User{}, err
	}
	if taken > 0 {
		return entities.User{}, domainerrors.ErrUsernameTaken
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrEmailTaken
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).First(&row, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email_lower = ?", entities.NormalizeEmail(email)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateCompanyProfile(ctx context.Context, profile entities.CompanyProfile) (entities.CompanyProfile, error) {
	row := companyProfileModel{
		UserID:      profile.UserID,
		CompanyName: strings.TrimSpace(profile.CompanyName),
		Industry:    strings.TrimSpace(profile.Industry),
		Website:     strings.TrimSpace(profile.Website),
		CreatedAt:   profile.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.CompanyProfile{}, domainerrors.ErrProfileExists
		}
		return entities.CompanyProfile{}, err
	}
	profile.ID = row.ID
	return profile, nil
}

func (r *Repository) CreateCreatorProfile(ctx context.Context, profile entities.CreatorProfile) (entities.CreatorProfile, error) {
	row := creatorProfileModel{
		UserID:          profile.UserID,
		DisplayName:     strings.TrimSpace(profile.DisplayName),
		Category:        strings.TrimSpace(profile.Category),
		SubscriberCount: profile.SubscriberCount,
		CreatedAt:       profile.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.CreatorProfile{}, domainerrors.ErrProfileExists
		}
		return entities.CreatorProfile{}, err
	}
	profile.ID = row.ID
	return profile, nil
}

func (r *Repository) GetCompanyProfileByUser(ctx context.Context, userID int64) (entities.CompanyProfile, error) {
	var row companyProfileModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.CompanyProfile{}, domainerrors.ErrUserNotFound
		}
		return entities.CompanyProfile{}, err
	}
	return entities.CompanyProfile{
		ID:          row.ID,
		UserID:      row.UserID,
		CompanyName: row.CompanyName,
		Industry:    row.Industry,
		Website:     row.Website,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (r *Repository) GetCreatorProfileByUser(ctx context.Context, userID int64) (entities.CreatorProfile, error) {
	var row creatorProfileModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.CreatorProfile{}, domainerrors.ErrUserNotFound
		}
		return entities.CreatorProfile{}, err
	}
	return entities.CreatorProfile{
		ID:              row.ID,
		UserID:          row.UserID,
		DisplayName:     row.DisplayName,
		Category:        row.Category,
		SubscriberCount: row.SubscriberCount,
		CreatedAt:       row.CreatedAt,
	}, nil
}

func (r *Repository) CreateSession(ctx context.Context, session entities.Session) error {
	row := sessionModel{
		Token:     session.Token,
		UserID:    session.UserID,
		UserType:  string(session.UserType),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetSession(ctx context.Context, token string) (entities.Session, bool, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Session{}, false, nil
		}
		return entities.Session{}, false, err
	}
	return entities.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		UserType:  entities.UserType(row.UserType),
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, true, nil
}

func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&sessionModel{}).Error
}

func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&sessionModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type userModel struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email         string    `gorm:"column:email"`
	EmailLower    string    `gorm:"column:email_lower;uniqueIndex"`
	Username      string    `gorm:"column:username"`
	UsernameLower string    `gorm:"column:username_lower;uniqueIndex"`
	PasswordHash  string    `gorm:"column:password_hash"`
	FullName      string    `gorm:"column:full_name"`
	UserType      string    `gorm:"column:user_type"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(item entities.User) userModel {
	return userModel{
		Email:         strings.TrimSpace(item.Email),
		EmailLower:    entities.NormalizeEmail(item.Email),
		Username:      strings.TrimSpace(item.Username),
		UsernameLower: entities.NormalizeUsername(item.Username),
		PasswordHash:  item.PasswordHash,
		FullName:      strings.TrimSpace(item.FullName),
		UserType:      string(item.UserType),
		CreatedAt:     item.CreatedAt,
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		UserType:     entities.UserType(m.UserType),
		CreatedAt:    m.CreatedAt,
	}
}

type companyProfileModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex"`
	CompanyName string    `gorm:"column:company_name"`
	Industry    string    `gorm:"column:industry"`
	Website     string    `gorm:"column:website"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (companyProfileModel) TableName() string {
	return "company_profiles"
}

type creatorProfileModel struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          int64     `gorm:"column:user_id;uniqueIndex"`
	DisplayName     string    `gorm:"column:display_name"`
	Category        string    `gorm:"column:category"`
	SubscriberCount int64     `gorm:"column:subscriber_count"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (creatorProfileModel) TableName() string {
	return "creator_profiles"
}

type sessionModel struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	UserType  string    `gorm:"column:user_type"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
}

func (sessionModel) TableName() string {
	return "sessions"
}
