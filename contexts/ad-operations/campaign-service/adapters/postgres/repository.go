package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"advidly/contexts/ad-operations/campaign-service/domain/entities"
	domainerrors "advidly/contexts/ad-operations/campaign-service/domain/errors"

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

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) (entities.Campaign, error) {
	row := campaignModelFromEntity(campaign)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID int64) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).First(&row, campaignID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCampaignsByUser(ctx context.Context, userID int64) ([]entities.Campaign, error) {
	var rows []campaignModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row := campaignModelFromEntity(campaign)
	row.ID = campaign.ID
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("id = ?", campaign.ID).
		Select("*").
		Omit("id").
		Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) DeleteCampaign(ctx context.Context, campaignID int64) error {
	result := r.db.WithContext(ctx).Delete(&campaignModel{}, campaignID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) CreateAd(ctx context.Context, ad entities.Ad) (entities.Ad, error) {
	row := adModelFromEntity(ad)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Ad{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAd(ctx context.Context, adID int64) (entities.Ad, error) {
	var row adModel
	err := r.db.WithContext(ctx).First(&row, adID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ad{}, domainerrors.ErrAdNotFound
		}
		return entities.Ad{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListAdsByUser(ctx context.Context, userID int64) ([]entities.Ad, error) {
	return r.listAds(ctx, "user_id = ?", userID)
}

func (r *Repository) ListAdsByCampaign(ctx context.Context, campaignID int64) ([]entities.Ad, error) {
	return r.listAds(ctx, "campaign_id = ?", campaignID)
}

func (r *Repository) listAds(ctx context.Context, condition string, value int64) ([]entities.Ad, error) {
	var rows []adModel
	err := r.db.WithContext(ctx).
		Where(condition, value).
		Order("created_at DESC, id DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Ad, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateAd(ctx context.Context, ad entities.Ad) error {
	row := adModelFromEntity(ad)
	row.ID = ad.ID
	result := r.db.WithContext(ctx).
		Model(&adModel{}).
		Where("id = ?", ad.ID).
		Select("*").
		Omit("id").
		Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAdNotFound
	}
	return nil
}

func (r *Repository) DeleteAd(ctx context.Context, adID int64) error {
	result := r.db.WithContext(ctx).Delete(&adModel{}, adID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAdNotFound
	}
	return nil
}

// ApplyAdEngagement increments counters atomically in the database so
// concurrent consumers do not lose updates.
func (r *Repository) ApplyAdEngagement(ctx context.Context, adID int64, views int64, clicks int64) error {
	result := r.db.WithContext(ctx).
		Model(&adModel{}).
		Where("id = ?", adID).
		Updates(map[string]any{
			"views":  gorm.Expr("views + ?", views),
			"clicks": gorm.Expr("clicks + ?", clicks),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAdNotFound
	}
	return nil
}

type campaignModel struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         int64      `gorm:"column:user_id;index"`
	Name           string     `gorm:"column:name"`
	Status         string     `gorm:"column:status"`
	Budget         float64    `gorm:"column:budget"`
	Spent          float64    `gorm:"column:spent"`
	StartDate      time.Time  `gorm:"column:start_date"`
	EndDate        *time.Time `gorm:"column:end_date"`
	TargetAudience string     `gorm:"column:target_audience"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(item entities.Campaign) campaignModel {
	return campaignModel{
		UserID:         item.UserID,
		Name:           item.Name,
		Status:         string(item.Status),
		Budget:         item.Budget,
		Spent:          item.Spent,
		StartDate:      item.StartDate,
		EndDate:        item.EndDate,
		TargetAudience: item.TargetAudience,
		CreatedAt:      item.CreatedAt,
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		Status:         entities.CampaignStatus(m.Status),
		Budget:         m.Budget,
		Spent:          m.Spent,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		TargetAudience: m.TargetAudience,
		CreatedAt:      m.CreatedAt,
	}
}

type adModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;index"`
	CampaignID  *int64    `gorm:"column:campaign_id;index"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	FilePath    string    `gorm:"column:file_path"`
	Duration    int       `gorm:"column:duration"`
	Status      string    `gorm:"column:status"`
	Views       int64     `gorm:"column:views"`
	Clicks      int64     `gorm:"column:clicks"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (adModel) TableName() string {
	return "ads"
}

func adModelFromEntity(item entities.Ad) adModel {
	return adModel{
		UserID:      item.UserID,
		CampaignID:  item.CampaignID,
		Title:       item.Title,
		Description: item.Description,
		FilePath:    item.FilePath,
		Duration:    item.Duration,
		Status:      string(item.Status),
		Views:       item.Views,
		Clicks:      item.Clicks,
		CreatedAt:   item.CreatedAt,
	}
}

func (m adModel) toEntity() entities.Ad {
	return entities.Ad{
		ID:          m.ID,
		UserID:      m.UserID,
		CampaignID:  m.CampaignID,
		Title:       m.Title,
		Description: m.Description,
		FilePath:    m.FilePath,
		Duration:    m.Duration,
		Status:      entities.AdStatus(m.Status),
		Views:       m.Views,
		Clicks:      m.Clicks,
		CreatedAt:   m.CreatedAt,
	}
}
