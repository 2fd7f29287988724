package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"advidly/contexts/creator-studio/video-service/domain/entities"
	domainerrors "advidly/contexts/creator-studio/video-service/domain/errors"

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

func (r *Repository) CreateVideo(ctx context.Context, video entities.Video) (entities.Video, error) {
	row := videoModelFromEntity(video)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Video{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetVideo(ctx context.Context, videoID int64) (entities.Video, error) {
	var row videoModel
	err := r.db.WithContext(ctx).First(&row, videoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Video{}, domainerrors.ErrVideoNotFound
		}
		return entities.Video{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListVideosByUser(ctx context.Context, userID int64) ([]entities.Video, error) {
	var rows []videoModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Video, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListProcessable(ctx context.Context, now time.Time, limit int) ([]entities.Video, error) {
	var rows []videoModel
	query := r.db.WithContext(ctx).
		Where("status = ? AND process_after <= ?", string(entities.VideoStatusProcessing), now).
		Order("process_after ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Video, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateVideo(ctx context.Context, video entities.Video) error {
	row := videoModelFromEntity(video)
	row.ID = video.ID
	result := r.db.WithContext(ctx).
		Model(&videoModel{}).
		Where("id = ?", video.ID).
		Select("*").
		Omit("id").
		Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVideoNotFound
	}
	return nil
}

func (r *Repository) DeleteVideo(ctx context.Context, videoID int64) error {
	result := r.db.WithContext(ctx).Delete(&videoModel{}, videoID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVideoNotFound
	}
	return nil
}

func (r *Repository) IncrementVideoViews(ctx context.Context, videoID int64) error {
	result := r.db.WithContext(ctx).
		Model(&videoModel{}).
		Where("id = ?", videoID).
		Update("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVideoNotFound
	}
	return nil
}

func (r *Repository) CreatePlacement(ctx context.Context, placement entities.Placement) (entities.Placement, error) {
	row := placementModel{
		VideoID:       placement.VideoID,
		AdID:          placement.AdID,
		PlacementTime: placement.PlacementTime,
		Views:         placement.Views,
		Clicks:        placement.Clicks,
		CreatedAt:     placement.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Placement{}, err
	}
	placement.ID = row.ID
	return placement, nil
}

func (r *Repository) GetPlacement(ctx context.Context, placementID int64) (entities.Placement, error) {
	var row placementModel
	err := r.db.WithContext(ctx).First(&row, placementID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Placement{}, domainerrors.ErrPlacementNotFound
		}
		return entities.Placement{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPlacementsByVideo(ctx context.Context, videoID int64) ([]entities.Placement, error) {
	var rows []placementModel
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("placement_time ASC, id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Placement, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPlacementsByUser(ctx context.Context, userID int64) ([]entities.Placement, error) {
	var rows []placementModel
	err := r.db.WithContext(ctx).
		Joins("JOIN videos ON videos.id = video_ads.video_id").
		Where("videos.user_id = ?", userID).
		Order("video_ads.placement_time ASC, video_ads.id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Placement, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ApplyPlacementEngagement(ctx context.Context, placementID int64, views int64, clicks int64) error {
	result := r.db.WithContext(ctx).
		Model(&placementModel{}).
		Where("id = ?", placementID).
		Updates(map[string]any{
			"views":  gorm.Expr("views + ?", views),
			"clicks": gorm.Expr("clicks + ?", clicks),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPlacementNotFound
	}
	return nil
}

func (r *Repository) DeletePlacementsByVideo(ctx context.Context, videoID int64) error {
	return r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&placementModel{}).Error
}

type videoModel struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID            int64     `gorm:"column:user_id;index"`
	Title             string    `gorm:"column:title"`
	Description       string    `gorm:"column:description"`
	Category          string    `gorm:"column:category"`
	RawFilePath       string    `gorm:"column:raw_file_path"`
	ProcessedFilePath string    `gorm:"column:processed_file_path"`
	ThumbnailPath     string    `gorm:"column:thumbnail_path"`
	Duration          int       `gorm:"column:duration"`
	Status            string    `gorm:"column:status;index"`
	AdPreferences     []byte    `gorm:"column:ad_preferences;type:jsonb"`
	AdPlacement       string    `gorm:"column:ad_placement"`
	Views             int64     `gorm:"column:views"`
	ProcessAfter      time.Time `gorm:"column:process_after;index"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (videoModel) TableName() string {
	return "videos"
}

func videoModelFromEntity(item entities.Video) videoModel {
	return videoModel{
		UserID:            item.UserID,
		Title:             item.Title,
		Description:       item.Description,
		Category:          item.Category,
		RawFilePath:       item.RawFilePath,
		ProcessedFilePath: item.ProcessedFilePath,
		ThumbnailPath:     item.ThumbnailPath,
		Duration:          item.Duration,
		Status:            string(item.Status),
		AdPreferences:     []byte(item.AdPreferences),
		AdPlacement:       string(item.AdPlacement),
		Views:             item.Views,
		ProcessAfter:      item.ProcessAfter,
		CreatedAt:         item.CreatedAt,
	}
}

func (m videoModel) toEntity() entities.Video {
	return entities.Video{
		ID:                m.ID,
		UserID:            m.UserID,
		Title:             m.Title,
		Description:       m.Description,
		Category:          m.Category,
		RawFilePath:       m.RawFilePath,
		ProcessedFilePath: m.ProcessedFilePath,
		ThumbnailPath:     m.ThumbnailPath,
		Duration:          m.Duration,
		Status:            entities.VideoStatus(m.Status),
		AdPreferences:     json.RawMessage(m.AdPreferences),
		AdPlacement:       entities.AdPlacement(m.AdPlacement),
		Views:             m.Views,
		ProcessAfter:      m.ProcessAfter,
		CreatedAt:         m.CreatedAt,
	}
}

type placementModel struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VideoID       int64     `gorm:"column:video_id;index"`
	AdID          int64     `gorm:"column:ad_id;index"`
	PlacementTime int       `gorm:"column:placement_time"`
	Views         int64     `gorm:"column:views"`
	Clicks        int64     `gorm:"column:clicks"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (placementModel) TableName() string {
	return "video_ads"
}

func (m placementModel) toEntity() entities.Placement {
	return entities.Placement{
		ID:            m.ID,
		VideoID:       m.VideoID,
		AdID:          m.AdID,
		PlacementTime: m.PlacementTime,
		Views:         m.Views,
		Clicks:        m.Clicks,
		CreatedAt:     m.CreatedAt,
	}
}
