package ports

import (
	"context"
	"encoding/json"
	"time"

	"advidly/contexts/creator-studio/video-service/domain/entities"
	"advidly/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

// EventPublisher pushes envelopes onto the bus for other modules.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type CreateVideoInput struct {
	Title         string
	Description   string
	Category      string
	RawFilePath   string
	AdPlacement   entities.AdPlacement
	AdPreferences json.RawMessage
}

// VideoPatch lists the creator-editable video fields.
type VideoPatch struct {
	Title         *string
	Description   *string
	Category      *string
	Status        *entities.VideoStatus
	AdPlacement   *entities.AdPlacement
	AdPreferences json.RawMessage
}

type CreatePlacementInput struct {
	AdID          int64
	PlacementTime int
}

type TrackPlacementInput struct {
	Views  int64
	Clicks int64
}

type CreatorSummary struct {
	TotalVideos       int
	ProcessingVideos  int
	ReadyVideos       int
	PublishedVideos   int
	TotalViews        int64
	TotalPlacements   int
	PlacementViews    int64
	PlacementClicks   int64
	EstimatedEarnings float64
}

type VideoRepository interface {
	// CreateVideo assigns the next video id.
	CreateVideo(ctx context.Context, video entities.Video) (entities.Video, error)
	GetVideo(ctx context.Context, videoID int64) (entities.Video, error)
	ListVideosByUser(ctx context.Context, userID int64) ([]entities.Video, error)
	// ListProcessable returns videos still processing whose ProcessAfter
	// moment has passed.
	ListProcessable(ctx context.Context, now time.Time, limit int) ([]entities.Video, error)
	UpdateVideo(ctx context.Context, video entities.Video) error
	DeleteVideo(ctx context.Context, videoID int64) error
	IncrementVideoViews(ctx context.Context, videoID int64) error
}

type PlacementRepository interface {
	CreatePlacement(ctx context.Context, placement entities.Placement) (entities.Placement, error)
	GetPlacement(ctx context.Context, placementID int64) (entities.Placement, error)
	ListPlacementsByVideo(ctx context.Context, videoID int64) ([]entities.Placement, error)
	ListPlacementsByUser(ctx context.Context, userID int64) ([]entities.Placement, error)
	ApplyPlacementEngagement(ctx context.Context, placementID int64, views int64, clicks int64) error
	DeletePlacementsByVideo(ctx context.Context, videoID int64) error
}
