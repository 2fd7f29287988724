package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"advidly/contexts/creator-studio/video-service/domain/entities"
	domainerrors "advidly/contexts/creator-studio/video-service/domain/errors"
	"advidly/contexts/creator-studio/video-service/ports"
	"advidly/internal/shared/events"
)

const (
	placementTrackedTopic = "placement.tracked"

	// Flat payout per thousand placement views. Keeps creator earnings a
	// pure function of tracked engagement.
	earningsPerThousandViews = 2.5
)

type Service struct {
	Videos          ports.VideoRepository
	Placements      ports.PlacementRepository
	Clock           ports.Clock
	Publisher       ports.EventPublisher
	ProcessingDelay time.Duration
	Logger          *slog.Logger
}

func (s Service) CreateVideo(ctx context.Context, actorUserID int64, input ports.CreateVideoInput) (entities.Video, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.RawFilePath) == "" {
		return entities.Video{}, domainerrors.ErrInvalidRequest
	}
	placement := input.AdPlacement
	if placement == "" {
		placement = entities.AdPlacementPreRoll
	}
	if !entities.IsSupportedAdPlacement(placement) {
		return entities.Video{}, domainerrors.ErrInvalidRequest
	}
	if len(input.AdPreferences) > 0 && !json.Valid(input.AdPreferences) {
		return entities.Video{}, domainerrors.ErrInvalidRequest
	}

	now := s.now()
	video, err := s.Videos.CreateVideo(ctx, entities.Video{
		UserID:        actorUserID,
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		Category:      strings.TrimSpace(input.Category),
		RawFilePath:   input.RawFilePath,
		Status:        entities.VideoStatusProcessing,
		AdPreferences: input.AdPreferences,
		AdPlacement:   placement,
		ProcessAfter:  now.Add(s.processingDelay()),
		CreatedAt:     now,
	})
	if err != nil {
		return entities.Video{}, err
	}

	ResolveLogger(s.Logger).Info("video accepted for processing",
		"event", "video_created",
		"module", "creator-studio/video-service",
		"layer", "application",
		"video_id", video.ID,
		"user_id", actorUserID,
	)
	return video, nil
}

func (s Service) GetVideo(ctx context.Context, actorUserID int64, videoID int64) (entities.Video, error) {
	video, err := s.Videos.GetVideo(ctx, videoID)
	if err != nil {
		return entities.Video{}, err
	}
	if video.UserID != actorUserID {
		return entities.Video{}, domainerrors.ErrForbidden
	}
	return video, nil
}

func (s Service) ListVideos(ctx context.Context, actorUserID int64) ([]entities.Video, error) {
	return s.Videos.ListVideosByUser(ctx, actorUserID)
}

func (s Service) PatchVideo(ctx context.Context, actorUserID int64, videoID int64, patch ports.VideoPatch) (entities.Video, error) {
	video, err := s.GetVideo(ctx, actorUserID, videoID)
	if err != nil {
		return entities.Video{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return entities.Video{}, domainerrors.ErrInvalidRequest
		}
		video.Title = title
	}
	if patch.Description != nil {
		video.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		video.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Status != nil {
		if !entities.IsSupportedVideoStatus(*patch.Status) {
			return entities.Video{}, domainerrors.ErrInvalidRequest
		}
		video.Status = *patch.Status
	}
	if patch.AdPlacement != nil {
		if !entities.IsSupportedAdPlacement(*patch.AdPlacement) {
			return entities.Video{}, domainerrors.ErrInvalidRequest
		}
		video.AdPlacement = *patch.AdPlacement
	}
	if len(patch.AdPreferences) > 0 {
		if !json.Valid(patch.AdPreferences) {
			return entities.Video{}, domainerrors.ErrInvalidRequest
		}
		video.AdPreferences = patch.AdPreferences
	}

	if err := s.Videos.UpdateVideo(ctx, video); err != nil {
		return entities.Video{}, err
	}
	return video, nil
}

// DeleteVideo removes the record and its placements, returning the deleted
// video so the route layer can unlink raw, processed and thumbnail files.
// A video still waiting on the processing sweep simply stops existing, so
// the promotion never happens.
func (s Service) DeleteVideo(ctx context.Context, actorUserID int64, videoID int64) (entities.Video, error) {
	video, err := s.GetVideo(ctx, actorUserID, videoID)
	if err != nil {
		return entities.Video{}, err
	}
	if err := s.Videos.DeleteVideo(ctx, videoID); err != nil {
		return entities.Video{}, err
	}
	if err := s.Placements.DeletePlacementsByVideo(ctx, videoID); err != nil {
		return entities.Video{}, err
	}
	return video, nil
}

// ResolveDownload returns the best available file for the video and counts
// the retrieval as a view.
func (s Service) ResolveDownload(ctx context.Context, actorUserID int64, videoID int64) (string, error) {
	video, err := s.GetVideo(ctx, actorUserID, videoID)
	if err != nil {
		return "", err
	}

	path := video.ProcessedFilePath
	if path == "" {
		path = video.RawFilePath
	}
	if path == "" {
		return "", domainerrors.ErrVideoNotReady
	}

	if err := s.Videos.IncrementVideoViews(ctx, videoID); err != nil {
		return "", err
	}
	return path, nil
}

func (s Service) CreatePlacement(ctx context.Context, actorUserID int64, videoID int64, input ports.CreatePlacementInput) (entities.Placement, error) {
	if input.AdID <= 0 || input.PlacementTime < 0 {
		return entities.Placement{}, domainerrors.ErrInvalidRequest
	}
	if _, err := s.GetVideo(ctx, actorUserID, videoID); err != nil {
		return entities.Placement{}, err
	}

	placement, err := s.Placements.CreatePlacement(ctx, entities.Placement{
		VideoID:       videoID,
		AdID:          input.AdID,
		PlacementTime: input.PlacementTime,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return entities.Placement{}, err
	}

	ResolveLogger(s.Logger).Info("placement created",
		"event", "placement_created",
		"module", "creator-studio/video-service",
		"layer", "application",
		"placement_id", placement.ID,
		"video_id", videoID,
		"ad_id", input.AdID,
	)
	return placement, nil
}

func (s Service) ListPlacements(ctx context.Context, actorUserID int64, videoID int64) ([]entities.Placement, error) {
	if _, err := s.GetVideo(ctx, actorUserID, videoID); err != nil {
		return nil, err
	}
	return s.Placements.ListPlacementsByVideo(ctx, videoID)
}

// TrackPlacement records engagement against a placement and relays it to
// the ad side as a placement.tracked event. Tracking carries no ownership
// check: it is driven by playback, not by the creator.
func (s Service) TrackPlacement(ctx context.Context, placementID int64, input ports.TrackPlacementInput) (entities.Placement, error) {
	if input.Views < 0 || input.Clicks < 0 || (input.Views == 0 && input.Clicks == 0) {
		return entities.Placement{}, domainerrors.ErrInvalidRequest
	}

	placement, err := s.Placements.GetPlacement(ctx, placementID)
	if err != nil {
		return entities.Placement{}, err
	}
	if err := s.Placements.ApplyPlacementEngagement(ctx, placementID, input.Views, input.Clicks); err != nil {
		return entities.Placement{}, err
	}
	placement.Views += input.Views
	placement.Clicks += input.Clicks

	if s.Publisher != nil {
		envelope := events.Envelope{
			EventID:       uuid.NewString(),
			EventType:     placementTrackedTopic,
			SourceService: "video-service",
			OccurredAtUTC: s.now(),
			EntityType:    "placement",
			EntityID:      placement.ID,
			Payload: map[string]any{
				"ad_id":  placement.AdID,
				"views":  input.Views,
				"clicks": input.Clicks,
			},
		}
		if err := s.Publisher.Publish(ctx, placementTrackedTopic, envelope); err != nil {
			ResolveLogger(s.Logger).Error("placement event publish failed",
				"event", "placement_publish_failed",
				"module", "creator-studio/video-service",
				"layer", "application",
				"placement_id", placement.ID,
				"error", err.Error(),
			)
		}
	}
	return placement, nil
}

// CreatorSummary aggregates stored counters only, so repeated calls with no
// new activity return identical numbers.
func (s Service) CreatorSummary(ctx context.Context, actorUserID int64) (ports.CreatorSummary, error) {
	videos, err := s.Videos.ListVideosByUser(ctx, actorUserID)
	if err != nil {
		return ports.CreatorSummary{}, err
	}
	placements, err := s.Placements.ListPlacementsByUser(ctx, actorUserID)
	if err != nil {
		return ports.CreatorSummary{}, err
	}

	summary := ports.CreatorSummary{
		TotalVideos:     len(videos),
		TotalPlacements: len(placements),
	}
	for _, video := range videos {
		switch video.Status {
		case entities.VideoStatusUploaded, entities.VideoStatusProcessing:
			summary.ProcessingVideos++
		case entities.VideoStatusReady:
			summary.ReadyVideos++
		case entities.VideoStatusPublished:
			summary.PublishedVideos++
		}
		summary.TotalViews += video.Views
	}
	for _, placement := range placements {
		summary.PlacementViews += placement.Views
		summary.PlacementClicks += placement.Clicks
	}
	summary.EstimatedEarnings = float64(summary.PlacementViews) / 1000 * earningsPerThousandViews
	return summary, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) processingDelay() time.Duration {
	if s.ProcessingDelay <= 0 {
		return 10 * time.Second
	}
	return s.ProcessingDelay
}
