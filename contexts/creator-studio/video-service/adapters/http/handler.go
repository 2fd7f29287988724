package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"advidly/contexts/creator-studio/video-service/application"
	"advidly/contexts/creator-studio/video-service/domain/entities"
	"advidly/contexts/creator-studio/video-service/ports"
	httptransport "advidly/contexts/creator-studio/video-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateVideoHandler(ctx context.Context, actorUserID int64, input ports.CreateVideoInput) (httptransport.VideoResponse, error) {
	video, err := h.Service.CreateVideo(ctx, actorUserID, input)
	if err != nil {
		return httptransport.VideoResponse{}, err
	}
	return toVideoResponse(video), nil
}

func (h Handler) GetVideoHandler(ctx context.Context, actorUserID int64, videoID int64) (httptransport.VideoResponse, error) {
	video, err := h.Service.GetVideo(ctx, actorUserID, videoID)
	if err != nil {
		return httptransport.VideoResponse{}, err
	}
	return toVideoResponse(video), nil
}

func (h Handler) ListVideosHandler(ctx context.Context, actorUserID int64) ([]httptransport.VideoResponse, error) {
	videos, err := h.Service.ListVideos(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.VideoResponse, 0, len(videos))
	for _, video := range videos {
		items = append(items, toVideoResponse(video))
	}
	return items, nil
}

func (h Handler) UpdateVideoHandler(ctx context.Context, actorUserID int64, videoID int64, req httptransport.UpdateVideoRequest) (httptransport.VideoResponse, error) {
	patch := ports.VideoPatch{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		AdPreferences: req.AdPreferences,
	}
	if req.Status != nil {
		status := entities.VideoStatus(strings.TrimSpace(*req.Status))
		patch.Status = &status
	}
	if req.AdPlacement != nil {
		placement := entities.AdPlacement(strings.TrimSpace(*req.AdPlacement))
		patch.AdPlacement = &placement
	}

	video, err := h.Service.PatchVideo(ctx, actorUserID, videoID, patch)
	if err != nil {
		return httptransport.VideoResponse{}, err
	}
	return toVideoResponse(video), nil
}

// DeleteVideoHandler returns the stored file paths so the route can unlink
// them from disk.
func (h Handler) DeleteVideoHandler(ctx context.Context, actorUserID int64, videoID int64) ([]string, error) {
	video, err := h.Service.DeleteVideo(ctx, actorUserID, videoID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, 3)
	for _, path := range []string{video.RawFilePath, video.ProcessedFilePath, video.ThumbnailPath} {
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func (h Handler) DownloadVideoHandler(ctx context.Context, actorUserID int64, videoID int64) (string, error) {
	return h.Service.ResolveDownload(ctx, actorUserID, videoID)
}

func (h Handler) CreatePlacementHandler(ctx context.Context, actorUserID int64, videoID int64, req httptransport.CreatePlacementRequest) (httptransport.PlacementResponse, error) {
	placement, err := h.Service.CreatePlacement(ctx, actorUserID, videoID, ports.CreatePlacementInput{
		AdID:          req.AdID,
		PlacementTime: req.PlacementTime,
	})
	if err != nil {
		return httptransport.PlacementResponse{}, err
	}
	return toPlacementResponse(placement), nil
}

func (h Handler) ListPlacementsHandler(ctx context.Context, actorUserID int64, videoID int64) ([]httptransport.PlacementResponse, error) {
	placements, err := h.Service.ListPlacements(ctx, actorUserID, videoID)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.PlacementResponse, 0, len(placements))
	for _, placement := range placements {
		items = append(items, toPlacementResponse(placement))
	}
	return items, nil
}

func (h Handler) TrackPlacementHandler(ctx context.Context, placementID int64, req httptransport.TrackPlacementRequest) (httptransport.PlacementResponse, error) {
	input := ports.TrackPlacementInput{Views: 1}
	if req.Views != nil {
		input.Views = *req.Views
	}
	if req.Clicks != nil {
		input.Clicks = *req.Clicks
	}

	placement, err := h.Service.TrackPlacement(ctx, placementID, input)
	if err != nil {
		return httptransport.PlacementResponse{}, err
	}
	return toPlacementResponse(placement), nil
}

func (h Handler) CreatorSummaryHandler(ctx context.Context, actorUserID int64) (httptransport.CreatorSummaryResponse, error) {
	summary, err := h.Service.CreatorSummary(ctx, actorUserID)
	if err != nil {
		return httptransport.CreatorSummaryResponse{}, err
	}
	return httptransport.CreatorSummaryResponse{
		TotalVideos:       summary.TotalVideos,
		ProcessingVideos:  summary.ProcessingVideos,
		ReadyVideos:       summary.ReadyVideos,
		PublishedVideos:   summary.PublishedVideos,
		TotalViews:        summary.TotalViews,
		TotalPlacements:   summary.TotalPlacements,
		PlacementViews:    summary.PlacementViews,
		PlacementClicks:   summary.PlacementClicks,
		EstimatedEarnings: summary.EstimatedEarnings,
	}, nil
}

func toVideoResponse(video entities.Video) httptransport.VideoResponse {
	return httptransport.VideoResponse{
		ID:                video.ID,
		UserID:            video.UserID,
		Title:             video.Title,
		Description:       video.Description,
		Category:          video.Category,
		RawFilePath:       video.RawFilePath,
		ProcessedFilePath: video.ProcessedFilePath,
		ThumbnailPath:     video.ThumbnailPath,
		Duration:          video.Duration,
		Status:            string(video.Status),
		AdPreferences:     video.AdPreferences,
		AdPlacement:       string(video.AdPlacement),
		Views:             video.Views,
		CreatedAt:         video.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPlacementResponse(placement entities.Placement) httptransport.PlacementResponse {
	return httptransport.PlacementResponse{
		ID:            placement.ID,
		VideoID:       placement.VideoID,
		AdID:          placement.AdID,
		PlacementTime: placement.PlacementTime,
		Views:         placement.Views,
		Clicks:        placement.Clicks,
		CreatedAt:     placement.CreatedAt.UTC().Format(time.RFC3339),
	}
}
