package http

import "encoding/json"

// Field names follow the JSON contract the web client speaks (camelCase).

type UpdateVideoRequest struct {
	Title         *string         `json:"title"`
	Description   *string         `json:"description"`
	Category      *string         `json:"category"`
	Status        *string         `json:"status"`
	AdPlacement   *string         `json:"adPlacement"`
	AdPreferences json.RawMessage `json:"adPreferences"`
}

type CreatePlacementRequest struct {
	AdID          int64 `json:"adId"`
	PlacementTime int   `json:"placementTime"`
}

// TrackPlacementRequest carries engagement deltas; an empty body is treated
// as a single view.
type TrackPlacementRequest struct {
	Views  *int64 `json:"views"`
	Clicks *int64 `json:"clicks"`
}

type VideoResponse struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"userId"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category,omitempty"`
	RawFilePath       string          `json:"rawFilePath"`
	ProcessedFilePath string          `json:"processedFilePath,omitempty"`
	ThumbnailPath     string          `json:"thumbnailPath,omitempty"`
	Duration          int             `json:"duration"`
	Status            string          `json:"status"`
	AdPreferences     json.RawMessage `json:"adPreferences,omitempty"`
	AdPlacement       string          `json:"adPlacement"`
	Views             int64           `json:"views"`
	CreatedAt         string          `json:"createdAt"`
}

type PlacementResponse struct {
	ID            int64  `json:"id"`
	VideoID       int64  `json:"videoId"`
	AdID          int64  `json:"adId"`
	PlacementTime int    `json:"placementTime"`
	Views         int64  `json:"views"`
	Clicks        int64  `json:"clicks"`
	CreatedAt     string `json:"createdAt"`
}

type CreatorSummaryResponse struct {
	TotalVideos       int     `json:"totalVideos"`
	ProcessingVideos  int     `json:"processingVideos"`
	ReadyVideos       int     `json:"readyVideos"`
	PublishedVideos   int     `json:"publishedVideos"`
	TotalViews        int64   `json:"totalViews"`
	TotalPlacements   int     `json:"totalPlacements"`
	PlacementViews    int64   `json:"placementViews"`
	PlacementClicks   int64   `json:"placementClicks"`
	EstimatedEarnings float64 `json:"estimatedEarnings"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
