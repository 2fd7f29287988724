package entities

import (
	"encoding/json"
	"time"
)

type VideoStatus string

const (
	VideoStatusUploaded   VideoStatus = "uploaded"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusReady      VideoStatus = "ready"
	VideoStatusPublished  VideoStatus = "published"
)

func IsSupportedVideoStatus(value VideoStatus) bool {
	switch value {
	case VideoStatusUploaded, VideoStatusProcessing, VideoStatusReady, VideoStatusPublished:
		return true
	default:
		return false
	}
}

// AdPlacement is the creator's preferred slot for ads in the video timeline.
type AdPlacement string

const (
	AdPlacementPreRoll  AdPlacement = "pre-roll"
	AdPlacementMidRoll  AdPlacement = "mid-roll"
	AdPlacementPostRoll AdPlacement = "post-roll"
)

func IsSupportedAdPlacement(value AdPlacement) bool {
	switch value {
	case AdPlacementPreRoll, AdPlacementMidRoll, AdPlacementPostRoll:
		return true
	default:
		return false
	}
}

// Video is owned by a creator. ProcessAfter marks when the simulated
// pipeline may promote it from processing to ready; deleting the video
// before that moment cancels the promotion because the sweep only sees
// stored rows.
type Video struct {
	ID                int64
	UserID            int64
	Title             string
	Description       string
	Category          string
	RawFilePath       string
	ProcessedFilePath string
	ThumbnailPath     string
	Duration          int
	Status            VideoStatus
	AdPreferences     json.RawMessage
	AdPlacement       AdPlacement
	Views             int64
	ProcessAfter      time.Time
	CreatedAt         time.Time
}

// Placement joins an ad into a video timeline at PlacementTime seconds.
// Views and Clicks accumulate from tracking calls.
type Placement struct {
	ID            int64
	VideoID       int64
	AdID          int64
	PlacementTime int
	Views         int64
	Clicks        int64
	CreatedAt     time.Time
}
