package workers

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"advidly/contexts/creator-studio/video-service/application"
	"advidly/contexts/creator-studio/video-service/domain/entities"
	"advidly/contexts/creator-studio/video-service/ports"
)

const sweepBatchSize = 50

// ProcessingSweep stands in for a transcoding pipeline. Each run promotes
// due videos from processing to ready and fabricates the artifacts a real
// pipeline would produce. Videos deleted before their ProcessAfter moment
// are never seen by the sweep, which is what makes deletion a cancellation.
type ProcessingSweep struct {
	Videos ports.VideoRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (w ProcessingSweep) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)

	due, err := w.Videos.ListProcessable(ctx, w.Clock.Now(), sweepBatchSize)
	if err != nil {
		logger.Error("processing sweep list failed",
			"event", "processing_sweep_failed",
			"module", "creator-studio/video-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, video := range due {
		video.Status = entities.VideoStatusReady
		video.ProcessedFilePath = processedPath(video.RawFilePath)
		video.ThumbnailPath = thumbnailPath(video.RawFilePath)
		video.Duration = fabricatedDuration(video.ID)

		if err := w.Videos.UpdateVideo(ctx, video); err != nil {
			// The video may have been deleted between list and update.
			logger.Warn("processing promotion skipped",
				"event", "processing_promotion_skipped",
				"module", "creator-studio/video-service",
				"layer", "worker",
				"video_id", video.ID,
				"error", err.Error(),
			)
			continue
		}

		logger.Info("video ready",
			"event", "video_ready",
			"module", "creator-studio/video-service",
			"layer", "worker",
			"video_id", video.ID,
			"duration_seconds", video.Duration,
		)
	}
	return nil
}

func processedPath(rawPath string) string {
	dir, name := filepath.Split(rawPath)
	return dir + "processed_" + name
}

func thumbnailPath(rawPath string) string {
	dir, name := filepath.Split(rawPath)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return dir + fmt.Sprintf("thumb_%s.jpg", base)
}

// fabricatedDuration derives a stable placeholder duration between one and
// ten minutes from the video id.
func fabricatedDuration(videoID int64) int {
	return int(60 + videoID%540)
}
