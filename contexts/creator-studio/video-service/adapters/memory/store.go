package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"advidly/contexts/creator-studio/video-service/domain/entities"
	domainerrors "advidly/contexts/creator-studio/video-service/domain/errors"
)

// Store keeps videos and placements in process memory with auto
// incrementing integer ids. Ids are never reused within a process lifetime.
type Store struct {
	mu              sync.RWMutex
	videos          map[int64]entities.Video
	placements      map[int64]entities.Placement
	nextVideoID     int64
	nextPlacementID int64
}

func NewStore() *Store {
	return &Store{
		videos:          make(map[int64]entities.Video),
		placements:      make(map[int64]entities.Placement),
		nextVideoID:     1,
		nextPlacementID: 1,
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) CreateVideo(_ context.Context, video entities.Video) (entities.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	video.ID = s.nextVideoID
	s.nextVideoID++
	s.videos[video.ID] = video
	return video, nil
}

func (s *Store) GetVideo(_ context.Context, videoID int64) (entities.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	video, ok := s.videos[videoID]
	if !ok {
		return entities.Video{}, domainerrors.ErrVideoNotFound
	}
	return video, nil
}

func (s *Store) ListVideosByUser(_ context.Context, userID int64) ([]entities.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Video, 0)
	for _, video := range s.videos {
		if video.UserID == userID {
			items = append(items, video)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListProcessable(_ context.Context, now time.Time, limit int) ([]entities.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Video, 0)
	for _, video := range s.videos {
		if video.Status == entities.VideoStatusProcessing && !video.ProcessAfter.After(now) {
			items = append(items, video)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProcessAfter.Before(items[j].ProcessAfter)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) UpdateVideo(_ context.Context, video entities.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[video.ID]; !ok {
		return domainerrors.ErrVideoNotFound
	}
	s.videos[video.ID] = video
	return nil
}

func (s *Store) DeleteVideo(_ context.Context, videoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[videoID]; !ok {
		return domainerrors.ErrVideoNotFound
	}
	delete(s.videos, videoID)
	return nil
}

func (s *Store) IncrementVideoViews(_ context.Context, videoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	video, ok := s.videos[videoID]
	if !ok {
		return domainerrors.ErrVideoNotFound
	}
	video.Views++
	s.videos[videoID] = video
	return nil
}

func (s *Store) CreatePlacement(_ context.Context, placement entities.Placement) (entities.Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	placement.ID = s.nextPlacementID
	s.nextPlacementID++
	s.placements[placement.ID] = placement
	return placement, nil
}

func (s *Store) GetPlacement(_ context.Context, placementID int64) (entities.Placement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	placement, ok := s.placements[placementID]
	if !ok {
		return entities.Placement{}, domainerrors.ErrPlacementNotFound
	}
	return placement, nil
}

func (s *Store) ListPlacementsByVideo(_ context.Context, videoID int64) ([]entities.Placement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Placement, 0)
	for _, placement := range s.placements {
		if placement.VideoID == videoID {
			items = append(items, placement)
		}
	}
	sortPlacements(items)
	return items, nil
}

func (s *Store) ListPlacementsByUser(_ context.Context, userID int64) ([]entities.Placement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Placement, 0)
	for _, placement := range s.placements {
		video, ok := s.videos[placement.VideoID]
		if ok && video.UserID == userID {
			items = append(items, placement)
		}
	}
	sortPlacements(items)
	return items, nil
}

func (s *Store) ApplyPlacementEngagement(_ context.Context, placementID int64, views int64, clicks int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	placement, ok := s.placements[placementID]
	if !ok {
		return domainerrors.ErrPlacementNotFound
	}
	placement.Views += views
	placement.Clicks += clicks
	s.placements[placementID] = placement
	return nil
}

func (s *Store) DeletePlacementsByVideo(_ context.Context, videoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, placement := range s.placements {
		if placement.VideoID == videoID {
			delete(s.placements, id)
		}
	}
	return nil
}

func sortPlacements(items []entities.Placement) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].PlacementTime == items[j].PlacementTime {
			return items[i].ID < items[j].ID
		}
		return items[i].PlacementTime < items[j].PlacementTime
	})
}
