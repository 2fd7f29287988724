package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"advidly/contexts/creator-studio/video-service/adapters/memory"
	"advidly/contexts/creator-studio/video-service/domain/entities"
	domainerrors "advidly/contexts/creator-studio/video-service/domain/errors"
	"advidly/contexts/creator-studio/video-service/ports"
	"advidly/internal/shared/events"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type capturingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []events.Envelope
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event events.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func newService(store *memory.Store, clock *fakeClock, publisher *capturingPublisher) Service {
	service := Service{
		Videos:          store,
		Placements:      store,
		Clock:           clock,
		ProcessingDelay: 10 * time.Second,
	}
	if publisher != nil {
		service.Publisher = publisher
	}
	return service
}

func uploadVideo(t *testing.T, service Service, userID int64) entities.Video {
	t.Helper()
	video, err := service.CreateVideo(context.Background(), userID, ports.CreateVideoInput{
		Title:       "My vlog",
		Category:    "lifestyle",
		RawFilePath: "uploads/videos/1_abc.mp4",
		AdPlacement: entities.AdPlacementMidRoll,
	})
	if err != nil {
		t.Fatalf("create video failed: %v", err)
	}
	return video
}

func TestCreateVideoEntersProcessing(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newService(memory.NewStore(), clock, nil)

	video := uploadVideo(t, service, 5)
	if video.ID != 1 {
		t.Fatalf("expected first video id 1, got %d", video.ID)
	}
	if video.Status != entities.VideoStatusProcessing {
		t.Fatalf("uploads must enter processing, got %s", video.Status)
	}
	want := clock.now.Add(10 * time.Second)
	if !video.ProcessAfter.Equal(want) {
		t.Fatalf("expected ProcessAfter %v, got %v", want, video.ProcessAfter)
	}
}

func TestCreateVideoRejectsInvalidInput(t *testing.T) {
	service := newService(memory.NewStore(), &fakeClock{now: time.Now().UTC()}, nil)

	cases := []ports.CreateVideoInput{
		{Title: "", RawFilePath: "uploads/videos/x.mp4"},
		{Title: "ok", RawFilePath: ""},
		{Title: "ok", RawFilePath: "uploads/videos/x.mp4", AdPlacement: "banner"},
		{Title: "ok", RawFilePath: "uploads/videos/x.mp4", AdPreferences: json.RawMessage("{not json")},
	}
	for _, input := range cases {
		if _, err := service.CreateVideo(context.Background(), 1, input); !errors.Is(err, domainerrors.ErrInvalidRequest) {
			t.Fatalf("input %+v: expected ErrInvalidRequest, got %v", input, err)
		}
	}
}

func TestVideoOwnership(t *testing.T) {
	service := newService(memory.NewStore(), &fakeClock{now: time.Now().UTC()}, nil)
	video := uploadVideo(t, service, 1)

	if _, err := service.GetVideo(context.Background(), 2, video.ID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign video, got %v", err)
	}
	if _, err := service.GetVideo(context.Background(), 1, 99); !errors.Is(err, domainerrors.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestResolveDownloadCountsView(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, &fakeClock{now: time.Now().UTC()}, nil)
	video := uploadVideo(t, service, 1)

	path, err := service.ResolveDownload(context.Background(), 1, video.ID)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if path != video.RawFilePath {
		t.Fatalf("expected raw path before processing, got %q", path)
	}

	video.ProcessedFilePath = "uploads/videos/processed_1_abc.mp4"
	if err := store.UpdateVideo(context.Background(), video); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	path, err = service.ResolveDownload(context.Background(), 1, video.ID)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if path != video.ProcessedFilePath {
		t.Fatalf("expected processed path once available, got %q", path)
	}

	stored, err := store.GetVideo(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Views != 2 {
		t.Fatalf("expected 2 views after two downloads, got %d", stored.Views)
	}
}

func TestDeleteVideoReturnsPathsAndRemovesPlacements(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, &fakeClock{now: time.Now().UTC()}, nil)
	video := uploadVideo(t, service, 1)

	placement, err := service.CreatePlacement(context.Background(), 1, video.ID, ports.CreatePlacementInput{
		AdID:          3,
		PlacementTime: 30,
	})
	if err != nil {
		t.Fatalf("create placement failed: %v", err)
	}

	deleted, err := service.DeleteVideo(context.Background(), 1, video.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.RawFilePath != video.RawFilePath {
		t.Fatalf("deleted record must carry file paths, got %+v", deleted)
	}
	if _, err := store.GetPlacement(context.Background(), placement.ID); !errors.Is(err, domainerrors.ErrPlacementNotFound) {
		t.Fatalf("placements must go with the video, got %v", err)
	}
}

func TestCreatePlacementValidation(t *testing.T) {
	service := newService(memory.NewStore(), &fakeClock{now: time.Now().UTC()}, nil)
	video := uploadVideo(t, service, 1)

	if _, err := service.CreatePlacement(context.Background(), 1, video.ID, ports.CreatePlacementInput{AdID: 0, PlacementTime: 5}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for missing ad, got %v", err)
	}
	if _, err := service.CreatePlacement(context.Background(), 2, video.ID, ports.CreatePlacementInput{AdID: 1, PlacementTime: 5}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign video, got %v", err)
	}
}

func TestTrackPlacementPublishesEvent(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{}
	service := newService(store, &fakeClock{now: time.Now().UTC()}, publisher)
	video := uploadVideo(t, service, 1)

	placement, err := service.CreatePlacement(context.Background(), 1, video.ID, ports.CreatePlacementInput{
		AdID:          7,
		PlacementTime: 12,
	})
	if err != nil {
		t.Fatalf("create placement failed: %v", err)
	}

	tracked, err := service.TrackPlacement(context.Background(), placement.ID, ports.TrackPlacementInput{Views: 2, Clicks: 1})
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if tracked.Views != 2 || tracked.Clicks != 1 {
		t.Fatalf("expected counters 2/1, got %d/%d", tracked.Views, tracked.Clicks)
	}

	if len(publisher.events) != 1 || publisher.topics[0] != "placement.tracked" {
		t.Fatalf("expected one placement.tracked event, got %v", publisher.topics)
	}
	payload, ok := publisher.events[0].Payload.(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload type %T", publisher.events[0].Payload)
	}
	if payload["ad_id"] != int64(7) {
		t.Fatalf("expected ad_id 7 in payload, got %v", payload["ad_id"])
	}
}

func TestCreatorSummaryIsDeterministic(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, &fakeClock{now: time.Now().UTC()}, &capturingPublisher{})
	video := uploadVideo(t, service, 1)

	placement, err := service.CreatePlacement(context.Background(), 1, video.ID, ports.CreatePlacementInput{
		AdID:          2,
		PlacementTime: 0,
	})
	if err != nil {
		t.Fatalf("create placement failed: %v", err)
	}
	if _, err := service.TrackPlacement(context.Background(), placement.ID, ports.TrackPlacementInput{Views: 2000}); err != nil {
		t.Fatalf("track failed: %v", err)
	}

	first, err := service.CreatorSummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	second, err := service.CreatorSummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if first != second {
		t.Fatalf("summary must be stable across calls: %+v vs %+v", first, second)
	}
	if first.TotalVideos != 1 || first.ProcessingVideos != 1 {
		t.Fatalf("video counts wrong: %+v", first)
	}
	if first.PlacementViews != 2000 || first.EstimatedEarnings != 5 {
		t.Fatalf("expected 2000 views to earn 5, got %+v", first)
	}
}
