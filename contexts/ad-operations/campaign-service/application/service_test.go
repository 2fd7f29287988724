package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"advidly/contexts/ad-operations/campaign-service/adapters/memory"
	"advidly/contexts/ad-operations/campaign-service/domain/entities"
	domainerrors "advidly/contexts/ad-operations/campaign-service/domain/errors"
	"advidly/contexts/ad-operations/campaign-service/ports"
)

func newService(store *memory.Store) Service {
	return Service{
		Campaigns: store,
		Ads:       store,
		Clock:     store,
	}
}

func createCampaign(t *testing.T, service Service, userID int64, name string) entities.Campaign {
	t.Helper()
	campaign, err := service.CreateCampaign(context.Background(), userID, ports.CreateCampaignInput{
		Name:   name,
		Budget: 1000,
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return campaign
}

func createAd(t *testing.T, service Service, userID int64, campaignID *int64) entities.Ad {
	t.Helper()
	ad, err := service.CreateAd(context.Background(), userID, ports.CreateAdInput{
		CampaignID: campaignID,
		Title:      "Spring promo",
		FilePath:   "uploads/ads/1_abc.mp4",
		Duration:   30,
	})
	if err != nil {
		t.Fatalf("create ad failed: %v", err)
	}
	return ad
}

func TestCreateCampaignDefaults(t *testing.T) {
	service := newService(memory.NewStore())

	campaign := createCampaign(t, service, 7, "Launch")
	if campaign.ID != 1 {
		t.Fatalf("expected first campaign id 1, got %d", campaign.ID)
	}
	if campaign.Status != entities.CampaignStatusActive {
		t.Fatalf("new campaigns start active, got %s", campaign.Status)
	}
	if campaign.StartDate.IsZero() {
		t.Fatal("start date must default to creation time")
	}
}

func TestCreateCampaignRejectsInvalidInput(t *testing.T) {
	service := newService(memory.NewStore())

	cases := []ports.CreateCampaignInput{
		{Name: "", Budget: 10},
		{Name: "   ", Budget: 10},
		{Name: "ok", Budget: -1},
	}
	for _, input := range cases {
		if _, err := service.CreateCampaign(context.Background(), 1, input); !errors.Is(err, domainerrors.ErrInvalidRequest) {
			t.Fatalf("input %+v: expected ErrInvalidRequest, got %v", input, err)
		}
	}
}

func TestGetCampaignOwnership(t *testing.T) {
	service := newService(memory.NewStore())
	campaign := createCampaign(t, service, 1, "Mine")

	if _, err := service.GetCampaign(context.Background(), 2, campaign.ID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign campaign, got %v", err)
	}
	if _, err := service.GetCampaign(context.Background(), 1, 99); !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound for missing id, got %v", err)
	}
}

func TestPatchCampaignAppliesOnlyProvidedFields(t *testing.T) {
	service := newService(memory.NewStore())
	campaign := createCampaign(t, service, 1, "Before")

	status := entities.CampaignStatusPaused
	budget := 500.0
	patched, err := service.PatchCampaign(context.Background(), 1, campaign.ID, ports.CampaignPatch{
		Status: &status,
		Budget: &budget,
	})
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if patched.Name != "Before" {
		t.Fatalf("unpatched name must survive, got %q", patched.Name)
	}
	if patched.Status != entities.CampaignStatusPaused || patched.Budget != 500 {
		t.Fatalf("patch not applied: %+v", patched)
	}

	bad := entities.CampaignStatus("archived")
	if _, err := service.PatchCampaign(context.Background(), 1, campaign.ID, ports.CampaignPatch{Status: &bad}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for unknown status, got %v", err)
	}
}

func TestCreateAdValidatesCampaignOwnership(t *testing.T) {
	service := newService(memory.NewStore())
	mine := createCampaign(t, service, 1, "Mine")
	theirs := createCampaign(t, service, 2, "Theirs")

	ad := createAd(t, service, 1, &mine.ID)
	if ad.Status != entities.AdStatusPending {
		t.Fatalf("new ads must be pending, got %s", ad.Status)
	}

	_, err := service.CreateAd(context.Background(), 1, ports.CreateAdInput{
		CampaignID: &theirs.ID,
		Title:      "Sneaky",
		FilePath:   "uploads/ads/2_def.mp4",
		Duration:   15,
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotOwned) {
		t.Fatalf("expected ErrCampaignNotOwned, got %v", err)
	}

	missing := int64(99)
	_, err = service.CreateAd(context.Background(), 1, ports.CreateAdInput{
		CampaignID: &missing,
		Title:      "Ghost",
		FilePath:   "uploads/ads/3_ghi.mp4",
		Duration:   15,
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotOwned) {
		t.Fatalf("expected ErrCampaignNotOwned for missing campaign, got %v", err)
	}
}

func TestDeleteAdReturnsRecordForCleanup(t *testing.T) {
	service := newService(memory.NewStore())
	ad := createAd(t, service, 1, nil)

	deleted, err := service.DeleteAd(context.Background(), 1, ad.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.FilePath != ad.FilePath {
		t.Fatalf("expected file path %q, got %q", ad.FilePath, deleted.FilePath)
	}
	if _, err := service.GetAd(context.Background(), 1, ad.ID); !errors.Is(err, domainerrors.ErrAdNotFound) {
		t.Fatalf("expected ErrAdNotFound after delete, got %v", err)
	}
}

func TestEngagementProjectsIntoCampaignSummaries(t *testing.T) {
	service := newService(memory.NewStore())
	campaign := createCampaign(t, service, 1, "Tracked")
	ad := createAd(t, service, 1, &campaign.ID)

	if err := service.ApplyEngagement(context.Background(), ad.ID, 200, 10); err != nil {
		t.Fatalf("apply engagement failed: %v", err)
	}

	summaries, err := service.ListCampaigns(context.Background(), 1)
	if err != nil {
		t.Fatalf("list campaigns failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one campaign, got %d", len(summaries))
	}
	summary := summaries[0]
	if summary.Views != 200 || summary.Clicks != 10 {
		t.Fatalf("expected 200 views / 10 clicks, got %d / %d", summary.Views, summary.Clicks)
	}
	if summary.Performance != 5 {
		t.Fatalf("expected 5%% click-through, got %v", summary.Performance)
	}
}

func TestCompanySummaryAggregates(t *testing.T) {
	service := newService(memory.NewStore())
	active := createCampaign(t, service, 1, "Active")
	paused := createCampaign(t, service, 1, "Paused")
	status := entities.CampaignStatusPaused
	if _, err := service.PatchCampaign(context.Background(), 1, paused.ID, ports.CampaignPatch{Status: &status}); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	createCampaign(t, service, 2, "Foreign")

	ad := createAd(t, service, 1, &active.ID)
	if err := service.ApplyEngagement(context.Background(), ad.ID, 100, 4); err != nil {
		t.Fatalf("apply engagement failed: %v", err)
	}

	summary, err := service.CompanySummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalCampaigns != 2 || summary.ActiveCampaigns != 1 || summary.PausedCampaigns != 1 {
		t.Fatalf("campaign counts wrong: %+v", summary)
	}
	if summary.TotalBudget != 2000 {
		t.Fatalf("expected total budget 2000, got %v", summary.TotalBudget)
	}
	if summary.TotalAds != 1 || summary.PendingAds != 1 {
		t.Fatalf("ad counts wrong: %+v", summary)
	}
	if summary.TotalViews != 100 || summary.TotalClicks != 4 || summary.Performance != 4 {
		t.Fatalf("engagement totals wrong: %+v", summary)
	}
}

func TestListCampaignsNewestFirst(t *testing.T) {
	store := memory.NewStore()
	service := Service{Campaigns: store, Ads: store, Clock: store}

	older, err := store.CreateCampaign(context.Background(), entities.Campaign{
		UserID:    1,
		Name:      "Older",
		Status:    entities.CampaignStatusActive,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	newer, err := store.CreateCampaign(context.Background(), entities.Campaign{
		UserID:    1,
		Name:      "Newer",
		Status:    entities.CampaignStatusActive,
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	summaries, err := service.ListCampaigns(context.Background(), 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if summaries[0].Campaign.ID != newer.ID || summaries[1].Campaign.ID != older.ID {
		t.Fatalf("expected newest first, got %d then %d", summaries[0].Campaign.ID, summaries[1].Campaign.ID)
	}
}
