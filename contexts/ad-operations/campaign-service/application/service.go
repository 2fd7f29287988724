package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"advidly/contexts/ad-operations/campaign-service/domain/entities"
	domainerrors "advidly/contexts/ad-operations/campaign-service/domain/errors"
	"advidly/contexts/ad-operations/campaign-service/ports"
)

type Service struct {
	Campaigns ports.CampaignRepository
	Ads       ports.AdRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (s Service) CreateCampaign(ctx context.Context, actorUserID int64, input ports.CreateCampaignInput) (entities.Campaign, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Budget < 0 {
		return entities.Campaign{}, domainerrors.ErrInvalidRequest
	}

	now := s.now()
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	campaign, err := s.Campaigns.CreateCampaign(ctx, entities.Campaign{
		UserID:         actorUserID,
		Name:           name,
		Status:         entities.CampaignStatusActive,
		Budget:         input.Budget,
		StartDate:      startDate,
		EndDate:        input.EndDate,
		TargetAudience: strings.TrimSpace(input.TargetAudience),
		CreatedAt:      now,
	})
	if err != nil {
		return entities.Campaign{}, err
	}

	ResolveLogger(s.Logger).Info("campaign created",
		"event", "campaign_created",
		"module", "ad-operations/campaign-service",
		"layer", "application",
		"campaign_id", campaign.ID,
		"user_id", actorUserID,
	)
	return campaign, nil
}

// GetCampaign loads first and checks ownership second, so absent entities
// surface as not-found and foreign entities as forbidden.
func (s Service) GetCampaign(ctx context.Context, actorUserID int64, campaignID int64) (entities.Campaign, error) {
	campaign, err := s.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if campaign.UserID != actorUserID {
		return entities.Campaign{}, domainerrors.ErrForbidden
	}
	return campaign, nil
}

func (s Service) ListCampaigns(ctx context.Context, actorUserID int64) ([]ports.CampaignSummary, error) {
	campaigns, err := s.Campaigns.ListCampaignsByUser(ctx, actorUserID)
	if err != nil {
		return nil, err
	}

	items := make([]ports.CampaignSummary, 0, len(campaigns))
	for _, campaign := range campaigns {
		ads, err := s.Ads.ListAdsByCampaign(ctx, campaign.ID)
		if err != nil {
			return nil, err
		}
		var views, clicks int64
		for _, ad := range ads {
			views += ad.Views
			clicks += ad.Clicks
		}
		items = append(items, ports.CampaignSummary{
			Campaign:    campaign,
			Views:       views,
			Clicks:      clicks,
			Performance: entities.Performance(views, clicks),
		})
	}
	return items, nil
}

func (s Service) PatchCampaign(ctx context.Context, actorUserID int64, campaignID int64, patch ports.CampaignPatch) (entities.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, actorUserID, campaignID)
	if err != nil {
		return entities.Campaign{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return entities.Campaign{}, domainerrors.ErrInvalidRequest
		}
		campaign.Name = name
	}
	if patch.Status != nil {
		if !entities.IsSupportedCampaignStatus(*patch.Status) {
			return entities.Campaign{}, domainerrors.ErrInvalidRequest
		}
		campaign.Status = *patch.Status
	}
	if patch.Budget != nil {
		if *patch.Budget < 0 {
			return entities.Campaign{}, domainerrors.ErrInvalidRequest
		}
		campaign.Budget = *patch.Budget
	}
	if patch.Spent != nil {
		if *patch.Spent < 0 {
			return entities.Campaign{}, domainerrors.ErrInvalidRequest
		}
		campaign.Spent = *patch.Spent
	}
	if patch.StartDate != nil {
		campaign.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		campaign.EndDate = patch.EndDate
	}
	if patch.TargetAudience != nil {
		campaign.TargetAudience = strings.TrimSpace(*patch.TargetAudience)
	}

	if err := s.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}
	return campaign, nil
}

// DeleteCampaign does not cascade to ads referencing the campaign.
func (s Service) DeleteCampaign(ctx context.Context, actorUserID int64, campaignID int64) error {
	if _, err := s.GetCampaign(ctx, actorUserID, campaignID); err != nil {
		return err
	}
	return s.Campaigns.DeleteCampaign(ctx, campaignID)
}

func (s Service) CreateAd(ctx context.Context, actorUserID int64, input ports.CreateAdInput) (entities.Ad, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.FilePath) == "" || input.Duration <= 0 {
		return entities.Ad{}, domainerrors.ErrInvalidRequest
	}

	if input.CampaignID != nil {
		campaign, err := s.Campaigns.GetCampaign(ctx, *input.CampaignID)
		if err != nil || campaign.UserID != actorUserID {
			return entities.Ad{}, domainerrors.ErrCampaignNotOwned
		}
	}

	ad, err := s.Ads.CreateAd(ctx, entities.Ad{
		UserID:      actorUserID,
		CampaignID:  input.CampaignID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		FilePath:    input.FilePath,
		Duration:    input.Duration,
		Status:      entities.AdStatusPending,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return entities.Ad{}, err
	}

	ResolveLogger(s.Logger).Info("ad created",
		"event", "ad_created",
		"module", "ad-operations/campaign-service",
		"layer", "application",
		"ad_id", ad.ID,
		"user_id", actorUserID,
	)
	return ad, nil
}

func (s Service) GetAd(ctx context.Context, actorUserID int64, adID int64) (entities.Ad, error) {
	ad, err := s.Ads.GetAd(ctx, adID)
	if err != nil {
		return entities.Ad{}, err
	}
	if ad.UserID != actorUserID {
		return entities.Ad{}, domainerrors.ErrForbidden
	}
	return ad, nil
}

func (s Service) ListAds(ctx context.Context, actorUserID int64) ([]entities.Ad, error) {
	return s.Ads.ListAdsByUser(ctx, actorUserID)
}

func (s Service) PatchAd(ctx context.Context, actorUserID int64, adID int64, patch ports.AdPatch) (entities.Ad, error) {
	ad, err := s.GetAd(ctx, actorUserID, adID)
	if err != nil {
		return entities.Ad{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return entities.Ad{}, domainerrors.ErrInvalidRequest
		}
		ad.Title = title
	}
	if patch.Description != nil {
		ad.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.CampaignID != nil {
		campaign, err := s.Campaigns.GetCampaign(ctx, *patch.CampaignID)
		if err != nil || campaign.UserID != actorUserID {
			return entities.Ad{}, domainerrors.ErrCampaignNotOwned
		}
		ad.CampaignID = patch.CampaignID
	}
	if patch.Status != nil {
		if !entities.IsSupportedAdStatus(*patch.Status) {
			return entities.Ad{}, domainerrors.ErrInvalidRequest
		}
		ad.Status = *patch.Status
	}

	if err := s.Ads.UpdateAd(ctx, ad); err != nil {
		return entities.Ad{}, err
	}
	return ad, nil
}

// DeleteAd returns the removed record so the route layer can attempt file
// removal afterwards.
func (s Service) DeleteAd(ctx context.Context, actorUserID int64, adID int64) (entities.Ad, error) {
	ad, err := s.GetAd(ctx, actorUserID, adID)
	if err != nil {
		return entities.Ad{}, err
	}
	if err := s.Ads.DeleteAd(ctx, adID); err != nil {
		return entities.Ad{}, err
	}
	return ad, nil
}

func (s Service) CompanySummary(ctx context.Context, actorUserID int64) (ports.CompanySummary, error) {
	campaigns, err := s.Campaigns.ListCampaignsByUser(ctx, actorUserID)
	if err != nil {
		return ports.CompanySummary{}, err
	}
	ads, err := s.Ads.ListAdsByUser(ctx, actorUserID)
	if err != nil {
		return ports.CompanySummary{}, err
	}

	summary := ports.CompanySummary{
		TotalCampaigns: len(campaigns),
		TotalAds:       len(ads),
	}
	for _, campaign := range campaigns {
		switch campaign.Status {
		case entities.CampaignStatusActive:
			summary.ActiveCampaigns++
		case entities.CampaignStatusPaused:
			summary.PausedCampaigns++
		case entities.CampaignStatusCompleted:
			summary.CompletedCampaigns++
		}
		summary.TotalBudget += campaign.Budget
		summary.TotalSpent += campaign.Spent
	}
	for _, ad := range ads {
		switch ad.Status {
		case entities.AdStatusPending:
			summary.PendingAds++
		case entities.AdStatusApproved:
			summary.ApprovedAds++
		case entities.AdStatusRejected:
			summary.RejectedAds++
		}
		summary.TotalViews += ad.Views
		summary.TotalClicks += ad.Clicks
	}
	summary.Performance = entities.Performance(summary.TotalViews, summary.TotalClicks)
	return summary, nil
}

// ApplyEngagement feeds the ad projection counters; unknown ads are skipped
// upstream by the consumer.
func (s Service) ApplyEngagement(ctx context.Context, adID int64, views int64, clicks int64) error {
	if views < 0 || clicks < 0 {
		return domainerrors.ErrInvalidRequest
	}
	return s.Ads.ApplyAdEngagement(ctx, adID, views, clicks)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
