package ports

import (
	"context"
	"time"

	"advidly/contexts/ad-operations/campaign-service/domain/entities"
	"advidly/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

// EventSubscriber hooks the module's projection consumers onto the bus.
type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

type CreateCampaignInput struct {
	Name           string
	Budget         float64
	StartDate      time.Time
	EndDate        *time.Time
	TargetAudience string
}

// CampaignPatch lists the mutable campaign fields. Identifiers and
// timestamps are not patchable.
type CampaignPatch struct {
	Name           *string
	Status         *entities.CampaignStatus
	Budget         *float64
	Spent          *float64
	StartDate      *time.Time
	EndDate        *time.Time
	TargetAudience *string
}

type CreateAdInput struct {
	CampaignID  *int64
	Title       string
	Description string
	FilePath    string
	Duration    int
}

type AdPatch struct {
	Title       *string
	Description *string
	CampaignID  *int64
	Status      *entities.AdStatus
}

// CampaignSummary is a campaign enriched with projected engagement.
type CampaignSummary struct {
	Campaign    entities.Campaign
	Views       int64
	Clicks      int64
	Performance float64
}

type CompanySummary struct {
	TotalCampaigns     int
	ActiveCampaigns    int
	PausedCampaigns    int
	CompletedCampaigns int
	TotalBudget        float64
	TotalSpent         float64
	TotalAds           int
	PendingAds         int
	ApprovedAds        int
	RejectedAds        int
	TotalViews         int64
	TotalClicks        int64
	Performance        float64
}

type CampaignRepository interface {
	// CreateCampaign assigns the next campaign id.
	CreateCampaign(ctx context.Context, campaign entities.Campaign) (entities.Campaign, error)
	GetCampaign(ctx context.Context, campaignID int64) (entities.Campaign, error)
	ListCampaignsByUser(ctx context.Context, userID int64) ([]entities.Campaign, error)
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	DeleteCampaign(ctx context.Context, campaignID int64) error
}

type AdRepository interface {
	CreateAd(ctx context.Context, ad entities.Ad) (entities.Ad, error)
	GetAd(ctx context.Context, adID int64) (entities.Ad, error)
	ListAdsByUser(ctx context.Context, userID int64) ([]entities.Ad, error)
	ListAdsByCampaign(ctx context.Context, campaignID int64) ([]entities.Ad, error)
	UpdateAd(ctx context.Context, ad entities.Ad) error
	DeleteAd(ctx context.Context, adID int64) error
	ApplyAdEngagement(ctx context.Context, adID int64, views int64, clicks int64) error
}
