package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"advidly/contexts/ad-operations/campaign-service/application"
	"advidly/contexts/ad-operations/campaign-service/domain/entities"
	domainerrors "advidly/contexts/ad-operations/campaign-service/domain/errors"
	"advidly/contexts/ad-operations/campaign-service/ports"
	httptransport "advidly/contexts/ad-operations/campaign-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateCampaignHandler(ctx context.Context, actorUserID int64, req httptransport.CreateCampaignRequest) (httptransport.CampaignResponse, error) {
	input := ports.CreateCampaignInput{
		Name:           req.Name,
		Budget:         req.Budget,
		TargetAudience: req.TargetAudience,
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return httptransport.CampaignResponse{}, domainerrors.ErrInvalidRequest
		}
		input.StartDate = start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return httptransport.CampaignResponse{}, domainerrors.ErrInvalidRequest
		}
		input.EndDate = &end
	}

	campaign, err := h.Service.CreateCampaign(ctx, actorUserID, input)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return toCampaignResponse(ports.CampaignSummary{Campaign: campaign}), nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, actorUserID int64, campaignID int64) (httptransport.CampaignResponse, error) {
	campaign, err := h.Service.GetCampaign(ctx, actorUserID, campaignID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	ads, err := h.Service.ListAds(ctx, actorUserID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	var views, clicks int64
	for _, ad := range ads {
		if ad.CampaignID != nil && *ad.CampaignID == campaign.ID {
			views += ad.Views
			clicks += ad.Clicks
		}
	}
	return toCampaignResponse(ports.CampaignSummary{
		Campaign:    campaign,
		Views:       views,
		Clicks:      clicks,
		Performance: entities.Performance(views, clicks),
	}), nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context, actorUserID int64) ([]httptransport.CampaignResponse, error) {
	summaries, err := h.Service.ListCampaigns(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.CampaignResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, toCampaignResponse(summary))
	}
	return items, nil
}

func (h Handler) UpdateCampaignHandler(ctx context.Context, actorUserID int64, campaignID int64, req httptransport.UpdateCampaignRequest) (httptransport.CampaignResponse, error) {
	patch := ports.CampaignPatch{
		Name:           req.Name,
		Budget:         req.Budget,
		Spent:          req.Spent,
		TargetAudience: req.TargetAudience,
	}
	if req.Status != nil {
		status := entities.CampaignStatus(strings.TrimSpace(*req.Status))
		patch.Status = &status
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return httptransport.CampaignResponse{}, domainerrors.ErrInvalidRequest
		}
		patch.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return httptransport.CampaignResponse{}, domainerrors.ErrInvalidRequest
		}
		patch.EndDate = &end
	}

	campaign, err := h.Service.PatchCampaign(ctx, actorUserID, campaignID, patch)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return toCampaignResponse(ports.CampaignSummary{Campaign: campaign}), nil
}

func (h Handler) DeleteCampaignHandler(ctx context.Context, actorUserID int64, campaignID int64) error {
	return h.Service.DeleteCampaign(ctx, actorUserID, campaignID)
}

func (h Handler) CreateAdHandler(ctx context.Context, actorUserID int64, input ports.CreateAdInput) (httptransport.AdResponse, error) {
	ad, err := h.Service.CreateAd(ctx, actorUserID, input)
	if err != nil {
		return httptransport.AdResponse{}, err
	}
	return toAdResponse(ad), nil
}

func (h Handler) GetAdHandler(ctx context.Context, actorUserID int64, adID int64) (httptransport.AdResponse, error) {
	ad, err := h.Service.GetAd(ctx, actorUserID, adID)
	if err != nil {
		return httptransport.AdResponse{}, err
	}
	return toAdResponse(ad), nil
}

func (h Handler) ListAdsHandler(ctx context.Context, actorUserID int64) ([]httptransport.AdResponse, error) {
	ads, err := h.Service.ListAds(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.AdResponse, 0, len(ads))
	for _, ad := range ads {
		items = append(items, toAdResponse(ad))
	}
	return items, nil
}

func (h Handler) UpdateAdHandler(ctx context.Context, actorUserID int64, adID int64, req httptransport.UpdateAdRequest) (httptransport.AdResponse, error) {
	patch := ports.AdPatch{
		Title:       req.Title,
		Description: req.Description,
		CampaignID:  req.CampaignID,
	}
	if req.Status != nil {
		status := entities.AdStatus(strings.TrimSpace(*req.Status))
		patch.Status = &status
	}

	ad, err := h.Service.PatchAd(ctx, actorUserID, adID, patch)
	if err != nil {
		return httptransport.AdResponse{}, err
	}
	return toAdResponse(ad), nil
}

// DeleteAdHandler returns the stored file path so the route can remove the
// creative from disk.
func (h Handler) DeleteAdHandler(ctx context.Context, actorUserID int64, adID int64) (string, error) {
	ad, err := h.Service.DeleteAd(ctx, actorUserID, adID)
	if err != nil {
		return "", err
	}
	return ad.FilePath, nil
}

func (h Handler) CompanySummaryHandler(ctx context.Context, actorUserID int64) (httptransport.CompanySummaryResponse, error) {
	summary, err := h.Service.CompanySummary(ctx, actorUserID)
	if err != nil {
		return httptransport.CompanySummaryResponse{}, err
	}
	return httptransport.CompanySummaryResponse{
		TotalCampaigns:     summary.TotalCampaigns,
		ActiveCampaigns:    summary.ActiveCampaigns,
		PausedCampaigns:    summary.PausedCampaigns,
		CompletedCampaigns: summary.CompletedCampaigns,
		TotalBudget:        summary.TotalBudget,
		TotalSpent:         summary.TotalSpent,
		TotalAds:           summary.TotalAds,
		PendingAds:         summary.PendingAds,
		ApprovedAds:        summary.ApprovedAds,
		RejectedAds:        summary.RejectedAds,
		TotalViews:         summary.TotalViews,
		TotalClicks:        summary.TotalClicks,
		Performance:        summary.Performance,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Parse("2006-01-02", value)
}

func toCampaignResponse(summary ports.CampaignSummary) httptransport.CampaignResponse {
	campaign := summary.Campaign
	resp := httptransport.CampaignResponse{
		ID:             campaign.ID,
		UserID:         campaign.UserID,
		Name:           campaign.Name,
		Status:         string(campaign.Status),
		Budget:         campaign.Budget,
		Spent:          campaign.Spent,
		StartDate:      campaign.StartDate.UTC().Format(time.RFC3339),
		TargetAudience: campaign.TargetAudience,
		Views:          summary.Views,
		Clicks:         summary.Clicks,
		Performance:    summary.Performance,
		CreatedAt:      campaign.CreatedAt.UTC().Format(time.RFC3339),
	}
	if campaign.EndDate != nil {
		resp.EndDate = campaign.EndDate.UTC().Format(time.RFC3339)
	}
	return resp
}

func toAdResponse(ad entities.Ad) httptransport.AdResponse {
	return httptransport.AdResponse{
		ID:          ad.ID,
		UserID:      ad.UserID,
		CampaignID:  ad.CampaignID,
		Title:       ad.Title,
		Description: ad.Description,
		FilePath:    ad.FilePath,
		Duration:    ad.Duration,
		Status:      string(ad.Status),
		Views:       ad.Views,
		Clicks:      ad.Clicks,
		Performance: entities.Performance(ad.Views, ad.Clicks),
		CreatedAt:   ad.CreatedAt.UTC().Format(time.RFC3339),
	}
}
