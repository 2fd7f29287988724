package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"advidly/contexts/ad-operations/campaign-service/domain/entities"
	domainerrors "advidly/contexts/ad-operations/campaign-service/domain/errors"
)

// Store keeps campaigns and ads in process memory with auto incrementing
// integer ids. Ids are never reused within a process lifetime.
type Store struct {
	mu             sync.RWMutex
	campaigns      map[int64]entities.Campaign
	ads            map[int64]entities.Ad
	nextCampaignID int64
	nextAdID       int64
}

func NewStore() *Store {
	return &Store{
		campaigns:      make(map[int64]entities.Campaign),
		ads:            make(map[int64]entities.Ad),
		nextCampaignID: 1,
		nextAdID:       1,
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign.ID = s.nextCampaignID
	s.nextCampaignID++
	s.campaigns[campaign.ID] = campaign
	return campaign, nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID int64) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaign, ok := s.campaigns[campaignID]
	if !ok {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Store) ListCampaignsByUser(_ context.Context, userID int64) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0)
	for _, campaign := range s.campaigns {
		if campaign.UserID == userID {
			items = append(items, campaign)
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

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[campaign.ID]; !ok {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.ID] = campaign
	return nil
}

func (s *Store) DeleteCampaign(_ context.Context, campaignID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[campaignID]; !ok {
		return domainerrors.ErrCampaignNotFound
	}
	delete(s.campaigns, campaignID)
	return nil
}

func (s *Store) CreateAd(_ context.Context, ad entities.Ad) (entities.Ad, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ad.ID = s.nextAdID
	s.nextAdID++
	s.ads[ad.ID] = ad
	return ad, nil
}

func (s *Store) GetAd(_ context.Context, adID int64) (entities.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ad, ok := s.ads[adID]
	if !ok {
		return entities.Ad{}, domainerrors.ErrAdNotFound
	}
	return ad, nil
}

func (s *Store) ListAdsByUser(_ context.Context, userID int64) ([]entities.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Ad, 0)
	for _, ad := range s.ads {
		if ad.UserID == userID {
			items = append(items, ad)
		}
	}
	sortAds(items)
	return items, nil
}

func (s *Store) ListAdsByCampaign(_ context.Context, campaignID int64) ([]entities.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Ad, 0)
	for _, ad := range s.ads {
		if ad.CampaignID != nil && *ad.CampaignID == campaignID {
			items = append(items, ad)
		}
	}
	sortAds(items)
	return items, nil
}

func (s *Store) UpdateAd(_ context.Context, ad entities.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ads[ad.ID]; !ok {
		return domainerrors.ErrAdNotFound
	}
	s.ads[ad.ID] = ad
	return nil
}

func (s *Store) DeleteAd(_ context.Context, adID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ads[adID]; !ok {
		return domainerrors.ErrAdNotFound
	}
	delete(s.ads, adID)
	return nil
}

func (s *Store) ApplyAdEngagement(_ context.Context, adID int64, views int64, clicks int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ad, ok := s.ads[adID]
	if !ok {
		return domainerrors.ErrAdNotFound
	}
	ad.Views += views
	ad.Clicks += clicks
	s.ads[adID] = ad
	return nil
}

func sortAds(items []entities.Ad) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
